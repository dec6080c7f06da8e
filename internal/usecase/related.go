package usecase

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/vidshop/backend/internal/domain"
)

// DefaultRelatedLimit caps suggestions when the caller does not ask for a count.
const DefaultRelatedLimit = 4

// RelatedQuery builds the search text for finding products related to a
// detected product or a category. At least one of the two should be set;
// with neither the query degenerates to a generic related-products search.
func RelatedQuery(productName, category string) string {
	switch {
	case productName != "" && category != "":
		return fmt.Sprintf("Products similar to %s in the %s category", productName, category)
	case productName != "":
		return "Products similar to " + productName
	case category != "":
		return fmt.Sprintf("Show me %s products", category)
	default:
		return "Show me related products"
	}
}

// RelatedSearchOptions returns the upstream options for a related-products
// search: clip grouping, medium threshold, and over-fetching so weak hits can
// be filtered out of the final list.
func RelatedSearchOptions(videoID string, timeRange []float64, limit int) domain.SearchOptions {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	return domain.SearchOptions{
		SearchOptions: []string{"visual", "conversation", "text_in_video"},
		GroupBy:       "clip",
		PageLimit:     limit * 2,
		Threshold:     "medium",
		VideoID:       videoID,
		TimeRange:     timeRange,
	}
}

// RelatedFromSearch maps clip-grouped search hits into related-product
// suggestions. Low-confidence hits are dropped, duplicate clips collapse to
// a single suggestion, and the survivors are sorted by score and capped at
// limit. Pure; safe on a nil response.
func RelatedFromSearch(resp *domain.SearchResponse, limit int) []domain.RelatedProduct {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	related := []domain.RelatedProduct{}
	if resp == nil {
		return related
	}

	seen := make(map[string]bool)
	hits := make([]domain.SearchResult, 0, len(resp.Data))
	for _, hit := range resp.Data {
		if weakConfidence(hit.Confidence) {
			continue
		}
		id := clipID(hit)
		if seen[id] {
			continue
		}
		seen[id] = true
		hits = append(hits, hit)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	for _, hit := range hits {
		if len(related) == limit {
			break
		}
		text := clipText(hit.Metadata)
		related = append(related, domain.RelatedProduct{
			ID:          clipID(hit),
			Name:        relatedName(text),
			Category:    relatedCategory(text),
			Price:       clipPrice(hit.Metadata),
			Description: relatedDescription(text),
			Timeline:    []float64{hit.Start, hit.End},
			Score:       hit.Score,
		})
	}
	return related
}

// clipID uniquely identifies a clip within the search response, so the same
// moment surfaced twice maps to one suggestion.
func clipID(hit domain.SearchResult) string {
	return fmt.Sprintf("%s-%g-%g", hit.VideoID, hit.Start, hit.End)
}

func weakConfidence(confidence string) bool {
	switch strings.ToLower(confidence) {
	case "low", "none":
		return true
	}
	return false
}

func clipText(md map[string]any) string {
	s, _ := md["text"].(string)
	return strings.TrimSpace(s)
}

func clipPrice(md map[string]any) float64 {
	switch v := md["price"].(type) {
	case float64:
		return v
	case string:
		return domain.ParsePrice(v)
	}
	return 0
}

// relatedIndicators are phrases whose trailing text usually names the thing
// on screen ("the host is wearing a red jacket").
var relatedIndicators = []string{"wearing", "using", "with", "has", "features", "shows"}

// relatedName derives a product name from a clip's transcript text. A phrase
// after an indicator word wins; otherwise the first few words stand in. An
// empty transcript yields a generic placeholder.
func relatedName(text string) string {
	if text == "" {
		return "Related Item"
	}
	lower := strings.ToLower(text)
	for _, indicator := range relatedIndicators {
		idx := strings.Index(lower, indicator+" ")
		if idx < 0 {
			continue
		}
		after := text[idx+len(indicator)+1:]
		if end := strings.IndexByte(after, '.'); end > 0 {
			after = after[:end]
		} else {
			after = firstWords(after, 3)
		}
		if after = strings.TrimSpace(after); after != "" {
			return capitalize(after)
		}
	}
	return capitalize(firstWords(text, 3))
}

// relatedCategories is the coarse catalog taxonomy matched against transcript
// text when suggesting a category.
var relatedCategories = []string{
	"clothing", "apparel", "fashion", "accessories",
	"electronics", "gadgets", "devices",
	"furniture", "home decor", "kitchenware",
	"beauty", "cosmetics", "skincare",
	"sports", "fitness", "jewelry", "watches",
}

func relatedCategory(text string) string {
	lower := strings.ToLower(text)
	for _, category := range relatedCategories {
		if strings.Contains(lower, category) {
			return capitalize(category)
		}
	}
	return ""
}

func relatedDescription(text string) string {
	if text == "" {
		return "Related product based on video context"
	}
	if len(text) > 100 {
		return text[:100] + "..."
	}
	return text
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
