package domain

import (
	"strconv"
	"strings"
)

// Product represents a single product detected in a video by the
// video-understanding service. Products are immutable once parsed.
type Product struct {
	Brand       string    `json:"brand"`
	ProductName string    `json:"product_name"`
	Timeline    []float64 `json:"timeline"` // [start, end] in seconds
	Location    []float64 `json:"location"` // [x%, y%, w%, h%] bounding box
	Price       string    `json:"price"`    // free text; may be a sentinel like "Not specified"
	Description string    `json:"description"`
}

// ProductKey is the composite identity for a product. Detected products carry
// no stable upstream id, so brand, name, and timeline bounds identify them.
// It is a comparable struct rather than a concatenated string so that a brand
// name containing a separator cannot collide with another key.
type ProductKey struct {
	Brand string
	Name  string
	Start float64
	End   float64
}

// Key returns the derived identity for the product.
func (p Product) Key() ProductKey {
	k := ProductKey{Brand: p.Brand, Name: p.ProductName}
	if len(p.Timeline) > 0 {
		k.Start = p.Timeline[0]
	}
	if len(p.Timeline) > 1 {
		k.End = p.Timeline[1]
	}
	return k
}

// Start returns the beginning of the product's active window in seconds.
func (p Product) Start() float64 {
	if len(p.Timeline) > 0 {
		return p.Timeline[0]
	}
	return 0
}

// End returns the end of the product's active window in seconds.
func (p Product) End() float64 {
	if len(p.Timeline) > 1 {
		return p.Timeline[1]
	}
	return 0
}

// ActiveAt reports whether t falls within the product's timeline.
// Both interval ends are inclusive.
func (p Product) ActiveAt(t float64) bool {
	return t >= p.Start() && t <= p.End()
}

// priceSentinels are upstream values that mean "no price available". They are
// kept on the record at parse time and filtered when the price is consumed.
var priceSentinels = map[string]bool{
	"":              true,
	"unknown":       true,
	"not specified": true,
	"not available": true,
	"n/a":           true,
	"none":          true,
}

// HasPrice reports whether the product carries a usable price.
func (p Product) HasPrice() bool {
	return !priceSentinels[strings.ToLower(strings.TrimSpace(p.Price))]
}

// PriceValue parses the free-text price into a number. Sentinel and
// non-numeric prices are worth 0.
func (p Product) PriceValue() float64 {
	if !p.HasPrice() {
		return 0
	}
	return ParsePrice(p.Price)
}

// ParsePrice extracts a numeric amount from a free-text price such as
// "$12.99" or "12,99 USD". Returns 0 when no number can be found.
func ParsePrice(s string) float64 {
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case (r == '.' || r == ',') && !seenDot && b.Len() > 0:
			seenDot = true
			b.WriteByte('.')
		default:
			if b.Len() > 0 {
				goto done
			}
		}
	}
done:
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(b.String(), "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// RelatedProduct is a catalog item suggested alongside a detected product.
// Unlike detected products it carries an externally supplied id and a
// numeric price.
type RelatedProduct struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Description string    `json:"description,omitempty"`
	Timeline    []float64 `json:"timeline,omitempty"` // [start, end] of the source clip
	Score       float64   `json:"score,omitempty"`
}
