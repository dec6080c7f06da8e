package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vidshop/backend/internal/domain"
)

// Normalize parses a raw analysis response into an ordered product list.
// The upstream model is asked for a bare JSON array but sometimes wraps it in
// markdown code fences anyway, so any fence markers are stripped first.
//
// The whole batch is rejected on the first malformed element; partial
// success would let a half-broken analysis overwrite good metadata.
func Normalize(raw string) ([]domain.Product, error) {
	body := stripFences(raw)

	var parsed interface{}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotJSON, err)
	}
	if _, ok := parsed.([]interface{}); !ok {
		return nil, fmt.Errorf("%w: got %T", domain.ErrNotArray, parsed)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(body), &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotArray, err)
	}

	products := make([]domain.Product, 0, len(elements))
	for i, element := range elements {
		var p domain.Product
		if err := json.Unmarshal(element, &p); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", domain.ErrInvalidProduct, i, err)
		}
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", domain.ErrInvalidProduct, i, err)
		}
		products = append(products, p)
	}

	return products, nil
}

// stripFences removes markdown code fence markers around a JSON body.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "```") {
		return s
	}
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// validateProduct checks the structural invariants of a parsed product.
// Price sentinels ("Not specified" etc.) are deliberately NOT rejected here;
// they are filtered where the price is consumed.
func validateProduct(p domain.Product) error {
	if p.ProductName == "" {
		return fmt.Errorf("missing product_name")
	}
	if p.Brand == "" {
		return fmt.Errorf("missing brand")
	}
	if len(p.Timeline) != 2 {
		return fmt.Errorf("timeline must be [start, end], got %d values", len(p.Timeline))
	}
	if p.Timeline[0] < 0 || p.Timeline[0] > p.Timeline[1] {
		return fmt.Errorf("invalid timeline [%v, %v]", p.Timeline[0], p.Timeline[1])
	}
	if len(p.Location) != 4 {
		return fmt.Errorf("location must be [x, y, w, h], got %d values", len(p.Location))
	}
	for _, v := range p.Location {
		if v < 0 || v > 100 {
			return fmt.Errorf("location value %v outside [0, 100]", v)
		}
	}
	return nil
}
