package domain

// CartItem is a product held in the viewer's cart together with a quantity.
// Items are keyed by an externally supplied id; detected products get one
// assigned when they are added.
type CartItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Price       string `json:"price,omitempty"` // free text, sentinel-aware
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Quantity    int    `json:"quantity"`
}

// LinePrice returns the numeric value of the item's price, treating sentinel
// or non-numeric prices as 0.
func (i CartItem) LinePrice() float64 {
	p := Product{Price: i.Price}
	return p.PriceValue()
}
