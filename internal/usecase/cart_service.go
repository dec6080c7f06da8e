package usecase

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/vidshop/backend/internal/domain"
)

// CartService is a quantity-keyed collection of products with write-through
// persistence. The snapshot is loaded once at construction and re-saved
// after every mutation; persistence failures are logged and never surface
// to the viewer.
type CartService struct {
	mu     sync.Mutex
	store  domain.CartStore
	items  []domain.CartItem
	opened bool
}

// NewCartService creates a cart backed by the given store. A failed load
// degrades to an empty cart.
func NewCartService(store domain.CartStore) *CartService {
	s := &CartService{store: store}
	items, err := store.Load()
	if err != nil {
		log.Printf("[CART] Failed to load saved cart, starting empty: %v", err)
		items = nil
	}
	s.items = items
	return s
}

// CartItemFromProduct converts a detected product into a cart item. Detected
// products have no upstream id, so one is assigned.
func CartItemFromProduct(p domain.Product) domain.CartItem {
	return domain.CartItem{
		ID:          uuid.NewString(),
		Name:        p.ProductName,
		Brand:       p.Brand,
		Price:       p.Price,
		Description: p.Description,
		Quantity:    1,
	}
}

// CartItemFromRelated converts a related-product suggestion into a cart item.
func CartItemFromRelated(r domain.RelatedProduct) domain.CartItem {
	return domain.CartItem{
		ID:          r.ID,
		Name:        r.Name,
		Brand:       r.Brand,
		Price:       fmt.Sprintf("%.2f", r.Price),
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Quantity:    1,
	}
}

// AddItem inserts the item with quantity 1, or increments the quantity when
// an item with the same id already exists. Adding always reveals the cart.
func (s *CartService) AddItem(item domain.CartItem) domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			s.opened = true
			s.persist()
			return s.items[i]
		}
	}

	s.items = append(s.items, item)
	s.opened = true
	s.persist()
	return item
}

// UpdateQuantity adjusts an item's quantity by change (which may be
// negative). A resulting quantity of zero or less removes the item
// entirely.
func (s *CartService) UpdateQuantity(id string, change int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		s.items[i].Quantity += change
		if s.items[i].Quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		s.persist()
		return nil
	}
	return domain.ErrCartItemNotFound
}

// RemoveItem removes an item regardless of quantity.
func (s *CartService) RemoveItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return nil
		}
	}
	return domain.ErrCartItemNotFound
}

// Clear empties the cart.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist()
}

// Items returns a copy of the cart contents.
func (s *CartService) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems returns the sum of quantities across the cart.
func (s *CartService) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the price-weighted sum of quantities. Items with a
// sentinel or non-numeric price contribute 0.
func (s *CartService) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.items {
		total += item.LinePrice() * float64(item.Quantity)
	}
	return total
}

// IsOpen reports whether the cart panel should be shown. Adding an item
// always opens it.
func (s *CartService) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

// ToggleOpen flips the cart panel visibility.
func (s *CartService) ToggleOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = !s.opened
	return s.opened
}

// Flush writes the current snapshot once more. Called on teardown so a
// pending state is not lost with the process.
func (s *CartService) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(s.items)
}

// persist writes the full snapshot through to the store. Callers hold the
// lock. Failures are logged only; the in-memory cart stays authoritative.
func (s *CartService) persist() {
	if err := s.store.Save(s.items); err != nil {
		log.Printf("[CART] Failed to persist cart snapshot: %v", err)
	}
}
