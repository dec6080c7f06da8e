package usecase

import "github.com/vidshop/backend/internal/domain"

// ActiveProducts returns the products whose timeline contains t, in the same
// relative order as the input. Both interval ends are inclusive. Called on
// every playback tick, so it allocates nothing beyond the result slice.
func ActiveProducts(products []domain.Product, t float64) []domain.Product {
	active := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ActiveAt(t) {
			active = append(active, p)
		}
	}
	return active
}

// sameKeys reports whether two product lists resolve to the same ordered key
// sequence. Used to suppress redundant visible-set notifications.
func sameKeys(a, b []domain.Product) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key() != b[i].Key() {
			return false
		}
	}
	return true
}
