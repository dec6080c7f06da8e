package usecase

import "github.com/vidshop/backend/internal/domain"

// CollapseEngine tracks per-product collapse/expand state as playback time
// advances. State is sparse: a key absent from the maps is collapsed with no
// manual override.
//
// The engine is a synchronous reducer with no locking of its own; callers
// (the viewer session) serialize access.
//
// Rules evaluated per product on every tick, in order:
//  1. Entering the active window from outside clears any manual override and
//     expands the product. "Outside" is positional, not directional, so a
//     backward seek into a previously exited window re-triggers this rule.
//  2. While inside the window nothing changes, even when the viewer has
//     manually collapsed the product.
//  3. After the window (t > end) the product auto-collapses, unless a manual
//     override is set, in which case the viewer's choice stands until the
//     window is next entered.
//  4. Before the window (t < start) nothing happens automatically.
type CollapseEngine struct {
	collapsed map[domain.ProductKey]bool
	manual    map[domain.ProductKey]bool
	active    map[domain.ProductKey]bool
}

// NewCollapseEngine creates an engine with empty state maps.
func NewCollapseEngine() *CollapseEngine {
	e := &CollapseEngine{}
	e.Reset(nil)
	return e
}

// Reset clears all state. Called whenever the product list changes; every
// product starts collapsed with no override and outside its window.
func (e *CollapseEngine) Reset(products []domain.Product) {
	e.collapsed = make(map[domain.ProductKey]bool, len(products))
	e.manual = make(map[domain.ProductKey]bool, len(products))
	e.active = make(map[domain.ProductKey]bool, len(products))
}

// Tick reconciles every product's collapse state against playback time t.
// Returns true when at least one product's resolved state changed, so the
// caller can skip redundant renders on the sub-second tick stream.
func (e *CollapseEngine) Tick(products []domain.Product, t float64) bool {
	changed := false

	for _, p := range products {
		key := p.Key()
		nowActive := p.ActiveAt(t)
		wasActive := e.active[key]

		switch {
		case nowActive && !wasActive:
			// Rule 1: entering from outside.
			delete(e.manual, key)
			if e.Collapsed(key) {
				e.collapsed[key] = false
				changed = true
			}
		case nowActive:
			// Rule 2: steady state inside the window.
		case t > p.End():
			// Rule 3: past the window.
			if !e.manual[key] && !e.Collapsed(key) {
				e.collapsed[key] = true
				changed = true
			}
		default:
			// Rule 4: before the window.
		}

		e.active[key] = nowActive
	}

	return changed
}

// Toggle flips the collapse state for a key and records a manual override.
// Accepted at any time; rule 1 clears the override on the next entry into
// the product's window. Returns the new collapsed state.
func (e *CollapseEngine) Toggle(key domain.ProductKey) bool {
	next := !e.Collapsed(key)
	e.collapsed[key] = next
	e.manual[key] = true
	return next
}

// Collapsed reports the resolved collapse state for a key. Unknown keys
// default to collapsed.
func (e *CollapseEngine) Collapsed(key domain.ProductKey) bool {
	if v, ok := e.collapsed[key]; ok {
		return v
	}
	return true
}

// ManualOverride reports whether the viewer has explicitly toggled the key
// since it last entered its active window.
func (e *CollapseEngine) ManualOverride(key domain.ProductKey) bool {
	return e.manual[key]
}
