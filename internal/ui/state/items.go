package state

import "github.com/atomicstack/popular-movies/internal/menu"

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []menu.Item) []menu.Item {
	dup := make([]menu.Item, len(items))
	copy(dup, items)
	return dup
}
