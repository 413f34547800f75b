package menu

import (
	"github.com/atomicstack/popular-movies/internal/tmdb"
)

// Item represents a selectable entry in the grid or a popup.
type Item struct {
	ID    string
	Label string
	// Index is the position of the entry in its source list. Filtering
	// drops items, so selections resolve through Index.
	Index int
	// Current marks the active choice in a popup.
	Current bool
}

const (
	// LevelGrid is the catalog grid.
	LevelGrid = "grid"
	// LevelSort is the sort order popup.
	LevelSort = "sort"
)

// CatalogItems converts catalog entries into grid items.
func CatalogItems(items []tmdb.CatalogItem) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = Item{ID: item.ID, Label: item.Label(), Index: i}
	}
	return out
}

// SortItems lists the sort choices, marking current.
func SortItems(current tmdb.SortOption) []Item {
	opts := tmdb.SortOptions()
	out := make([]Item, len(opts))
	for i, opt := range opts {
		out[i] = Item{ID: opt.Segment(), Label: opt.Label(), Index: i, Current: opt == current}
	}
	return out
}

// SortFor resolves a sort popup item back to its option.
func SortFor(item Item) (tmdb.SortOption, bool) {
	opt, err := tmdb.ParseSortOption(item.ID)
	if err != nil || item.ID == "" {
		return tmdb.Popularity, false
	}
	return opt, true
}
