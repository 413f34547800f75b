package state

import (
	"github.com/atomicstack/popular-movies/internal/menu"
)

// Level encapsulates the state of one screen of selectable items: the grid
// or a popup. Items are laid out row-major across Columns.
type Level struct {
	ID           string
	Title        string
	Items        []menu.Item
	Full         []menu.Item
	Filter       string
	FilterCursor int
	Cursor       int
	LastCursor   int
	Columns      int
	// ViewportOffset is the first visible row.
	ViewportOffset int
}

// NewLevel constructs a Level with the given column count (minimum 1).
func NewLevel(id, title string, items []menu.Item, columns int) *Level {
	if columns < 1 {
		columns = 1
	}
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     0,
		LastCursor: -1,
		Columns:    columns,
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the position of the item with the given ID.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the item set, keeping the filter and, where it still
// fits, the cursor and viewport.
func (l *Level) UpdateItems(items []menu.Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > l.Rows()-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// Rows returns the number of grid rows needed for the visible items.
func (l *Level) Rows() int {
	cols := l.cols()
	return (len(l.Items) + cols - 1) / cols
}

// RowOf returns the row holding item index i.
func (l *Level) RowOf(i int) int {
	if i < 0 {
		return 0
	}
	return i / l.cols()
}

func (l *Level) cols() int {
	if l.Columns < 1 {
		return 1
	}
	return l.Columns
}
