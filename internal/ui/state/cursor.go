package state

// MoveCursorHome moves the cursor to the first item.
func (l *Level) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (l *Level) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// MoveCursorLeft moves to the previous item.
func (l *Level) MoveCursorLeft() bool {
	return l.moveCursorBy(-1)
}

// MoveCursorRight moves to the next item.
func (l *Level) MoveCursorRight() bool {
	return l.moveCursorBy(1)
}

// MoveCursorUp moves one row up. Single-column levels wrap to the last item.
func (l *Level) MoveCursorUp() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	cols := l.cols()
	switch {
	case l.Cursor-cols >= 0:
		l.Cursor -= cols
	case cols == 1:
		l.Cursor = n - 1
	}
	return old != l.Cursor
}

// MoveCursorDown moves one row down, landing on the last item when the row
// below is shorter. Single-column levels wrap to the first item.
func (l *Level) MoveCursorDown() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	cols := l.cols()
	switch {
	case l.Cursor+cols < n:
		l.Cursor += cols
	case cols == 1:
		l.Cursor = 0
	case l.RowOf(l.Cursor) < l.RowOf(n-1):
		l.Cursor = n - 1
	}
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given number of rows.
func (l *Level) MoveCursorPageUp(maxRows int) bool {
	return l.moveCursorBy(-l.pageSize(maxRows) * l.cols())
}

// MoveCursorPageDown moves the cursor down by the given number of rows.
func (l *Level) MoveCursorPageDown(maxRows int) bool {
	return l.moveCursorBy(l.pageSize(maxRows) * l.cols())
}

func (l *Level) moveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = clamp(max(l.Cursor, 0)+delta, 0, len(l.Items)-1)
	return l.Cursor != old
}

func (l *Level) pageSize(maxRows int) int {
	total := l.Rows()
	if total == 0 {
		return 0
	}
	if maxRows <= 0 || maxRows > total {
		return total
	}
	return maxRows
}

// EnsureCursorVisible adjusts the viewport offset so the cursor's row stays
// within the visible rows.
func (l *Level) EnsureCursorVisible(maxRows int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	if maxRows <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(l.Rows()-maxRows, 0)
	l.ViewportOffset = clamp(l.ViewportOffset, 0, maxOffset)
	row := l.RowOf(l.Cursor)
	if row < l.ViewportOffset {
		l.ViewportOffset = row
	}
	if row > l.ViewportOffset+maxRows-1 {
		l.ViewportOffset = clamp(row-maxRows+1, 0, maxOffset)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
