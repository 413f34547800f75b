package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popular-movies/internal/logging/events"
	"github.com/atomicstack/popular-movies/internal/menu"
)

const (
	gridLevelID = menu.LevelGrid
	sortLevelID = menu.LevelSort
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab":
		return m.toggleSortPopup()
	case "ctrl+r":
		return m.reload()
	}
	if m.detail != nil {
		return m.handleDetailKey(keyMsg)
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	switch keyMsg.String() {
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursor((*level).MoveCursorUp)
	case "down":
		m.moveCursor((*level).MoveCursorDown)
	case "left":
		m.moveCursor((*level).MoveCursorLeft)
	case "right":
		m.moveCursor((*level).MoveCursorRight)
	case "pgup":
		m.moveCursor(func(l *level) bool { return l.MoveCursorPageUp(m.maxVisibleRows()) })
	case "pgdown":
		m.moveCursor(func(l *level) bool { return l.MoveCursorPageDown(m.maxVisibleRows()) })
	case "home":
		m.moveCursor((*level).MoveCursorHome)
	case "end":
		m.moveCursor((*level).MoveCursorEnd)
	}
	return nil
}

// handleEscapeKey clears an active filter, then closes the popup, then quits.
func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return tea.Quit
	}
	if current.Filter != "" {
		m.editFilter(current, clearFilter)
		return nil
	}
	if len(m.stack) <= 1 {
		return tea.Quit
	}
	m.popLevel()
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	item, ok := current.Current()
	if !ok {
		return nil
	}
	switch current.ID {
	case sortLevelID:
		sort, ok := menu.SortFor(item)
		if !ok {
			return nil
		}
		events.UI.Open(current.ID, item.ID, item.Label)
		m.popLevel()
		if grid := m.gridLevel(); grid != nil {
			before := grid.FilterCursorPos()
			grid.SetFilter("", 0)
			grid.Cursor = 0
			grid.ViewportOffset = 0
			m.noteFilterCursorChange(grid, before)
		}
		return m.selectSort(sort)
	case gridLevelID:
		return m.openItem(item)
	}
	return nil
}

// toggleSortPopup opens the sort menu over the grid, or closes it when it is
// already showing. An open detail view is closed first.
func (m *Model) toggleSortPopup() tea.Cmd {
	if current := m.currentLevel(); current != nil && current.ID == sortLevelID {
		m.popLevel()
		return nil
	}
	if m.ctrl == nil {
		return nil
	}
	m.closeDetail()
	popup := newLevel(sortLevelID, "sort", menu.SortItems(m.ctrl.Sort()), 1)
	for i, item := range popup.Items {
		if item.Current {
			popup.Cursor = i
		}
	}
	m.stack = append(m.stack, popup)
	m.syncViewport(popup)
	return nil
}

func (m *Model) popLevel() {
	if len(m.stack) <= 1 {
		return
	}
	current := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	events.UI.Back(current.ID)
	m.syncViewport(m.currentLevel())
}

func (m *Model) moveCursor(move func(*level) bool) {
	current := m.currentLevel()
	if current == nil {
		return
	}
	if move(current) {
		events.UI.GridCursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleRows())
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Model) gridLevel() *level {
	for _, lvl := range m.stack {
		if lvl.ID == gridLevelID {
			return lvl
		}
	}
	return nil
}
