package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/popular-movies/internal/logging/events"
)

const (
	filterPromptText  = "» "
	filterPlaceholder = "(type to filter)"
)

// filterEdit is one editing operation on the filter of a level.
type filterEdit struct {
	apply func(*level) bool
	trace func(*level)
	// needsText leaves the key to grid navigation while the filter is empty.
	needsText bool
}

func traceCaret(l *level)     { events.Filter.Cursor(l.ID, l.FilterCursor) }
func traceCaretWord(l *level) { events.Filter.CursorWord(l.ID, l.FilterCursor) }
func traceBackspace(l *level) { events.Filter.Backspace(l.ID, l.Filter) }

var clearFilter = filterEdit{
	apply: func(l *level) bool {
		l.SetFilter("", 0)
		return true
	},
	trace:     func(l *level) { events.Filter.Cleared(l.ID) },
	needsText: true,
}

var filterChords = map[string]filterEdit{
	"ctrl+u":    clearFilter,
	"ctrl+w":    {apply: (*level).DeleteFilterWordBackward, trace: func(l *level) { events.Filter.WordBackspace(l.ID, l.Filter) }},
	"backspace": {apply: (*level).DeleteFilterRuneBackward, trace: traceBackspace},
	"ctrl+h":    {apply: (*level).DeleteFilterRuneBackward, trace: traceBackspace},
	"ctrl+a":    {apply: (*level).MoveFilterCursorStart, trace: traceCaret},
	"ctrl+e":    {apply: (*level).MoveFilterCursorEnd, trace: traceCaret},
	"alt+b":     {apply: (*level).MoveFilterCursorWordBackward, trace: traceCaretWord},
	"alt+f":     {apply: (*level).MoveFilterCursorWordForward, trace: traceCaretWord},
	"left":      {apply: (*level).MoveFilterCursorRuneBackward, trace: traceCaret, needsText: true},
	"right":     {apply: (*level).MoveFilterCursorRuneForward, trace: traceCaret, needsText: true},
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *level, before int) {
	if l != nil && before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput feeds typed text and editing chords to the filter of the
// current level. It reports false for keys the filter does not consume.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	current := m.currentLevel()
	if current == nil {
		return false, nil
	}
	if edit, ok := filterChords[msg.String()]; ok {
		if edit.needsText && current.Filter == "" {
			return false, nil
		}
		return m.editFilter(current, edit), nil
	}
	text := typedText(msg, current.Filter != "")
	if text == "" {
		return false, nil
	}
	return m.editFilter(current, filterEdit{
		apply: func(l *level) bool { return l.InsertFilterText(text) },
		trace: func(l *level) { events.Filter.Append(l.ID, l.Filter) },
	}), nil
}

func (m *Model) editFilter(l *level, edit filterEdit) bool {
	before := l.FilterCursorPos()
	if !edit.apply(l) {
		return false
	}
	m.noteFilterCursorChange(l, before)
	edit.trace(l)
	m.syncViewport(l)
	return true
}

// typedText returns what a key press types into the filter. A space only
// counts once a query has been started.
func typedText(msg tea.KeyMsg, typing bool) string {
	switch msg.Type {
	case tea.KeySpace:
		if typing {
			return " "
		}
	case tea.KeyRunes:
		if msg.Alt {
			return ""
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) || unicode.IsSpace(r) {
				return ""
			}
		}
		return string(msg.Runes)
	}
	return ""
}

// filterPrompt renders the filter line with the caret over the rune at the
// caret position. An empty filter shows a dimmed placeholder instead.
func (m *Model) filterPrompt() string {
	prompt := render(styles.FilterPrompt, filterPromptText)
	current := m.currentLevel()
	if current == nil {
		return prompt
	}
	textStyle := styles.Filter
	runes, pos := []rune(current.Filter), current.FilterCursorPos()
	if len(runes) == 0 {
		textStyle = styles.FilterPlaceholder
		runes, pos = []rune(filterPlaceholder), 0
	}
	under, rest := " ", ""
	if pos < len(runes) {
		under, rest = string(runes[pos]), string(runes[pos+1:])
	}
	return prompt + render(textStyle, string(runes[:pos])) + m.renderFilterCursor(under, textStyle) + render(textStyle, rest)
}

func (m *Model) renderFilterCursor(char string, textStyle *lipgloss.Style) string {
	m.filterCursor.SetChar(char)
	base := lipgloss.NewStyle()
	if textStyle != nil {
		base = textStyle.Inline(true)
	}
	switch {
	case m.filterCursor.Blink:
		return base.Render(char)
	case styles.Cursor != nil:
		return base.Inherit(styles.Cursor.Inline(true)).Render(char)
	}
	return base.Reverse(true).Render(char)
}
