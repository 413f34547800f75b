package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleTextInputAppendsRunes(t *testing.T) {
	h := startedHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	current := m.currentLevel()
	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("arr")})
	if !handled {
		t.Fatalf("expected key press to be handled")
	}
	if current.Filter != "arr" {
		t.Fatalf("expected filter 'arr', got %q", current.Filter)
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor at end, got %d", pos)
	}
}

func TestHandleTextInputCursorMovement(t *testing.T) {
	h := startedHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	current := m.currentLevel()
	current.SetFilter("abc", 3)

	if handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyLeft}); !handled {
		t.Fatalf("expected left arrow to be handled")
	}
	if pos := current.FilterCursorPos(); pos != 2 {
		t.Fatalf("expected cursor at 2 after left, got %d", pos)
	}

	if handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRight}); !handled {
		t.Fatalf("expected right arrow to be handled")
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor back at 3, got %d", pos)
	}
}

func TestArrowsBelongToGridWithoutFilter(t *testing.T) {
	h := startedHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	if handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRight}); handled {
		t.Fatalf("expected right arrow to fall through to grid navigation")
	}
}

func TestFilterEditingChords(t *testing.T) {
	h := startedHarness(t, newStubFetcher(), Options{})
	h.Send(keyMsg("blade"))
	h.Send(tea.KeyMsg{Type: tea.KeySpace})
	h.Send(keyMsg("run"))
	grid := h.Model().gridLevel()
	if grid.Filter != "blade run" {
		t.Fatalf("expected filter 'blade run', got %q", grid.Filter)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlW})
	if grid.Filter != "blade " {
		t.Fatalf("expected word removed, got %q", grid.Filter)
	}
	h.Send(keyMsg("backspace"))
	if grid.Filter != "blade" {
		t.Fatalf("expected rune removed, got %q", grid.Filter)
	}
	h.Send(keyMsg("ctrl+u"))
	if grid.Filter != "" || len(grid.Items) != len(popularMovies) {
		t.Fatalf("expected filter cleared, got %q", grid.Filter)
	}
}

func TestFilterPromptPlaceholder(t *testing.T) {
	m := newTestModel(newStubFetcher(), nil, Options{})
	prompt := m.filterPrompt()
	if !strings.Contains(prompt, "type to filter") {
		t.Fatalf("expected placeholder in prompt, got %q", prompt)
	}
}

func TestLeadingSpaceIsNotTyped(t *testing.T) {
	h := startedHarness(t, newStubFetcher(), Options{})
	h.Send(tea.KeyMsg{Type: tea.KeySpace})
	if grid := h.Model().gridLevel(); grid.Filter != "" {
		t.Fatalf("expected empty filter, got %q", grid.Filter)
	}
}

func TestFilterCaretChords(t *testing.T) {
	h := startedHarness(t, newStubFetcher(), Options{})
	h.Send(keyMsg("blade"))
	h.Send(tea.KeyMsg{Type: tea.KeySpace})
	h.Send(keyMsg("runner"))
	grid := h.Model().gridLevel()

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlA})
	if pos := grid.FilterCursorPos(); pos != 0 {
		t.Fatalf("expected caret at start, got %d", pos)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f"), Alt: true})
	if pos := grid.FilterCursorPos(); pos != len("blade ") {
		t.Fatalf("expected caret after first word, got %d", pos)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlE})
	if pos := grid.FilterCursorPos(); pos != len("blade runner") {
		t.Fatalf("expected caret at end, got %d", pos)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true})
	if pos := grid.FilterCursorPos(); pos != len("blade ") {
		t.Fatalf("expected caret at start of second word, got %d", pos)
	}
	if grid.Filter != "blade runner" {
		t.Fatalf("caret chords must not edit the filter, got %q", grid.Filter)
	}
}
