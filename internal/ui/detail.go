package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/popular-movies/internal/catalog"
	"github.com/atomicstack/popular-movies/internal/detail"
	"github.com/atomicstack/popular-movies/internal/logging/events"
)

const (
	detailDefaultWidth = 72
	detailScrollStep   = 3
)

var (
	detailBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	detailScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// detailView is the screen shown after a successful detail fetch.
type detailView struct {
	itemID       string
	summary      detail.Summary
	width        int
	lines        []string
	scrollOffset int
}

func (m *Model) openDetail(nav catalog.Navigation) {
	summary := detail.Summarize(nav.Payload)
	if summary.ID == "" {
		summary.ID = nav.Item.ID
	}
	if summary.PosterPath == "" {
		summary.PosterPath = nav.Item.PosterPath
	}
	if summary.Title == "" && summary.OriginalTitle == "" {
		summary.Title = nav.Item.Title
	}
	m.detail = &detailView{itemID: nav.Item.ID, summary: summary, width: -1}
	events.UI.Open("detail", nav.Item.ID, summary.Heading())
}

func (m *Model) closeDetail() {
	if m.detail == nil {
		return
	}
	m.detail = nil
	events.UI.Back("detail")
	if grid := m.gridLevel(); grid != nil {
		m.syncViewport(grid)
	}
}

// detailLines returns the body wrapped for the current panel width.
func (m *Model) detailLines() []string {
	d := m.detail
	if d == nil {
		return nil
	}
	innerW := m.detailPanelWidth() - 2
	if d.width != innerW || d.lines == nil {
		d.width = innerW
		d.lines = d.summary.Lines(innerW)
	}
	return d.lines
}

func (m *Model) detailPanelWidth() int {
	if m.width > 0 {
		return max(m.width, 4)
	}
	return detailDefaultWidth
}

// detailBodyHeight is the number of content rows inside the panel border.
func (m *Model) detailBodyHeight() int {
	if m.height <= 0 {
		return len(m.detailLines())
	}
	used := 2 // border
	if m.menuHeader() != "" {
		used++
	}
	if m.showFooter {
		used += 2
	}
	return max(m.height-used, 1)
}

func (m *Model) scrollDetail(delta int) {
	if m.detail == nil {
		return
	}
	maxOffset := max(len(m.detailLines())-m.detailBodyHeight(), 0)
	m.detail.scrollOffset = min(max(m.detail.scrollOffset+delta, 0), maxOffset)
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.closeDetail()
	case "up", "k":
		m.scrollDetail(-1)
	case "down", "j":
		m.scrollDetail(1)
	case "pgup":
		m.scrollDetail(-m.detailBodyHeight())
	case "pgdown", " ":
		m.scrollDetail(m.detailBodyHeight())
	case "home":
		m.scrollDetail(-len(m.detailLines()))
	case "end":
		m.scrollDetail(len(m.detailLines()))
	}
	return nil
}

// handleMouseMsg scrolls the detail panel with the mouse wheel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.detail == nil {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.scrollDetail(-detailScrollStep)
	case tea.MouseButtonWheelDown:
		m.scrollDetail(detailScrollStep)
	}
	return nil
}

// renderDetailPanel builds the bordered detail box with exactly height rows
// and totalWidth columns.
func (m *Model) renderDetailPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := max(totalWidth-2, 1)
	innerH := max(height-2, 1)

	lines := m.detailLines()
	maxOffset := max(len(lines)-innerH, 0)
	offset := min(max(m.detail.scrollOffset, 0), maxOffset)
	m.detail.scrollOffset = offset
	end := min(offset+innerH, len(lines))
	visible := lines[offset:end]

	scrollSeg := ""
	if len(lines) > innerH {
		scrollSeg = fmt.Sprintf(" %d/%d ", end, len(lines))
	}
	titleSeg := " " + m.detail.summary.Heading() + " "
	dashes := totalWidth - 4 - ansi.StringWidth(titleSeg) - ansi.StringWidth(scrollSeg)
	if dashes < 0 {
		scrollSeg = ""
		dashes = totalWidth - 4 - ansi.StringWidth(titleSeg)
	}
	if dashes < 0 {
		titleSeg = ansi.Truncate(titleSeg, max(totalWidth-4, 1), "…")
		dashes = totalWidth - 4 - ansi.StringWidth(titleSeg)
	}
	dashes = max(dashes, 0)
	topLine := detailBorderStyle.Render(tlc+hz) +
		styles.DetailTitle.Render(titleSeg) +
		detailBorderStyle.Render(strings.Repeat(hz, dashes)) +
		detailScrollStyle.Render(scrollSeg) +
		detailBorderStyle.Render(hz+trc)
	bottomLine := detailBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	rows := make([]string, 0, innerH+2)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(visible) {
			content = visible[i]
		}
		w := ansi.StringWidth(content)
		if w > innerW {
			content = ansi.Truncate(content, innerW, "…")
			w = ansi.StringWidth(content)
		}
		if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		rows = append(rows, detailBorderStyle.Render(vt)+styles.DetailBody.Render(content)+detailBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}
