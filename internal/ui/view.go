package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/popular-movies/internal/catalog"
	"github.com/atomicstack/popular-movies/internal/logging/events"
	"github.com/atomicstack/popular-movies/internal/menu"
)

const (
	errorViewText    = "Unable to load movies. Change the sort order to retry."
	defaultCellWidth = 24
	minCellWidth     = 6
	gridFooter       = "←↑↓→ move  enter open  tab sort  ctrl+r reload  esc back  ctrl+c quit"
	detailFooter     = "↑/↓ scroll  pgup/pgdown page  esc back  tab sort  ctrl+c quit"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	top := make([]styledLine, 0, 16)
	if header := m.headerLine(); header != "" {
		top = append(top, styledLine{text: header, raw: true})
	}
	if m.detail != nil {
		return m.viewDetail(top)
	}
	lines := append(top, m.bodyLines()...)
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: gridFooter, style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (blank + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	bottomLines := applyWidth([]styledLine{{}, {text: m.filterPrompt(), raw: true}}, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

func (m *Model) viewDetail(top []styledLine) string {
	top = applyWidth(top, m.width)
	out := []string{}
	if len(top) > 0 {
		out = append(out, renderLines(top))
	}
	out = append(out, m.renderDetailPanel(m.detailPanelWidth(), m.detailBodyHeight()+2))
	if m.showFooter {
		footer := applyWidth([]styledLine{{}, {text: detailFooter, style: styles.Footer}}, m.width)
		out = append(out, renderLines(footer))
	}
	return strings.Join(out, "\n")
}

// bodyLines renders the popup when it is open and otherwise the grid screen
// for the controller's state.
func (m *Model) bodyLines() []styledLine {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	if current.ID == sortLevelID {
		return m.listLines(current)
	}
	if m.ctrl == nil {
		return nil
	}
	switch m.ctrl.State() {
	case catalog.Loading:
		text := "Loading movies…"
		if m.ctrl.LoadingDetail() {
			text = "Loading details…"
		}
		return []styledLine{{text: m.spinner.View() + " " + render(styles.Loading, text), raw: true}}
	case catalog.Error:
		return []styledLine{{text: errorViewText, style: styles.Error}}
	}
	if len(current.Items) == 0 {
		msg := "(no movies)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	return m.gridLines(current)
}

func (m *Model) gridLines(l *level) []styledLine {
	m.syncViewport(l)
	cols := max(l.Columns, 1)
	cellW := m.cellWidth(cols)
	rows := l.Rows()
	start, end := 0, rows
	if maxRows := m.maxVisibleRows(); maxRows > 0 && rows > maxRows {
		start = min(max(l.ViewportOffset, 0), rows-maxRows)
		l.ViewportOffset = start
		end = start + maxRows
	}
	lines := make([]styledLine, 0, end-start)
	for r := start; r < end; r++ {
		var b strings.Builder
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if idx >= len(l.Items) {
				break
			}
			b.WriteString(renderCell(l.Items[idx], idx == l.Cursor, cellW))
		}
		lines = append(lines, styledLine{text: b.String(), raw: true})
	}
	return lines
}

func (m *Model) cellWidth(cols int) int {
	total := m.width
	if total <= 0 {
		total = defaultCellWidth * cols
	}
	return max(total/cols, minCellWidth)
}

// renderCell draws one grid cell exactly width columns wide.
func renderCell(item menu.Item, selected bool, width int) string {
	indicatorStyle, labelStyle := styles.ItemIndicator, styles.Item
	if selected {
		indicatorStyle, labelStyle = styles.SelectedItemIndicator, styles.SelectedItem
	}
	label := ansi.Truncate(item.Label, max(width-3, 1), "…")
	pad := max(width-2-ansi.StringWidth(label), 0)
	return render(indicatorStyle, "▌") + render(labelStyle, " "+label+strings.Repeat(" ", pad))
}

func (m *Model) listLines(l *level) []styledLine {
	m.syncViewport(l)
	lines := []styledLine{{text: "Sort by", style: styles.Info}}
	if len(l.Items) == 0 {
		return append(lines, styledLine{text: fmt.Sprintf("No matches for %q", l.Filter), style: styles.Info})
	}
	start, end := 0, len(l.Items)
	if maxRows := m.maxVisibleRows() - 1; maxRows > 0 && len(l.Items) > maxRows {
		start = min(max(l.ViewportOffset, 0), len(l.Items)-maxRows)
		end = start + maxRows
	}
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.buildItemLine(l.Items[idx], idx, l, m.width))
	}
	return lines
}

// buildItemLine constructs a single styledLine for a popup item. When width
// is positive the text is padded so the selected background spans the row.
func (m *Model) buildItemLine(item menu.Item, idx int, current *level, width int) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	mark := "  "
	if item.Current {
		mark = "✓ "
	}
	fullText := "▌ " + mark + item.Label
	if width > 0 {
		if pad := width - ansi.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) headerLine() string {
	header := m.menuHeader()
	if header == "" {
		return ""
	}
	out := render(styles.Header, header)
	if status := m.statusText(); status != "" {
		style := styles.StatusOffline
		if m.online {
			style = styles.StatusOnline
		}
		out += "  " + render(style, status)
	}
	return out
}

func (m *Model) menuHeader() string {
	return strings.Join(m.headerSegments(), headerSeparator)
}

func (m *Model) headerSegments() []string {
	segments := []string{rootTitle}
	if m.ctrl != nil {
		segments = append(segments, strings.ToLower(m.ctrl.Sort().Label()))
	}
	if current := m.currentLevel(); current != nil && current.ID == sortLevelID {
		segments = append(segments, current.Title)
	}
	if m.detail != nil {
		segments = append(segments, m.detail.summary.Heading())
	}
	return segments
}

func (m *Model) statusText() string {
	if !m.statusSeen {
		return ""
	}
	if m.online {
		return "● online"
	}
	return "○ offline"
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	for _, lvl := range m.stack {
		m.syncViewport(lvl)
	}
	if m.detail != nil {
		m.scrollDetail(0)
	}
	return nil
}

// maxVisibleRows is the number of grid rows that fit, or -1 when the height
// is unknown.
func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: blank + filter prompt
	if m.menuHeader() != "" {
		used++
	}
	if m.showFooter {
		used += 2
	}
	return max(m.height-used, 1)
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if ansi.StringWidth(line.text) > width {
				line.text = ansi.Truncate(line.text, width, "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := render(line.prefixStyle, string(runes[:line.highlightFrom]))
			tail := render(line.style, string(runes[line.highlightFrom:]))
			text = head + tail
		} else {
			text = render(line.style, text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
