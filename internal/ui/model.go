package ui

import (
	"context"
	"reflect"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popular-movies/internal/backend"
	"github.com/atomicstack/popular-movies/internal/catalog"
	"github.com/atomicstack/popular-movies/internal/menu"
	"github.com/atomicstack/popular-movies/internal/theme"
	"github.com/atomicstack/popular-movies/internal/ui/command"
	uistate "github.com/atomicstack/popular-movies/internal/ui/state"
)

type level = uistate.Level

const (
	headerSeparator = "→"
	rootTitle       = "movies"
	defaultColumns  = 3
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, columns int) *level {
	return uistate.NewLevel(id, title, items, columns)
}

// Options configures a Model.
type Options struct {
	// Width and Height pin the view size; zero follows the terminal.
	Width      int
	Height     int
	Columns    int
	ShowFooter bool
	Watcher    *backend.Watcher
	Context    context.Context
	// Static disables the spinner and caret blink so tests can drive the
	// model without timer messages.
	Static bool
}

// Model implements the Bubble Tea model for the movie grid.
type Model struct {
	ctrl *catalog.Controller
	bus  *command.Bus

	// stack holds the grid at the bottom and the sort popup above it.
	stack  []*level
	detail *detailView

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	columns     int
	showFooter  bool
	static      bool

	spinner  spinner.Model
	spinning bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	backend    *backend.Watcher
	statusSeen bool
	online     bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI around ctrl. Nothing is fetched until Init.
func NewModel(ctrl *catalog.Controller, opts Options) *Model {
	columns := opts.Columns
	if columns < 1 {
		columns = defaultColumns
	}
	m := &Model{
		ctrl:       ctrl,
		bus:        command.New(opts.Context),
		stack:      []*level{newLevel(gridLevelID, rootTitle, nil, columns)},
		columns:    columns,
		showFooter: opts.ShowFooter,
		static:     opts.Static,
		backend:    opts.Watcher,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if styles.Loading != nil {
		s.Style = *styles.Loading
	}
	m.spinner = s
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	if m.static {
		c.SetMode(cursor.CursorStatic)
	}
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It mounts the controller, which
// starts the first catalog load.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.mount()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return batch(cmds)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(command.ResultMsg{}): m.handleResultMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if cmd := m.ensureSpinner(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return batch(cmds)
}

// ensureSpinner starts the spinner tick loop when a load is pending.
func (m *Model) ensureSpinner() tea.Cmd {
	if m.static || m.spinning || m.ctrl == nil || m.ctrl.State() != catalog.Loading {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if m.ctrl == nil || m.ctrl.State() != catalog.Loading {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

func batch(cmds []tea.Cmd) tea.Cmd {
	live := cmds[:0]
	for _, cmd := range cmds {
		if cmd != nil {
			live = append(live, cmd)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	default:
		return tea.Batch(live...)
	}
}
