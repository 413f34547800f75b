package command

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popular-movies/internal/catalog"
	"github.com/atomicstack/popular-movies/internal/logging/events"
)

// Request encapsulates one fetch started by the catalog controller.
type Request struct {
	ID    string
	Label string
	Job   catalog.Job
}

// ResultMsg carries a finished Job back to the Update loop.
type ResultMsg struct {
	ID     string
	Label  string
	Result catalog.Result
}

// Bus runs catalog jobs off the Update goroutine.
type Bus struct {
	ctx context.Context
}

// New initialises a command bus. Jobs receive ctx; a nil ctx means
// context.Background.
func New(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx}
}

// Execute wraps a job into a Bubble Tea command while emitting trace logs.
// A nil job yields a nil command.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	if req.Job == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	ctx := context.Background()
	if b != nil && b.ctx != nil {
		ctx = b.ctx
	}
	return func() tea.Msg {
		res := req.Job(ctx)
		events.Command.Result(req.ID, req.Label, res.Kind.String())
		return ResultMsg{ID: req.ID, Label: req.Label, Result: res}
	}
}
