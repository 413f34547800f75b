package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popular-movies/internal/backend"
	"github.com/atomicstack/popular-movies/internal/logging/events"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent updates the header status. It never touches the
// controller; fetches check connectivity on their own.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Kind != backend.KindConnectivity {
		return
	}
	if !m.statusSeen || m.online != evt.Online {
		events.Connectivity.Changed(evt.Online)
	}
	m.statusSeen = true
	m.online = evt.Online
}
