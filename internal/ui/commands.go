package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popular-movies/internal/catalog"
	"github.com/atomicstack/popular-movies/internal/logging/events"
	"github.com/atomicstack/popular-movies/internal/menu"
	"github.com/atomicstack/popular-movies/internal/tmdb"
	"github.com/atomicstack/popular-movies/internal/ui/command"
)

const (
	requestCatalog = "catalog"
	requestDetail  = "detail"
)

func (m *Model) mount() tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	return m.startCatalog(m.ctrl.Mount())
}

func (m *Model) selectSort(sort tmdb.SortOption) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	return m.startCatalog(m.ctrl.SelectSort(sort))
}

func (m *Model) reload() tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	return m.startCatalog(m.ctrl.Reload())
}

// startCatalog resets the grid for a catalog job just handed out by the
// controller. A nil job means the connectivity check failed.
func (m *Model) startCatalog(job catalog.Job) tea.Cmd {
	m.detail = nil
	m.syncGrid()
	sort := m.ctrl.Sort().Segment()
	if job == nil {
		events.Connectivity.Offline("fetch catalog")
		events.Catalog.LoadError(sort, m.ctrl.Generation(), m.ctrl.Err())
		return nil
	}
	events.Catalog.LoadStart(sort, m.ctrl.Generation())
	return m.bus.Execute(command.Request{ID: requestCatalog, Label: sort, Job: job})
}

// openItem asks the controller for the detail of the grid item under the
// cursor.
func (m *Model) openItem(item menu.Item) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	job, err := m.ctrl.SelectItem(item.Index)
	if errors.Is(err, catalog.ErrNoSelection) {
		return nil
	}
	events.UI.Open(gridLevelID, item.ID, item.Label)
	if job == nil {
		m.syncGrid()
		events.Connectivity.Offline("fetch detail")
		events.Detail.LoadError(item.ID, m.ctrl.Err())
		return nil
	}
	events.Detail.LoadStart(item.ID, m.ctrl.Generation())
	return m.bus.Execute(command.Request{ID: requestDetail, Label: item.ID, Job: job})
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.ResultMsg)
	if !ok || m.ctrl == nil {
		return nil
	}
	res := result.Result
	if !m.ctrl.Current(res) {
		events.Catalog.Stale(res.Kind.String(), res.Generation, m.ctrl.Generation())
		return nil
	}
	nav, open := m.ctrl.Apply(res)
	switch res.Kind {
	case catalog.CatalogResult:
		if res.Err != nil {
			events.Catalog.LoadError(res.Sort.Segment(), res.Generation, res.Err)
		} else {
			events.Catalog.LoadSuccess(res.Sort.Segment(), res.Generation, len(res.Items))
		}
		m.syncGrid()
	case catalog.DetailResult:
		if res.Err != nil {
			events.Detail.LoadError(res.Item.ID, res.Err)
			m.syncGrid()
			return nil
		}
		events.Detail.LoadSuccess(res.Item.ID, len(res.Detail))
		if open {
			m.openDetail(nav)
		}
	}
	return nil
}

// syncGrid mirrors the controller's items into the grid level. The filter
// survives; the cursor is clamped by the level.
func (m *Model) syncGrid() {
	grid := m.gridLevel()
	if grid == nil || m.ctrl == nil {
		return
	}
	grid.UpdateItems(menu.CatalogItems(m.ctrl.Items()))
	m.syncViewport(grid)
}
