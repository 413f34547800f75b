package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/atomicstack/popular-movies/internal/catalog"
	"github.com/atomicstack/popular-movies/internal/netcheck"
	"github.com/atomicstack/popular-movies/internal/tmdb"
)

var (
	popularMovies = []tmdb.CatalogItem{
		{ID: "1", PosterPath: "/a.jpg", Title: "Arrival"},
		{ID: "2", PosterPath: "/b.jpg", Title: "Blade Runner"},
		{ID: "3", PosterPath: "/c.jpg", Title: "Contact"},
		{ID: "4", PosterPath: "/d.jpg", Title: "Dune"},
	}
	topRatedMovies = []tmdb.CatalogItem{
		{ID: "10", PosterPath: "/g.jpg", Title: "The Godfather"},
	}
)

type stubURLs struct{}

func (stubURLs) CatalogURL(sort tmdb.SortOption) string { return "catalog/" + sort.Segment() }
func (stubURLs) DetailURL(id string) string             { return "detail/" + id }

type stubFetcher struct {
	mu         sync.Mutex
	catalogs   map[string][]tmdb.CatalogItem
	catalogErr error
	detailErr  error
	calls      []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{catalogs: map[string][]tmdb.CatalogItem{
		"catalog/popular":   popularMovies,
		"catalog/top_rated": topRatedMovies,
	}}
}

func (f *stubFetcher) FetchCatalog(_ context.Context, url string) ([]tmdb.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.catalogs[url], nil
}

func (f *stubFetcher) FetchDetail(_ context.Context, url string) (tmdb.DetailPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	id := strings.TrimPrefix(url, "detail/")
	return tmdb.DetailPayload(`{"id":` + id + `,"title":"Movie ` + id + `","release_date":"2016-11-10","overview":"Plot for ` + id + `."}`), nil
}

func (f *stubFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type switchGate struct {
	mu     sync.Mutex
	online bool
}

func (g *switchGate) IsOnline() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.online
}

func (g *switchGate) Set(online bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.online = online
}

func newTestModel(fetcher catalog.Fetcher, gate netcheck.Gate, opts Options) *Model {
	opts.Static = true
	return NewModel(catalog.New(stubURLs{}, fetcher, gate), opts)
}

func startedHarness(t *testing.T, fetcher *stubFetcher, opts Options) *Harness {
	t.Helper()
	h := NewHarness(newTestModel(fetcher, nil, opts))
	h.Start()
	if state := h.Model().ctrl.State(); state != catalog.Content {
		t.Fatalf("expected content after start, got %s", state)
	}
	return h
}

func TestNewModelStartsLoading(t *testing.T) {
	m := newTestModel(newStubFetcher(), nil, Options{})
	if got := m.menuHeader(); got != "movies→most popular" {
		t.Fatalf("unexpected header %q", got)
	}
	if view := m.View(); !strings.Contains(view, "Loading movies…") {
		t.Fatalf("expected loading view, got:\n%s", view)
	}
	if grid := m.gridLevel(); grid == nil || grid.Columns != defaultColumns {
		t.Fatalf("expected grid with %d columns, got %#v", defaultColumns, grid)
	}
}

func TestInitLoadsCatalogIntoGrid(t *testing.T) {
	fetcher := newStubFetcher()
	h := startedHarness(t, fetcher, Options{})
	grid := h.Model().gridLevel()
	if len(grid.Items) != len(popularMovies) {
		t.Fatalf("expected %d grid items, got %d", len(popularMovies), len(grid.Items))
	}
	if grid.Items[3].Label != "Dune" || grid.Items[3].Index != 3 {
		t.Fatalf("unexpected grid item %#v", grid.Items[3])
	}
	if calls := fetcher.Calls(); len(calls) != 1 || calls[0] != "catalog/popular" {
		t.Fatalf("unexpected fetches %v", calls)
	}
	if view := h.View(); !strings.Contains(view, "Arrival") || !strings.Contains(view, "Dune") {
		t.Fatalf("expected movies in view, got:\n%s", view)
	}
}

func TestOfflineMountShowsErrorWithoutFetching(t *testing.T) {
	fetcher := newStubFetcher()
	h := NewHarness(newTestModel(fetcher, netcheck.GateFunc(func() bool { return false }), Options{}))
	h.Start()
	if state := h.Model().ctrl.State(); state != catalog.Error {
		t.Fatalf("expected error state, got %s", state)
	}
	if !errors.Is(h.Model().ctrl.Err(), tmdb.ErrOffline) {
		t.Fatalf("expected offline error, got %v", h.Model().ctrl.Err())
	}
	if calls := fetcher.Calls(); len(calls) != 0 {
		t.Fatalf("expected no fetch while offline, got %v", calls)
	}
	if view := h.View(); !strings.Contains(view, errorViewText) {
		t.Fatalf("expected error view, got:\n%s", view)
	}
}

func TestCatalogFailureShowsSameErrorView(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.catalogErr = &tmdb.FetchError{Kind: tmdb.KindParse, Op: "fetch catalog"}
	h := NewHarness(newTestModel(fetcher, nil, Options{}))
	h.Start()
	view := h.View()
	if !strings.Contains(view, errorViewText) {
		t.Fatalf("expected error view, got:\n%s", view)
	}
	if strings.Contains(view, "parse") {
		t.Fatalf("expected error kind to stay out of the view, got:\n%s", view)
	}
	if len(h.Model().gridLevel().Items) != 0 {
		t.Fatalf("expected grid cleared on failure")
	}
}

func TestCtrlRReloadsCurrentSort(t *testing.T) {
	fetcher := newStubFetcher()
	h := startedHarness(t, fetcher, Options{})
	h.Send(keyMsg("ctrl+r"))
	calls := fetcher.Calls()
	if len(calls) != 2 || calls[1] != "catalog/popular" {
		t.Fatalf("expected reload of popular, got %v", calls)
	}
	if len(h.Model().gridLevel().Items) != len(popularMovies) {
		t.Fatalf("expected grid repopulated after reload")
	}
}
