package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/popular-movies/internal/netcheck"
	"github.com/atomicstack/popular-movies/internal/tmdb"
)

type fakeFetcher struct {
	mu      sync.Mutex
	catalog map[string][]tmdb.CatalogItem
	detail  map[string]tmdb.DetailPayload
	errs    map[string]error
	calls   []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		catalog: make(map[string][]tmdb.CatalogItem),
		detail:  make(map[string]tmdb.DetailPayload),
		errs:    make(map[string]error),
	}
}

func (f *fakeFetcher) FetchCatalog(_ context.Context, url string) ([]tmdb.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	return f.catalog[url], nil
}

func (f *fakeFetcher) FetchDetail(_ context.Context, url string) (tmdb.DetailPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	return f.detail[url], nil
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeURLs struct{}

func (fakeURLs) CatalogURL(sort tmdb.SortOption) string { return "catalog/" + sort.Segment() }
func (fakeURLs) DetailURL(id string) string             { return "detail/" + id }

var twoItems = []tmdb.CatalogItem{{PosterPath: "/a.jpg", ID: "10"}, {PosterPath: "/b.jpg", ID: "20"}}

func online(v *bool) netcheck.Gate {
	return netcheck.GateFunc(func() bool { return *v })
}

func mountedController(t *testing.T, f *fakeFetcher, gate netcheck.Gate) *Controller {
	t.Helper()
	c := New(fakeURLs{}, f, gate)
	job := c.Mount()
	require.NotNil(t, job)
	c.Apply(job(context.Background()))
	require.Equal(t, Content, c.State())
	return c
}

func TestNewStartsLoadingWithoutItems(t *testing.T) {
	c := New(fakeURLs{}, newFakeFetcher(), nil)
	assert.Equal(t, Loading, c.State())
	assert.Nil(t, c.Items())
	assert.Equal(t, tmdb.Popularity, c.Sort())
}

func TestMountLoadsContent(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = twoItems
	c := New(fakeURLs{}, f, netcheck.Always)

	job := c.Mount()
	require.NotNil(t, job)
	assert.Equal(t, Loading, c.State())

	res := job(context.Background())
	assert.Equal(t, CatalogResult, res.Kind)
	nav, ok := c.Apply(res)
	assert.False(t, ok)
	assert.Equal(t, Navigation{}, nav)
	assert.Equal(t, Content, c.State())
	assert.Equal(t, twoItems, c.Items())
	assert.NoError(t, c.Err())
	assert.Equal(t, []string{"catalog/popular"}, f.Calls())
}

func TestMountUsesConfiguredSort(t *testing.T) {
	f := newFakeFetcher()
	c := New(fakeURLs{}, f, netcheck.Always, WithSort(tmdb.TopRated))
	c.Apply(c.Mount()(context.Background()))
	assert.Equal(t, []string{"catalog/top_rated"}, f.Calls())
	assert.Equal(t, Content, c.State())
	assert.Empty(t, c.Items())
}

func TestOfflineMountGoesToErrorWithoutFetch(t *testing.T) {
	f := newFakeFetcher()
	up := false
	c := New(fakeURLs{}, f, online(&up))

	job := c.Mount()
	assert.Nil(t, job)
	assert.Equal(t, Error, c.State())
	assert.ErrorIs(t, c.Err(), tmdb.ErrOffline)
	assert.Empty(t, f.Calls())
	assert.Nil(t, c.Items())
}

func TestGateIsQueriedBeforeEveryFetch(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = twoItems
	calls := 0
	gate := netcheck.GateFunc(func() bool {
		calls++
		return true
	})
	c := mountedController(t, f, gate)
	_ = c.SelectSort(tmdb.TopRated)
	_ = c.Reload()
	assert.Equal(t, 3, calls)
}

func TestCatalogErrorDiscardsItems(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = twoItems
	c := mountedController(t, f, netcheck.Always)

	boom := &tmdb.FetchError{Kind: tmdb.KindParse, Op: "fetch catalog"}
	f.errs["catalog/top_rated"] = boom
	job := c.SelectSort(tmdb.TopRated)
	assert.Nil(t, c.Items())
	c.Apply(job(context.Background()))

	assert.Equal(t, Error, c.State())
	assert.Nil(t, c.Items())
	assert.ErrorIs(t, c.Err(), tmdb.ErrParse)
	assert.Equal(t, tmdb.TopRated, c.Sort())
}

func TestErrorRecoversThroughSortChange(t *testing.T) {
	f := newFakeFetcher()
	f.errs["catalog/popular"] = errors.New("down")
	f.catalog["catalog/top_rated"] = twoItems
	c := New(fakeURLs{}, f, netcheck.Always)
	c.Apply(c.Mount()(context.Background()))
	require.Equal(t, Error, c.State())

	c.Apply(c.SelectSort(tmdb.TopRated)(context.Background()))
	assert.Equal(t, Content, c.State())
	assert.NoError(t, c.Err())
	assert.Equal(t, twoItems, c.Items())
}

func TestSelectItemFetchesIDAtPosition(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = []tmdb.CatalogItem{{PosterPath: "/a.jpg", ID: "550"}, {PosterPath: "/b.jpg", ID: "1"}}
	f.detail["detail/1"] = tmdb.DetailPayload(`{"id":1}`)
	c := mountedController(t, f, netcheck.Always)

	job, err := c.SelectItem(1)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, Loading, c.State())
	assert.True(t, c.LoadingDetail())

	res := job(context.Background())
	assert.Equal(t, "detail/1", res.URL)
	nav, ok := c.Apply(res)
	require.True(t, ok)
	assert.Equal(t, "1", nav.Item.ID)
	assert.Equal(t, `{"id":1}`, nav.Payload.String())
	assert.Equal(t, Content, c.State())
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, []string{"catalog/popular", "detail/1"}, f.Calls())
}

func TestSelectItemRejectsOutOfRangeAndNonContent(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = twoItems
	c := mountedController(t, f, netcheck.Always)
	gen := c.Generation()

	for _, idx := range []int{-1, 2, 99} {
		job, err := c.SelectItem(idx)
		assert.Nil(t, job)
		assert.ErrorIs(t, err, ErrNoSelection)
	}
	assert.Equal(t, Content, c.State())
	assert.Equal(t, gen, c.Generation())

	_ = c.Reload()
	_, err := c.SelectItem(0)
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSelectItemOffline(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = twoItems
	up := true
	c := mountedController(t, f, online(&up))

	up = false
	job, err := c.SelectItem(0)
	require.NoError(t, err)
	assert.Nil(t, job)
	assert.Equal(t, Error, c.State())
	assert.Nil(t, c.Items())
	assert.Equal(t, tmdb.KindOffline, tmdb.KindOf(c.Err()))
	assert.Equal(t, []string{"catalog/popular"}, f.Calls())
}

func TestDetailFailureGoesToError(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = twoItems
	f.errs["detail/10"] = &tmdb.FetchError{Kind: tmdb.KindNetwork, Op: "fetch detail", Status: 500}
	c := mountedController(t, f, netcheck.Always)

	job, err := c.SelectItem(0)
	require.NoError(t, err)
	nav, ok := c.Apply(job(context.Background()))
	assert.False(t, ok)
	assert.Equal(t, Navigation{}, nav)
	assert.Equal(t, Error, c.State())
	assert.Nil(t, c.Items())
	assert.ErrorIs(t, c.Err(), tmdb.ErrNetwork)
}

func TestLatestSortWins(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = []tmdb.CatalogItem{{PosterPath: "/p.jpg", ID: "1"}}
	f.catalog["catalog/top_rated"] = []tmdb.CatalogItem{{PosterPath: "/t.jpg", ID: "2"}}
	c := New(fakeURLs{}, f, netcheck.Always)

	first := c.Mount()
	second := c.SelectSort(tmdb.TopRated)

	// second completes first, then the superseded request lands
	secondRes := second(context.Background())
	firstRes := first(context.Background())

	assert.True(t, c.Current(secondRes))
	assert.False(t, c.Current(firstRes))

	c.Apply(secondRes)
	c.Apply(firstRes)
	assert.Equal(t, Content, c.State())
	assert.Equal(t, "2", c.Items()[0].ID)
	assert.Equal(t, tmdb.TopRated, c.Sort())
}

func TestLatestSortWinsInEitherOrder(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = []tmdb.CatalogItem{{PosterPath: "/p.jpg", ID: "1"}}
	f.errs["catalog/top_rated"] = errors.New("down")
	c := New(fakeURLs{}, f, netcheck.Always)

	first := c.Mount()
	second := c.SelectSort(tmdb.TopRated)

	c.Apply(first(context.Background()))
	assert.Equal(t, Loading, c.State())
	assert.Nil(t, c.Items())

	c.Apply(second(context.Background()))
	assert.Equal(t, Error, c.State())
}

func TestSortChangeSupersedesDetailFetch(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = twoItems
	f.catalog["catalog/top_rated"] = []tmdb.CatalogItem{{PosterPath: "/t.jpg", ID: "2"}}
	f.detail["detail/10"] = tmdb.DetailPayload(`{}`)
	c := mountedController(t, f, netcheck.Always)

	detailJob, err := c.SelectItem(0)
	require.NoError(t, err)
	sortJob := c.SelectSort(tmdb.TopRated)

	_, ok := c.Apply(detailJob(context.Background()))
	assert.False(t, ok)
	assert.Equal(t, Loading, c.State())

	c.Apply(sortJob(context.Background()))
	assert.Equal(t, Content, c.State())
	assert.Equal(t, "2", c.Items()[0].ID)
}

func TestResultAppliedOnlyOnce(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = twoItems
	f.detail["detail/20"] = tmdb.DetailPayload(`{"id":20}`)
	c := mountedController(t, f, netcheck.Always)

	job, err := c.SelectItem(1)
	require.NoError(t, err)
	res := job(context.Background())
	_, ok := c.Apply(res)
	require.True(t, ok)
	_, ok = c.Apply(res)
	assert.False(t, ok)
}

func TestSnapshotCopiesItems(t *testing.T) {
	f := newFakeFetcher()
	f.catalog["catalog/popular"] = twoItems
	c := mountedController(t, f, netcheck.Always)

	snap := c.Snapshot()
	snap.Items[0].ID = "mutated"
	assert.Equal(t, "10", c.Items()[0].ID)
	assert.Equal(t, Content, snap.State)
	assert.Equal(t, c.Generation(), snap.Generation)
	assert.False(t, snap.Detail)
}

func TestViewStateString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "content", Content.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "catalog", CatalogResult.String())
	assert.Equal(t, "detail", DetailResult.String())
}
