package catalog

import (
	"context"
	"errors"

	"github.com/atomicstack/popular-movies/internal/netcheck"
	"github.com/atomicstack/popular-movies/internal/tmdb"
)

// ErrNoSelection is returned by SelectItem when there is no item to select.
var ErrNoSelection = errors.New("no selectable item")

// URLs builds request URLs.
type URLs interface {
	CatalogURL(sort tmdb.SortOption) string
	DetailURL(id string) string
}

// Fetcher performs catalog and detail requests.
type Fetcher interface {
	FetchCatalog(ctx context.Context, url string) ([]tmdb.CatalogItem, error)
	FetchDetail(ctx context.Context, url string) (tmdb.DetailPayload, error)
}

// ResultKind says which request produced a Result.
type ResultKind int

const (
	CatalogResult ResultKind = iota + 1
	DetailResult
)

func (k ResultKind) String() string {
	switch k {
	case CatalogResult:
		return "catalog"
	case DetailResult:
		return "detail"
	default:
		return "unknown"
	}
}

// Result is the outcome of a Job.
type Result struct {
	Kind       ResultKind
	Generation uint64
	Sort       tmdb.SortOption
	URL        string
	Items      []tmdb.CatalogItem
	Item       tmdb.CatalogItem
	Detail     tmdb.DetailPayload
	Err        error
}

// Job performs one blocking fetch. It must not touch the Controller.
type Job func(ctx context.Context) Result

// Navigation asks the caller to open the detail view for Item.
type Navigation struct {
	Item    tmdb.CatalogItem
	Payload tmdb.DetailPayload
}

// Snapshot is a copy of the controller state for rendering and logging.
type Snapshot struct {
	State      ViewState
	Sort       tmdb.SortOption
	Items      []tmdb.CatalogItem
	Err        error
	Generation uint64
	Detail     bool
}

// Controller owns the catalog state. It is not safe for concurrent use; all
// methods must be called from the goroutine that owns the UI.
type Controller struct {
	urls    URLs
	fetcher Fetcher
	gate    netcheck.Gate

	state      ViewState
	sort       tmdb.SortOption
	items      []tmdb.CatalogItem
	err        error
	generation uint64
	detail     bool
}

// Option customises a Controller.
type Option func(*Controller)

// WithSort sets the sort order used by Mount.
func WithSort(sort tmdb.SortOption) Option {
	return func(c *Controller) {
		c.sort = sort
	}
}

// New returns a controller in the Loading state with no items. A nil gate
// is treated as always online.
func New(urls URLs, fetcher Fetcher, gate netcheck.Gate, opts ...Option) *Controller {
	if gate == nil {
		gate = netcheck.Always
	}
	c := &Controller{urls: urls, fetcher: fetcher, gate: gate, state: Loading}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Mount starts the initial catalog load with the current sort order. The
// returned Job is nil when the host is offline; the controller is then in
// the Error state.
func (c *Controller) Mount() Job {
	return c.loadCatalog()
}

// SelectSort switches the sort order and reloads. Any catalog or detail
// request still in flight is superseded.
func (c *Controller) SelectSort(sort tmdb.SortOption) Job {
	c.sort = sort
	return c.loadCatalog()
}

// Reload fetches the current sort order again.
func (c *Controller) Reload() Job {
	return c.loadCatalog()
}

func (c *Controller) loadCatalog() Job {
	c.generation++
	c.items = nil
	c.err = nil
	c.detail = false
	c.state = Loading
	if !c.gate.IsOnline() {
		c.fail(tmdb.NewOfflineError("fetch catalog"))
		return nil
	}
	gen := c.generation
	sort := c.sort
	url := c.urls.CatalogURL(sort)
	fetcher := c.fetcher
	return func(ctx context.Context) Result {
		items, err := fetcher.FetchCatalog(ctx, url)
		return Result{Kind: CatalogResult, Generation: gen, Sort: sort, URL: url, Items: items, Err: err}
	}
}

// SelectItem starts the detail fetch for the item at index. It returns
// ErrNoSelection without changing state when the grid is not showing or
// index is out of range. When the host is offline the controller moves to
// Error and the returned Job is nil.
func (c *Controller) SelectItem(index int) (Job, error) {
	if c.state != Content || index < 0 || index >= len(c.items) {
		return nil, ErrNoSelection
	}
	item := c.items[index]
	c.generation++
	if !c.gate.IsOnline() {
		c.fail(tmdb.NewOfflineError("fetch detail"))
		return nil, nil
	}
	c.state = Loading
	c.detail = true
	gen := c.generation
	sort := c.sort
	url := c.urls.DetailURL(item.ID)
	fetcher := c.fetcher
	return func(ctx context.Context) Result {
		payload, err := fetcher.FetchDetail(ctx, url)
		return Result{Kind: DetailResult, Generation: gen, Sort: sort, URL: url, Item: item, Detail: payload, Err: err}
	}, nil
}

// Current reports whether res belongs to the most recent request.
func (c *Controller) Current(res Result) bool {
	return res.Generation == c.generation && c.state == Loading && c.detail == (res.Kind == DetailResult)
}

// Apply folds a Job's Result into the state. Stale results are ignored and
// report false. A successful detail result returns the Navigation to perform
// and true.
func (c *Controller) Apply(res Result) (Navigation, bool) {
	if !c.Current(res) {
		return Navigation{}, false
	}
	switch res.Kind {
	case CatalogResult:
		if res.Err != nil {
			c.fail(res.Err)
			return Navigation{}, false
		}
		items := make([]tmdb.CatalogItem, len(res.Items))
		copy(items, res.Items)
		c.items = items
		c.err = nil
		c.state = Content
		return Navigation{}, false
	case DetailResult:
		c.detail = false
		if res.Err != nil {
			c.fail(res.Err)
			return Navigation{}, false
		}
		c.err = nil
		c.state = Content
		return Navigation{Item: res.Item, Payload: res.Detail}, true
	}
	return Navigation{}, false
}

func (c *Controller) fail(err error) {
	c.items = nil
	c.err = err
	c.detail = false
	c.state = Error
}

// State returns the active view state.
func (c *Controller) State() ViewState { return c.state }

// Sort returns the active sort order.
func (c *Controller) Sort() tmdb.SortOption { return c.sort }

// Err returns the error behind the Error state, or nil.
func (c *Controller) Err() error { return c.err }

// Generation identifies the most recently started request.
func (c *Controller) Generation() uint64 { return c.generation }

// LoadingDetail reports whether the pending request is a detail fetch.
func (c *Controller) LoadingDetail() bool { return c.state == Loading && c.detail }

// Items returns a copy of the last successfully loaded items. It is nil
// while a catalog load is pending and after any failure.
func (c *Controller) Items() []tmdb.CatalogItem {
	if c.items == nil {
		return nil
	}
	out := make([]tmdb.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:      c.state,
		Sort:       c.sort,
		Items:      c.Items(),
		Err:        c.err,
		Generation: c.generation,
		Detail:     c.LoadingDetail(),
	}
}
