package filterstate

import (
	"context"
	"net/url"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/techhaven/storefront/internal/models"
	"github.com/techhaven/storefront/internal/service"
)

// Catalog is the listing surface the controller consumes.
type Catalog interface {
	Products(ctx context.Context, spec models.FilterSpecification) (service.Page, error)
}

// State is the snapshot handed to the presentation consumer after every
// change: the visible page, totals for page-count display, and the loading
// and error flags.
type State struct {
	Filters     models.FilterSpecification
	Products    []models.Product
	TotalCount  int
	HasMore     bool
	CurrentPage int
	Loading     bool
	Err         error
	Query       string
}

// Controller synchronizes a FilterSpecification with its query-string form
// and pushes listing states to a consumer callback. It lives for one view:
// create it when the listing mounts, Close it on navigation away. After
// Close no further states are delivered, but fetches already in flight run
// to completion (their retry timers are not aborted).
type Controller struct {
	catalog  Catalog
	onChange func(State)

	mu     sync.Mutex
	spec   models.FilterSpecification
	state  State
	closed bool
}

// NewController creates a Controller delivering states to onChange.
// onChange may be nil when the consumer polls State instead.
func NewController(catalog Catalog, onChange func(State)) *Controller {
	return &Controller{catalog: catalog, onChange: onChange}
}

// Init parses the persisted query string and performs the initial fetch.
func (c *Controller) Init(ctx context.Context, query url.Values) {
	c.mu.Lock()
	c.spec = Decode(query)
	c.mu.Unlock()
	c.fetch(ctx)
}

// State returns the latest snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// QueryString returns the current serialized filter state.
func (c *Controller) QueryString() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Encode(c.spec).Encode()
}

// UpdateFilters applies a change to the specification, resets the page to 1
// and refetches. Any filter change invalidates the current page position.
func (c *Controller) UpdateFilters(ctx context.Context, apply func(*models.FilterSpecification)) {
	c.mu.Lock()
	apply(&c.spec)
	c.spec.Page = 1
	c.mu.Unlock()
	c.fetch(ctx)
}

// ClearFilters resets the specification to its empty default.
func (c *Controller) ClearFilters(ctx context.Context) {
	c.mu.Lock()
	c.spec = models.FilterSpecification{}
	c.mu.Unlock()
	c.fetch(ctx)
}

// GoToPage jumps to the given 1-based page without touching the filters.
func (c *Controller) GoToPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.spec.Page = page
	c.mu.Unlock()
	c.fetch(ctx)
}

// LoadMore advances to the next page.
func (c *Controller) LoadMore(ctx context.Context) {
	c.mu.Lock()
	next := c.spec.Page + 1
	if c.spec.Page < 1 {
		next = 2
	}
	c.spec.Page = next
	c.mu.Unlock()
	c.fetch(ctx)
}

// Refetch re-runs the current query.
func (c *Controller) Refetch(ctx context.Context) {
	c.fetch(ctx)
}

// Close stops delivering states to the consumer.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Controller) fetch(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	spec := c.spec
	c.state.Loading = true
	c.state.Err = nil
	snapshot := c.state
	c.mu.Unlock()
	c.notify(snapshot)

	page, err := c.catalog.Products(ctx, spec)

	c.mu.Lock()
	if c.closed {
		// The view navigated away while the fetch was in flight; drop
		// the result silently.
		c.mu.Unlock()
		return
	}
	c.state.Filters = spec
	c.state.Loading = false
	c.state.Query = Encode(spec).Encode()
	if err != nil {
		log.Error().Err(err).Msg("product listing fetch failed")
		c.state.Err = err
	} else {
		c.state.Products = page.Items
		c.state.TotalCount = page.TotalCount
		c.state.HasMore = page.HasMore
		c.state.CurrentPage = page.Page
	}
	snapshot = c.state
	c.mu.Unlock()
	c.notify(snapshot)
}

func (c *Controller) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
