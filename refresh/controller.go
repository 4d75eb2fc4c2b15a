// Package refresh decides when a new fetch cycle is needed and publishes
// the merged result of all source adapters.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eventia/eventia/events"
	"github.com/eventia/eventia/geo"
)

type logFn func(string, ...interface{})

// Result is what one refresh yields: the aggregated list plus the non-fatal
// failures of adapters that contributed nothing. An all-sources failure is
// still a Result: empty events, every failure as a warning.
type Result struct {
	Events   events.Events
	Warnings []*events.FetchError
}

// Controller tracks the last successfully fetched query and republishes the
// aggregated list atomically. It is safe for concurrent use; a refresh
// started while another is in flight supersedes it, and the superseded
// cycle's result is discarded.
type Controller struct {
	fetchers []events.Fetcher
	creator  events.Creator
	resolver geo.Resolver
	log      logFn
	err      logFn

	mu          sync.Mutex
	fresh       bool
	lastFetched events.Query
	published   events.Events
	cycle       uint64
	// hooks for observability, nil unless set
	onCycle   func()
	onFailure func(src events.Source)
}

type Option func(*Controller)

func WithCreator(c events.Creator) Option {
	return func(ctl *Controller) { ctl.creator = c }
}

func WithResolver(r geo.Resolver) Option {
	return func(ctl *Controller) { ctl.resolver = r }
}

func WithLogFns(log, err logFn) Option {
	return func(ctl *Controller) {
		if log != nil {
			ctl.log = log
		}
		if err != nil {
			ctl.err = err
		}
	}
}

// WithObservers registers callbacks invoked on every fetch cycle and on
// every per-source failure.
func WithObservers(onCycle func(), onFailure func(events.Source)) Option {
	return func(ctl *Controller) {
		ctl.onCycle = onCycle
		ctl.onFailure = onFailure
	}
}

func New(fetchers []events.Fetcher, opts ...Option) *Controller {
	ctl := &Controller{
		fetchers: fetchers,
		log:      func(string, ...interface{}) {},
		err:      func(string, ...interface{}) {},
	}
	for _, opt := range opts {
		opt(ctl)
	}
	return ctl
}

// Sources lists the registered adapters in query order.
func (c *Controller) Sources() []events.Source {
	srcs := make([]events.Source, len(c.fetchers))
	for i, f := range c.fetchers {
		srcs[i] = f.Source()
	}
	return srcs
}

// Events returns the currently published list.
func (c *Controller) Events() events.Events {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.published
}

// Refresh runs one fetch cycle for q, unless the controller is fresh for an
// identical query and force is false, in which case the published list is
// returned without touching the network.
func (c *Controller) Refresh(ctx context.Context, q events.Query, force bool) Result {
	c.mu.Lock()
	if !force && c.fresh && c.lastFetched.Equals(q) {
		res := Result{Events: c.published}
		c.mu.Unlock()
		return res
	}
	c.fresh = false
	c.cycle++
	cycle := c.cycle
	c.mu.Unlock()

	if c.onCycle != nil {
		c.onCycle()
	}
	c.log("fetching %s from %d sources", q, len(c.fetchers))

	type settled struct {
		res events.SourceResult
		err *events.FetchError
	}
	outcome := make([]settled, len(c.fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range c.fetchers {
		g.Go(func() error {
			evs, err := f.Fetch(gctx, q)
			if err != nil {
				fe, ok := err.(*events.FetchError)
				if !ok {
					fe = events.ClassifyErr(f.Source(), err)
				}
				c.err("%s", fe)
				outcome[i] = settled{err: fe}
				if c.onFailure != nil {
					c.onFailure(f.Source())
				}
				return nil
			}
			outcome[i] = settled{res: events.SourceResult{Source: f.Source(), Events: evs}}
			return nil
		})
	}
	// fetch goroutines never return errors, the join only waits
	_ = g.Wait()

	results := make([]events.SourceResult, 0, len(outcome))
	warnings := make([]*events.FetchError, 0)
	failed := 0
	for _, s := range outcome {
		if s.err != nil {
			warnings = append(warnings, s.err)
			failed++
			continue
		}
		results = append(results, s.res)
	}
	merged := events.Aggregate(results...)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cycle != c.cycle {
		// a newer cycle has started, this result no longer represents the
		// current query and must not be published
		return Result{Events: merged, Warnings: warnings}
	}
	c.published = merged
	if failed < len(c.fetchers) || len(c.fetchers) == 0 {
		c.fresh = true
		c.lastFetched = q
	}
	return Result{Events: c.published, Warnings: warnings}
}

// RefreshAddress geocodes a free-text location before refreshing. When the
// resolver fails, the address becomes the keyword instead: the same
// fallback the search providers accept.
func (c *Controller) RefreshAddress(ctx context.Context, address string, q events.Query, force bool) (Result, error) {
	if c.resolver == nil {
		return Result{}, fmt.Errorf("no geocoder configured")
	}
	place, err := c.resolver.Resolve(ctx, address)
	if err != nil {
		c.err("unable to resolve %q, falling back to keyword search: %s", address, err)
		q.HasCoords = false
		q.Latitude, q.Longitude = 0, 0
		if q.Keyword == "" {
			q.Keyword = address
		}
		return c.Refresh(ctx, q, force), nil
	}
	q.Latitude, q.Longitude = place.Latitude, place.Longitude
	q.HasCoords = true
	return c.Refresh(ctx, q, force), nil
}

// Invalidate marks the controller stale so the next refresh refetches even
// for an unchanged query.
func (c *Controller) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fresh = false
}

// CreateUserEvent prepends an optimistic placeholder for the draft, pushes
// it upstream, and replaces the placeholder with the authoritative server
// record at the same list position.
func (c *Controller) CreateUserEvent(ctx context.Context, draft events.Draft) (events.UnifiedEvent, error) {
	if c.creator == nil {
		return events.UnifiedEvent{}, fmt.Errorf("no user-events backend configured")
	}

	now := time.Now()
	placeholder := events.UnifiedEvent{
		ID:          fmt.Sprintf("user_%d", now.UnixMilli()),
		Title:       events.ResolveTitle(draft.Title),
		Description: draft.Description,
		Type:        events.Classification(draft.Type),
		StartDate:   events.ResolveStartDate("", draft.StartDate, ""),
		EndDate:     draft.EndDate,
		Location:    events.ResolveLocation(draft.Location, "", ""),
		Latitude:    draft.Latitude,
		Longitude:   draft.Longitude,
		Source:      events.SourceUser,
		Created:     now,
	}

	c.mu.Lock()
	c.published = append(events.Events{placeholder}, c.published...)
	c.mu.Unlock()

	created, err := c.creator.Create(ctx, draft)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.published = c.without(placeholder.ID)
		return events.UnifiedEvent{}, err
	}
	created.Created = now
	c.replace(placeholder.ID, created)
	return created, nil
}

func (c *Controller) without(id string) events.Events {
	kept := make(events.Events, 0, len(c.published))
	for _, ev := range c.published {
		if ev.Source == events.SourceUser && ev.ID == id {
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}

func (c *Controller) replace(id string, with events.UnifiedEvent) {
	next := make(events.Events, len(c.published))
	copy(next, c.published)
	for i, ev := range next {
		if ev.Source == events.SourceUser && ev.ID == id {
			next[i] = with
			break
		}
	}
	c.published = next
}
