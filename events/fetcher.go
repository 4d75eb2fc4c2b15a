package events

import "context"

// Fetcher is implemented by every source adapter. A fetch either yields the
// full translated result set for the query, or a *FetchError; it never
// returns a partial list alongside an error.
type Fetcher interface {
	Source() Source
	Fetch(ctx context.Context, q Query) (Events, error)
}

// Creator is the extra capability of the user-events adapter: pushing a
// locally authored draft upstream and returning the authoritative record.
type Creator interface {
	Create(ctx context.Context, draft Draft) (UnifiedEvent, error)
}
