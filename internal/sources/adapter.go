// Package sources implements the upstream job-board adapters. Each adapter
// fetches one board's listings and maps them onto the canonical JobListing
// shape; the aggregation engine combines and caches the results.
package sources

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/jobradar/internal/parsing"
	"github.com/jonathan/jobradar/internal/types"
)

// ErrNotFound reports that a listing id did not resolve at its upstream.
var ErrNotFound = errors.New("job not found")

// ErrNotConfigured reports that a source requiring API credentials has none.
// The source contributes nothing until the credentials appear.
var ErrNotConfigured = errors.New("source credentials not configured")

// Adapter fetches listings from one upstream board, already in canonical
// form. Boards that do not support querying ignore the query argument.
type Adapter interface {
	Tag() types.Source

	Fetch(ctx context.Context, query string) ([]types.JobListing, error)

	// Cacheable reports whether results for this query may be served from
	// and written to the per-source cache.
	Cacheable(query string) bool
}

// DetailFetcher resolves one listing by its upstream-native id, with the
// full description rather than the list excerpt. Adapters without a usable
// detail path do not implement it.
type DetailFetcher interface {
	FetchOne(ctx context.Context, nativeID string) (*types.JobListing, error)
}

// Result pairs a source tag with the outcome of one fetch.
type Result struct {
	Source   types.Source
	Listings []types.JobListing
	Err      error
}

// nativeListKey is the single slot used by adapters that cache the raw
// upstream list for detail lookups.
const nativeListKey = "native"

func defaultNow(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

// postedAt renders an upstream timestamp as the relative display string.
// Timestamps the upstream mangled beyond parsing sort to the back, same as
// any other non-recent listing.
func postedAt(iso string, now time.Time) string {
	t, err := parsing.ParseUpstreamTime(iso)
	if err != nil {
		return "Recently"
	}
	return parsing.FormatPostedAt(t, now)
}
