// Package aggregate combines the source adapters into the two operations
// the service exposes: the merged listing search and the single-job
// resolver. It owns the per-source cache and the stale-serve policy.
package aggregate

import (
	"context"
	"errors"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobradar/internal/cache"
	"github.com/jonathan/jobradar/internal/sources"
	"github.com/jonathan/jobradar/internal/types"
)

// MaxResults bounds the jobs array of one listing response. Total and
// per-source counts are reported over the unbounded working set.
const MaxResults = 200

// Response is the listing-endpoint envelope.
type Response struct {
	Jobs    []types.JobListing   `json:"jobs"`
	Total   int                  `json:"total"`
	Sources map[types.Source]int `json:"sources"`
}

// Engine fans out to the source adapters, caches per source, and shapes
// the merged result.
type Engine struct {
	adapters []sources.Adapter
	cache    *cache.Store[[]types.JobListing]
}

// NewEngine builds an engine over the given adapters. Adapter order is the
// concatenation order, which breaks recency-score ties in the final sort.
func NewEngine(ttl time.Duration, adapters ...sources.Adapter) *Engine {
	return &Engine{
		adapters: adapters,
		cache:    cache.New[[]types.JobListing](ttl),
	}
}

// Search runs the full aggregation pipeline: concurrent per-source fetch,
// filters, cross-source dedup, recency sort, truncation.
func (e *Engine) Search(ctx context.Context, q *Query) *Response {
	results := e.fanOut(ctx, q.Text)

	counts := make(map[types.Source]int, len(results))
	var combined []types.JobListing
	for _, res := range results {
		if res.Err != nil {
			log.Printf("[aggregate] %s degraded to %d cached listings: %v",
				res.Source, len(res.Listings), res.Err)
		}
		counts[res.Source] = len(res.Listings)
		combined = append(combined, res.Listings...)
	}

	filtered := applyFilters(combined, q)
	total := len(filtered)

	jobs := dedupe(filtered)
	sortByRecency(jobs)
	if len(jobs) > MaxResults {
		jobs = jobs[:MaxResults]
	}

	return &Response{Jobs: jobs, Total: total, Sources: counts}
}

// Warm fires one unfiltered fan-out so every source's cache slot is
// populated before user traffic arrives.
func (e *Engine) Warm(ctx context.Context) {
	e.fanOut(ctx, "")
}

func (e *Engine) fanOut(ctx context.Context, query string) []sources.Result {
	results := make([]sources.Result, len(e.adapters))
	g, ctx := errgroup.WithContext(ctx)
	for i, adapter := range e.adapters {
		g.Go(func() error {
			results[i] = e.fetchSource(ctx, adapter, query)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// fetchSource applies the cache policy around one adapter call. A failed
// call degrades to the source's last-known-good listings, or to nothing;
// it never fails the request.
func (e *Engine) fetchSource(ctx context.Context, adapter sources.Adapter, query string) sources.Result {
	res := sources.Result{Source: adapter.Tag()}
	key := string(adapter.Tag())
	cacheable := adapter.Cacheable(query)

	if cacheable {
		if listings, ok := e.cache.Fresh(key); ok {
			res.Listings = listings
			return res
		}
	}

	listings, err := adapter.Fetch(ctx, query)
	if err != nil {
		// An unconfigured source is a disabled feature, not a failure.
		if !errors.Is(err, sources.ErrNotConfigured) {
			res.Err = err
			if stale, ok := e.cache.Stale(key); ok {
				res.Listings = stale
			}
		}
		return res
	}

	if cacheable {
		e.cache.Put(key, listings)
	}
	res.Listings = listings
	return res
}

func applyFilters(listings []types.JobListing, q *Query) []types.JobListing {
	text := strings.ToLower(q.Text)
	location := strings.ToLower(q.Location)

	filtered := make([]types.JobListing, 0, len(listings))
	for _, job := range listings {
		if text != "" && !matchesText(&job, text) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if !facetMatch(q.WorkType, string(job.WorkType)) {
			continue
		}
		if !facetMatch(q.EmploymentType, string(job.EmploymentType)) {
			continue
		}
		if !facetMatch(q.Seniority, string(job.Seniority)) {
			continue
		}
		if q.Category != "" && q.Category != FacetAll && !strings.EqualFold(q.Category, job.Category) {
			continue
		}
		filtered = append(filtered, job)
	}
	return filtered
}

func facetMatch(want, got string) bool {
	return want == "" || want == FacetAll || want == got
}

func matchesText(job *types.JobListing, query string) bool {
	if strings.Contains(strings.ToLower(job.Title), query) ||
		strings.Contains(strings.ToLower(job.Company), query) ||
		strings.Contains(strings.ToLower(job.Description), query) {
		return true
	}
	for _, tag := range job.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// dedupe drops cross-source duplicates of the same real-world posting,
// keyed by lowercased title+company rather than id because the same job
// carries different native ids on different boards. First occurrence wins.
func dedupe(listings []types.JobListing) []types.JobListing {
	seen := make(map[string]struct{}, len(listings))
	out := make([]types.JobListing, 0, len(listings))
	for _, job := range listings {
		key := strings.ToLower(job.Title) + "-" + strings.ToLower(job.Company)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, job)
	}
	return out
}

// sortByRecency orders most-recent-first using the score derived from the
// display string. The sort is stable, so ties keep concatenation order.
func sortByRecency(listings []types.JobListing) {
	sort.SliceStable(listings, func(a, b int) bool {
		return recencyScore(listings[a].PostedAt) < recencyScore(listings[b].PostedAt)
	})
}

// recencyScore maps a relative-date display string to an integer sort key.
// Lossy on purpose: months and unparseable strings all sink to the back.
func recencyScore(postedAt string) int {
	switch {
	case strings.Contains(postedAt, "Today"):
		return 0
	case strings.Contains(postedAt, "1 day"):
		return 1
	case strings.Contains(postedAt, "day"):
		if n := leadingInt(postedAt); n > 0 {
			return n
		}
		return 7
	case strings.Contains(postedAt, "week"):
		if n := leadingInt(postedAt); n > 0 {
			return n * 7
		}
		return 14
	default:
		return 100
	}
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
