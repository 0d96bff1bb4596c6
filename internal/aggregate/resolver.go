package aggregate

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/jobradar/internal/sources"
	"github.com/jonathan/jobradar/internal/types"
)

// ErrMissingID reports a blank or absent listing id.
var ErrMissingID = errors.New("job ID is required")

// ErrNoDetailEndpoint marks sources whose listings can only be viewed
// through their external apply link.
var ErrNoDetailEndpoint = errors.New("please use the apply link to view this job")

// Resolver dispatches a composite listing id to its source's detail path.
type Resolver struct {
	detail map[types.Source]sources.DetailFetcher
	legacy sources.DetailFetcher
}

// NewResolver wires the per-source detail paths. Sources absent from the
// map resolve as not found. The legacy fetcher handles unprefixed ids from
// before the composite scheme, which were always Remotive natives.
func NewResolver(detail map[types.Source]sources.DetailFetcher, legacy sources.DetailFetcher) *Resolver {
	return &Resolver{detail: detail, legacy: legacy}
}

// Resolve returns the fully expanded listing for a composite id.
func (r *Resolver) Resolve(ctx context.Context, id string) (*types.JobListing, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}

	for _, src := range types.Sources() {
		prefix := string(src) + "-"
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if src == types.SourceAdzuna {
			// Adzuna has no per-job endpoint; the listing was already
			// shown from list data.
			return nil, ErrNoDetailEndpoint
		}
		fetcher, ok := r.detail[src]
		if !ok {
			return nil, sources.ErrNotFound
		}
		return fetcher.FetchOne(ctx, strings.TrimPrefix(id, prefix))
	}

	if r.legacy == nil {
		return nil, sources.ErrNotFound
	}
	job, err := r.legacy.FetchOne(ctx, id)
	if err != nil {
		return nil, err
	}
	// Legacy responses echo the raw id the caller sent.
	job.ID = id
	return job, nil
}
