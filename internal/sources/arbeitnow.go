package sources

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonathan/jobradar/internal/cache"
	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/parsing"
	"github.com/jonathan/jobradar/internal/schemas"
	"github.com/jonathan/jobradar/internal/types"
)

const (
	arbeitnowBaseURL = "https://www.arbeitnow.com/api/job-board-api"

	// The board returns its whole feed; the list view keeps the first 100.
	arbeitnowListLimit = 100
)

type arbeitnowJob struct {
	Slug        string   `json:"slug"`
	CompanyName string   `json:"company_name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
	Location    string   `json:"location"`
	CreatedAt   int64    `json:"created_at"`
}

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

// Arbeitnow adapts the Arbeitnow job-board API, a keyless European board
// with a mix of remote and on-site listings.
type Arbeitnow struct {
	baseURL string
	opts    *fetch.Options
	now     func() time.Time
	native  *cache.Store[[]arbeitnowJob]
}

// ArbeitnowOptions configures the Arbeitnow adapter.
type ArbeitnowOptions struct {
	BaseURL string
	Fetch   *fetch.Options
	TTL     time.Duration
	Now     func() time.Time
}

// NewArbeitnow builds an Arbeitnow adapter.
func NewArbeitnow(opts *ArbeitnowOptions) *Arbeitnow {
	if opts == nil {
		opts = &ArbeitnowOptions{}
	}
	a := &Arbeitnow{
		baseURL: opts.BaseURL,
		opts:    opts.Fetch,
		now:     defaultNow(opts.Now),
		native:  cache.New[[]arbeitnowJob](opts.TTL),
	}
	if a.baseURL == "" {
		a.baseURL = arbeitnowBaseURL
	}
	return a
}

func (a *Arbeitnow) Tag() types.Source { return types.SourceArbeitnow }

func (a *Arbeitnow) Cacheable(string) bool { return true }

// Fetch returns the first page of the board's feed with excerpted
// descriptions.
func (a *Arbeitnow) Fetch(ctx context.Context, _ string) ([]types.JobListing, error) {
	jobs, err := a.list(ctx)
	if err != nil {
		return nil, err
	}
	if len(jobs) > arbeitnowListLimit {
		jobs = jobs[:arbeitnowListLimit]
	}
	listings := make([]types.JobListing, 0, len(jobs))
	for i := range jobs {
		listing := a.transform(&jobs[i])
		listing.Description = parsing.Excerpt(listing.Description)
		listings = append(listings, listing)
	}
	return listings, nil
}

// FetchOne resolves one listing by slug, scanning a cached copy of the full
// feed so detail views outlive the 100-listing list window.
func (a *Arbeitnow) FetchOne(ctx context.Context, nativeID string) (*types.JobListing, error) {
	jobs, ok := a.native.Fresh(nativeListKey)
	if !ok {
		fetched, err := a.list(ctx)
		if err != nil {
			return nil, err
		}
		a.native.Put(nativeListKey, fetched)
		jobs = fetched
	}
	for i := range jobs {
		if jobs[i].Slug == nativeID {
			listing := a.transform(&jobs[i])
			return &listing, nil
		}
	}
	return nil, ErrNotFound
}

func (a *Arbeitnow) list(ctx context.Context) ([]arbeitnowJob, error) {
	body, err := fetch.Bytes(ctx, a.baseURL, a.opts)
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate("arbeitnow", body); err != nil {
		return nil, err
	}
	var resp arbeitnowResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &fetch.Error{URL: a.baseURL, Message: "malformed JSON payload", Cause: err}
	}
	return resp.Data, nil
}

func (a *Arbeitnow) transform(job *arbeitnowJob) types.JobListing {
	location := job.Location
	if location == "" {
		if job.Remote {
			location = "Remote"
		} else {
			location = "Unknown"
		}
	}
	workType := types.WorkOnsite
	if job.Remote {
		workType = types.WorkRemote
	}
	jobType := "full-time"
	if len(job.JobTypes) > 0 {
		jobType = job.JobTypes[0]
	}
	tags := job.Tags
	if tags == nil {
		tags = []string{}
	}
	return types.JobListing{
		ID:                types.CompositeID(types.SourceArbeitnow, job.Slug),
		Title:             job.Title,
		Company:           job.CompanyName,
		Location:          location,
		WorkType:          workType,
		EmploymentType:    parsing.MapEmploymentType(jobType),
		Seniority:         parsing.InferSeniority(job.Title),
		PostedAt:          parsing.FormatPostedAt(time.Unix(job.CreatedAt, 0), a.now()),
		Description:       parsing.StripHTML(job.Description),
		Requirements:      parsing.ExtractRequirements(job.Description, nil),
		Benefits:          parsing.ExtractBenefits(job.Description, nil),
		ApplyURL:          job.URL,
		CompanyReviewsURL: types.ReviewsURL(job.CompanyName, job.Title),
		Tags:              tags,
		Category:          parsing.InferCategory(job.Title, job.Tags),
		Source:            types.SourceArbeitnow,
	}
}
