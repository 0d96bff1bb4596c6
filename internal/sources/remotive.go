package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jonathan/jobradar/internal/cache"
	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/parsing"
	"github.com/jonathan/jobradar/internal/schemas"
	"github.com/jonathan/jobradar/internal/types"
)

const (
	remotiveBaseURL = "https://remotive.com/api/remote-jobs"

	// The list view fetches 100 jobs; detail lookups pull a deeper page so
	// listings that scrolled off the first 100 still resolve.
	remotiveListLimit   = 100
	remotiveDetailLimit = 200
)

type remotiveJob struct {
	ID                        int      `json:"id"`
	URL                       string   `json:"url"`
	Title                     string   `json:"title"`
	CompanyName               string   `json:"company_name"`
	CompanyLogo               string   `json:"company_logo"`
	Category                  string   `json:"category"`
	Tags                      []string `json:"tags"`
	JobType                   string   `json:"job_type"`
	PublicationDate           string   `json:"publication_date"`
	CandidateRequiredLocation string   `json:"candidate_required_location"`
	Salary                    string   `json:"salary"`
	Description               string   `json:"description"`
}

type remotiveResponse struct {
	JobCount int           `json:"job-count"`
	Jobs     []remotiveJob `json:"jobs"`
}

// Remotive adapts the Remotive remote-jobs API. The board is remote-only,
// so every listing carries the remote work type.
type Remotive struct {
	baseURL string
	opts    *fetch.Options
	now     func() time.Time
	native  *cache.Store[[]remotiveJob]
}

// RemotiveOptions configures the Remotive adapter. Zero values select the
// public API, default fetch options and the real clock.
type RemotiveOptions struct {
	BaseURL string
	Fetch   *fetch.Options
	TTL     time.Duration
	Now     func() time.Time
}

// NewRemotive builds a Remotive adapter.
func NewRemotive(opts *RemotiveOptions) *Remotive {
	if opts == nil {
		opts = &RemotiveOptions{}
	}
	r := &Remotive{
		baseURL: opts.BaseURL,
		opts:    opts.Fetch,
		now:     defaultNow(opts.Now),
		native:  cache.New[[]remotiveJob](opts.TTL),
	}
	if r.baseURL == "" {
		r.baseURL = remotiveBaseURL
	}
	return r
}

func (r *Remotive) Tag() types.Source { return types.SourceRemotive }

func (r *Remotive) Cacheable(string) bool { return true }

// Fetch returns the board's current listings with excerpted descriptions.
func (r *Remotive) Fetch(ctx context.Context, _ string) ([]types.JobListing, error) {
	jobs, err := r.list(ctx, remotiveListLimit)
	if err != nil {
		return nil, err
	}
	listings := make([]types.JobListing, 0, len(jobs))
	for i := range jobs {
		listing := r.transform(&jobs[i])
		listing.Description = parsing.Excerpt(listing.Description)
		listings = append(listings, listing)
	}
	return listings, nil
}

// FetchOne resolves one listing by its numeric upstream id, scanning a
// cached deep page of the list. The full description is kept.
func (r *Remotive) FetchOne(ctx context.Context, nativeID string) (*types.JobListing, error) {
	jobs, ok := r.native.Fresh(nativeListKey)
	if !ok {
		fetched, err := r.list(ctx, remotiveDetailLimit)
		if err != nil {
			return nil, err
		}
		r.native.Put(nativeListKey, fetched)
		jobs = fetched
	}
	for i := range jobs {
		if strconv.Itoa(jobs[i].ID) == nativeID {
			listing := r.transform(&jobs[i])
			return &listing, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Remotive) list(ctx context.Context, limit int) ([]remotiveJob, error) {
	url := fmt.Sprintf("%s?limit=%d", r.baseURL, limit)
	body, err := fetch.Bytes(ctx, url, r.opts)
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate("remotive", body); err != nil {
		return nil, err
	}
	var resp remotiveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &fetch.Error{URL: url, Message: "malformed JSON payload", Cause: err}
	}
	return resp.Jobs, nil
}

func (r *Remotive) transform(job *remotiveJob) types.JobListing {
	location := job.CandidateRequiredLocation
	if location == "" {
		location = "Remote"
	}
	category := job.Category
	if category == "" {
		category = parsing.InferCategory(job.Title, job.Tags)
	}
	tags := job.Tags
	if tags == nil {
		tags = []string{}
	}
	return types.JobListing{
		ID:                types.CompositeID(types.SourceRemotive, strconv.Itoa(job.ID)),
		Title:             job.Title,
		Company:           job.CompanyName,
		Location:          location,
		WorkType:          types.WorkRemote,
		EmploymentType:    parsing.MapEmploymentType(job.JobType),
		Seniority:         parsing.InferSeniority(job.Title),
		Salary:            job.Salary,
		PostedAt:          postedAt(job.PublicationDate, r.now()),
		Description:       parsing.StripHTML(job.Description),
		Requirements:      parsing.ExtractRequirements(job.Description, nil),
		Benefits:          parsing.ExtractBenefits(job.Description, nil),
		ApplyURL:          job.URL,
		CompanyReviewsURL: types.ReviewsURL(job.CompanyName, job.Title),
		CompanyLogo:       job.CompanyLogo,
		Tags:              tags,
		Category:          category,
		Source:            types.SourceRemotive,
	}
}
