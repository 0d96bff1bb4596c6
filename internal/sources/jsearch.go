package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/parsing"
	"github.com/jonathan/jobradar/internal/schemas"
	"github.com/jonathan/jobradar/internal/types"
)

const (
	jsearchBaseURL = "https://jsearch.p.rapidapi.com"
	jsearchHost    = "jsearch.p.rapidapi.com"

	// Each refresh queries a random subset of the category pool to keep
	// within the RapidAPI quota while still covering the pool over time.
	jsearchRotationSize = 3
)

// jsearchCategories is the rotation pool of search queries sent to JSearch.
var jsearchCategories = []string{
	"software developer",
	"marketing manager",
	"data analyst",
	"product manager",
	"graphic designer",
	"sales representative",
	"financial analyst",
	"human resources",
	"project manager",
	"customer service",
}

type jsearchHighlights struct {
	Qualifications   []string `json:"Qualifications"`
	Responsibilities []string `json:"Responsibilities"`
	Benefits         []string `json:"Benefits"`
}

type jsearchJob struct {
	JobID             string            `json:"job_id"`
	EmployerName      string            `json:"employer_name"`
	EmployerLogo      string            `json:"employer_logo"`
	JobTitle          string            `json:"job_title"`
	JobCity           string            `json:"job_city"`
	JobState          string            `json:"job_state"`
	JobCountry        string            `json:"job_country"`
	JobEmploymentType string            `json:"job_employment_type"`
	JobIsRemote       bool              `json:"job_is_remote"`
	JobPostedAt       string            `json:"job_posted_at_datetime_utc"`
	JobDescription    string            `json:"job_description"`
	JobMinSalary      float64           `json:"job_min_salary"`
	JobMaxSalary      float64           `json:"job_max_salary"`
	JobSalaryCurrency string            `json:"job_salary_currency"`
	JobSalaryPeriod   string            `json:"job_salary_period"`
	JobApplyLink      string            `json:"job_apply_link"`
	JobRequiredSkills []string          `json:"job_required_skills"`
	JobHighlights     jsearchHighlights `json:"job_highlights"`
}

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
}

// JSearch adapts the JSearch API on RapidAPI. It is the only source that
// honors a caller-supplied query; without one it rotates through a pool of
// job categories to build a broad sample.
type JSearch struct {
	baseURL string
	apiKey  string
	opts    *fetch.Options
	now     func() time.Time
	rand    *rand.Rand
}

// JSearchOptions configures the JSearch adapter. An empty APIKey disables
// the source. Rand may be seeded for deterministic category rotation.
type JSearchOptions struct {
	BaseURL string
	APIKey  string
	Fetch   *fetch.Options
	Now     func() time.Time
	Rand    *rand.Rand
}

// NewJSearch builds a JSearch adapter.
func NewJSearch(opts *JSearchOptions) *JSearch {
	if opts == nil {
		opts = &JSearchOptions{}
	}
	j := &JSearch{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		opts:    opts.Fetch,
		now:     defaultNow(opts.Now),
		rand:    opts.Rand,
	}
	if j.baseURL == "" {
		j.baseURL = jsearchBaseURL
	}
	if j.rand == nil {
		j.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return j
}

func (j *JSearch) Tag() types.Source { return types.SourceJSearch }

// Cacheable is false for custom queries: those results are query-specific
// and must not displace the cached rotation sample.
func (j *JSearch) Cacheable(query string) bool { return query == "" }

// Fetch returns listings for the given query, or for a rotating category
// sample when the query is empty.
func (j *JSearch) Fetch(ctx context.Context, query string) ([]types.JobListing, error) {
	if j.apiKey == "" {
		return nil, fmt.Errorf("jsearch: %w", ErrNotConfigured)
	}

	if query != "" {
		resp, err := j.search(ctx, query)
		if err != nil {
			return nil, err
		}
		return j.transformAll(resp.Data, parsing.InferCategory(query, nil)), nil
	}

	shuffled := make([]string, len(jsearchCategories))
	copy(shuffled, jsearchCategories)
	j.rand.Shuffle(len(shuffled), func(a, b int) {
		shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
	})

	var all []types.JobListing
	for _, category := range shuffled[:jsearchRotationSize] {
		resp, err := j.search(ctx, category)
		if err != nil {
			log.Printf("[jsearch] category %q fetch failed: %v", category, err)
			continue
		}
		all = append(all, j.transformAll(resp.Data, parsing.InferCategory(category, nil))...)
	}

	// Categories overlap, so the same posting can arrive twice; first
	// occurrence wins.
	seen := make(map[string]struct{}, len(all))
	unique := all[:0]
	for _, listing := range all {
		if _, dup := seen[listing.ID]; dup {
			continue
		}
		seen[listing.ID] = struct{}{}
		unique = append(unique, listing)
	}
	return unique, nil
}

// FetchOne resolves one listing through the job-details endpoint with the
// full description. Upstream failures read as not-found: the listing was
// already shown from list data and the board may simply have dropped it.
func (j *JSearch) FetchOne(ctx context.Context, nativeID string) (*types.JobListing, error) {
	if j.apiKey == "" {
		return nil, ErrNotFound
	}
	reqURL := fmt.Sprintf("%s/job-details?job_id=%s", j.baseURL, url.QueryEscape(nativeID))
	var resp jsearchResponse
	if err := j.get(ctx, reqURL, &resp); err != nil {
		log.Printf("[jsearch] job-details fetch failed: %v", err)
		return nil, ErrNotFound
	}
	if resp.Status != "OK" || len(resp.Data) == 0 {
		return nil, ErrNotFound
	}
	job := resp.Data[0]
	listing := j.transform(&job, parsing.InferCategory(job.JobTitle, job.JobRequiredSkills))
	return &listing, nil
}

func (j *JSearch) search(ctx context.Context, query string) (*jsearchResponse, error) {
	reqURL := fmt.Sprintf("%s/search?query=%s&page=1&num_pages=2&date_posted=month",
		j.baseURL, url.QueryEscape(query+" USA"))
	var resp jsearchResponse
	if err := j.get(ctx, reqURL, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" {
		return &jsearchResponse{Status: resp.Status}, nil
	}
	return &resp, nil
}

func (j *JSearch) get(ctx context.Context, reqURL string, out *jsearchResponse) error {
	opts := j.opts
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	authed := *opts
	authed.Headers = map[string]string{
		"X-RapidAPI-Key":  j.apiKey,
		"X-RapidAPI-Host": jsearchHost,
	}
	for key, value := range opts.Headers {
		authed.Headers[key] = value
	}

	body, err := fetch.Bytes(ctx, reqURL, &authed)
	if err != nil {
		return err
	}
	if err := schemas.Validate("jsearch", body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &fetch.Error{URL: reqURL, Message: "malformed JSON payload", Cause: err}
	}
	return nil
}

func (j *JSearch) transformAll(jobs []jsearchJob, category string) []types.JobListing {
	listings := make([]types.JobListing, 0, len(jobs))
	for i := range jobs {
		listing := j.transform(&jobs[i], category)
		listing.Description = parsing.Excerpt(listing.Description)
		listings = append(listings, listing)
	}
	return listings
}

func (j *JSearch) transform(job *jsearchJob, category string) types.JobListing {
	workType := types.WorkOnsite
	switch {
	case job.JobIsRemote:
		workType = types.WorkRemote
	case strings.Contains(strings.ToLower(job.JobTitle), "hybrid"),
		strings.Contains(strings.ToLower(job.JobDescription), "hybrid"):
		workType = types.WorkHybrid
	}

	location := "United States"
	switch {
	case job.JobCity != "" && job.JobState != "":
		location = job.JobCity + ", " + job.JobState
	case job.JobState != "":
		location = job.JobState
	case job.JobCountry != "":
		location = job.JobCountry
	}
	if job.JobIsRemote {
		location += " (Remote)"
	}

	if category == "" {
		category = parsing.InferCategory(job.JobTitle, job.JobRequiredSkills)
	}
	tags := job.JobRequiredSkills
	if tags == nil {
		tags = []string{}
	}

	return types.JobListing{
		ID:             types.CompositeID(types.SourceJSearch, job.JobID),
		Title:          job.JobTitle,
		Company:        job.EmployerName,
		Location:       location,
		WorkType:       workType,
		EmploymentType: parsing.MapEmploymentType(job.JobEmploymentType),
		Seniority:      parsing.InferSeniority(job.JobTitle),
		Salary: parsing.FormatSalary(job.JobMinSalary, job.JobMaxSalary,
			job.JobSalaryCurrency, job.JobSalaryPeriod),
		PostedAt:          postedAt(job.JobPostedAt, j.now()),
		Description:       parsing.StripHTML(job.JobDescription),
		Requirements:      parsing.ExtractRequirements(job.JobDescription, job.JobHighlights.Qualifications),
		Benefits:          parsing.ExtractBenefits(job.JobDescription, job.JobHighlights.Benefits),
		ApplyURL:          job.JobApplyLink,
		CompanyReviewsURL: types.ReviewsURL(job.EmployerName, job.JobTitle),
		CompanyLogo:       job.EmployerLogo,
		Tags:              tags,
		Category:          category,
		Source:            types.SourceJSearch,
	}
}
