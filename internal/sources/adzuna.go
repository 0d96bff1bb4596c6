package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/parsing"
	"github.com/jonathan/jobradar/internal/schemas"
	"github.com/jonathan/jobradar/internal/types"
)

const (
	adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs/us/search/1"

	adzunaPageSize   = 25
	adzunaMaxDaysOld = 30
)

// adzunaCategories are the fixed board categories fetched on every refresh.
var adzunaCategories = []string{
	"it-jobs",
	"marketing-jobs",
	"sales-jobs",
	"healthcare-nursing-jobs",
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
}

type adzunaCategory struct {
	Label string `json:"label"`
}

type adzunaJob struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Company      adzunaCompany  `json:"company"`
	Location     adzunaLocation `json:"location"`
	SalaryMin    float64        `json:"salary_min"`
	SalaryMax    float64        `json:"salary_max"`
	ContractType string         `json:"contract_type"`
	ContractTime string         `json:"contract_time"`
	Created      string         `json:"created"`
	RedirectURL  string         `json:"redirect_url"`
	Category     adzunaCategory `json:"category"`
}

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

// Adzuna adapts the Adzuna US search API. The board has no per-job detail
// endpoint, so Adzuna listings resolve through the apply link only.
type Adzuna struct {
	baseURL string
	appID   string
	appKey  string
	opts    *fetch.Options
	now     func() time.Time
}

// AdzunaOptions configures the Adzuna adapter. Empty credentials disable
// the source.
type AdzunaOptions struct {
	BaseURL string
	AppID   string
	AppKey  string
	Fetch   *fetch.Options
	Now     func() time.Time
}

// NewAdzuna builds an Adzuna adapter.
func NewAdzuna(opts *AdzunaOptions) *Adzuna {
	if opts == nil {
		opts = &AdzunaOptions{}
	}
	a := &Adzuna{
		baseURL: opts.BaseURL,
		appID:   opts.AppID,
		appKey:  opts.AppKey,
		opts:    opts.Fetch,
		now:     defaultNow(opts.Now),
	}
	if a.baseURL == "" {
		a.baseURL = adzunaBaseURL
	}
	return a
}

func (a *Adzuna) Tag() types.Source { return types.SourceAdzuna }

func (a *Adzuna) Cacheable(string) bool { return true }

// Fetch pulls every fixed category and concatenates the results. A failed
// category is logged and skipped so the remaining categories still land.
func (a *Adzuna) Fetch(ctx context.Context, _ string) ([]types.JobListing, error) {
	if a.appID == "" || a.appKey == "" {
		return nil, fmt.Errorf("adzuna: %w", ErrNotConfigured)
	}

	var all []types.JobListing
	for _, category := range adzunaCategories {
		results, err := a.searchCategory(ctx, category)
		if err != nil {
			log.Printf("[adzuna] category %q fetch failed: %v", category, err)
			continue
		}
		for i := range results {
			listing := a.transform(&results[i])
			listing.Description = parsing.Excerpt(listing.Description)
			all = append(all, listing)
		}
	}
	return all, nil
}

func (a *Adzuna) searchCategory(ctx context.Context, category string) ([]adzunaJob, error) {
	reqURL := fmt.Sprintf("%s?app_id=%s&app_key=%s&results_per_page=%d&what=%s&max_days_old=%d",
		a.baseURL, a.appID, a.appKey, adzunaPageSize, category, adzunaMaxDaysOld)
	body, err := fetch.Bytes(ctx, reqURL, a.opts)
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate("adzuna", body); err != nil {
		return nil, err
	}
	var resp adzunaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &fetch.Error{URL: reqURL, Message: "malformed JSON payload", Cause: err}
	}
	return resp.Results, nil
}

func (a *Adzuna) transform(job *adzunaJob) types.JobListing {
	haystack := strings.ToLower(job.Title + " " + job.Description)
	workType := types.WorkOnsite
	switch {
	case strings.Contains(haystack, "remote"):
		workType = types.WorkRemote
	case strings.Contains(haystack, "hybrid"):
		workType = types.WorkHybrid
	}

	jobType := job.ContractType
	if jobType == "" {
		jobType = job.ContractTime
	}
	if jobType == "" {
		jobType = "full-time"
	}

	category := job.Category.Label
	if category == "" {
		category = parsing.InferCategory(job.Title, nil)
	}

	return types.JobListing{
		ID:                types.CompositeID(types.SourceAdzuna, job.ID),
		Title:             job.Title,
		Company:           job.Company.DisplayName,
		Location:          job.Location.DisplayName,
		WorkType:          workType,
		EmploymentType:    parsing.MapEmploymentType(jobType),
		Seniority:         parsing.InferSeniority(job.Title),
		Salary:            parsing.FormatSalary(job.SalaryMin, job.SalaryMax, "", ""),
		PostedAt:          postedAt(job.Created, a.now()),
		Description:       parsing.StripHTML(job.Description),
		Requirements:      parsing.ExtractRequirements(job.Description, nil),
		Benefits:          parsing.ExtractBenefits(job.Description, nil),
		ApplyURL:          job.RedirectURL,
		CompanyReviewsURL: types.ReviewsURL(job.Company.DisplayName, job.Title),
		Tags:              []string{},
		Category:          category,
		Source:            types.SourceAdzuna,
	}
}
