package sources

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobradar/internal/types"
)

var (
	_ Adapter       = (*JSearch)(nil)
	_ DetailFetcher = (*JSearch)(nil)
)

const jsearchPayload = `{
	"status": "OK",
	"data": [{
		"job_id": "abc123",
		"employer_name": "Globex",
		"employer_logo": null,
		"job_title": "Senior Data Analyst",
		"job_city": "Austin",
		"job_state": "TX",
		"job_country": "US",
		"job_employment_type": "FULLTIME",
		"job_is_remote": true,
		"job_posted_at_datetime_utc": "2025-06-15T08:00:00.000Z",
		"job_description": "Analyze data. 3+ years of experience with SQL required.",
		"job_min_salary": 90000,
		"job_max_salary": 120000,
		"job_salary_currency": "USD",
		"job_salary_period": "YEAR",
		"job_apply_link": "https://jobs.example.com/abc123",
		"job_required_skills": ["sql", "python"],
		"job_highlights": {
			"Qualifications": ["3+ years with SQL", "BA in a related field"],
			"Benefits": ["Unlimited PTO"]
		}
	}, {
		"job_id": "def456",
		"employer_name": "Initech",
		"job_title": "Hybrid Support Specialist",
		"job_employment_type": "CONTRACTOR",
		"job_is_remote": false,
		"job_posted_at_datetime_utc": "2025-06-01T00:00:00.000Z",
		"job_description": "Help customers.",
		"job_apply_link": "https://jobs.example.com/def456",
		"job_required_skills": null
	}]
}`

func newJSearchTest(t *testing.T, handler http.HandlerFunc) *JSearch {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewJSearch(&JSearchOptions{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Now:     fixedClock,
		Rand:    rand.New(rand.NewSource(1)),
	})
}

func TestJSearch_MissingKey(t *testing.T) {
	adapter := NewJSearch(&JSearchOptions{Now: fixedClock})
	_, err := adapter.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestJSearch_Cacheable(t *testing.T) {
	adapter := NewJSearch(&JSearchOptions{APIKey: "k"})
	assert.True(t, adapter.Cacheable(""))
	assert.False(t, adapter.Cacheable("golang"), "custom queries bypass the cache")
}

func TestJSearch_CustomQuery(t *testing.T) {
	var gotPath, gotQuery, gotKey, gotHost string
	adapter := newJSearchTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		_, _ = w.Write([]byte(jsearchPayload))
	})

	listings, err := adapter.Fetch(context.Background(), "software developer")
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "software developer USA", gotQuery)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "jsearch.p.rapidapi.com", gotHost)

	job := listings[0]
	assert.Equal(t, "jsearch-abc123", job.ID)
	assert.Equal(t, "Globex", job.Company)
	assert.Equal(t, "Austin, TX (Remote)", job.Location)
	assert.Equal(t, types.WorkRemote, job.WorkType)
	assert.Equal(t, types.SenioritySenior, job.Seniority)
	assert.Equal(t, "$90k - $120k", job.Salary)
	assert.Equal(t, "Today", job.PostedAt)
	assert.Equal(t, "Technology", job.Category, "category comes from the query, not the title")
	assert.Equal(t, []string{"3+ years with SQL", "BA in a related field"}, job.Requirements)
	assert.Equal(t, []string{"Unlimited PTO"}, job.Benefits)
	assert.Equal(t, []string{"sql", "python"}, job.Tags)

	other := listings[1]
	assert.Equal(t, types.WorkHybrid, other.WorkType, "hybrid in the title wins over onsite")
	assert.Equal(t, "United States", other.Location)
	assert.Equal(t, types.EmploymentContract, other.EmploymentType)
	assert.Empty(t, other.Salary)
	assert.Equal(t, []string{}, other.Tags)
}

func TestJSearch_CategoryRotation(t *testing.T) {
	var requests int
	adapter := newJSearchTest(t, func(w http.ResponseWriter, _ *http.Request) {
		requests++
		_, _ = w.Write([]byte(jsearchPayload))
	})

	listings, err := adapter.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, requests, "one request per rotated category")
	assert.Len(t, listings, 2, "repeated postings across categories are deduplicated")
}

func TestJSearch_RotationSurvivesCategoryFailure(t *testing.T) {
	var requests int
	adapter := newJSearchTest(t, func(w http.ResponseWriter, _ *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(jsearchPayload))
	})

	listings, err := adapter.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, requests)
	assert.Len(t, listings, 2)
}

func TestJSearch_NonOKStatus(t *testing.T) {
	adapter := newJSearchTest(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ERROR","data":[]}`))
	})

	listings, err := adapter.Fetch(context.Background(), "golang")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestJSearch_FetchOne(t *testing.T) {
	var gotPath, gotID string
	adapter := newJSearchTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotID = r.URL.Query().Get("job_id")
		_, _ = w.Write([]byte(jsearchPayload))
	})

	job, err := adapter.FetchOne(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "/job-details", gotPath)
	assert.Equal(t, "abc123", gotID)
	assert.Equal(t, "jsearch-abc123", job.ID)
	assert.Equal(t, "Data", job.Category, "detail lookups infer the category from the title")
	assert.NotContains(t, job.Description, "...")
}

func TestJSearch_FetchOneMisses(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		adapter := newJSearchTest(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"OK","data":[]}`))
		})
		_, err := adapter.FetchOne(context.Background(), "abc123")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upstream failure", func(t *testing.T) {
		adapter := newJSearchTest(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := adapter.FetchOne(context.Background(), "abc123")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing key", func(t *testing.T) {
		adapter := NewJSearch(&JSearchOptions{Now: fixedClock})
		_, err := adapter.FetchOne(context.Background(), "abc123")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
