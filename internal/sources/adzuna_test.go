package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobradar/internal/types"
)

var _ Adapter = (*Adzuna)(nil)

const adzunaPayload = `{
	"results": [{
		"id": "5001",
		"title": "Registered Nurse",
		"description": "Care for patients. Nursing degree and 2 years of experience required. We offer health insurance.",
		"company": {"display_name": "Mercy Hospital"},
		"location": {"display_name": "Dallas, TX", "area": ["US", "Texas", "Dallas"]},
		"salary_min": 50000,
		"contract_time": "full_time",
		"created": "2025-06-13T00:00:00Z",
		"redirect_url": "https://adzuna.example/land/5001",
		"category": {"label": "Healthcare & Nursing Jobs"}
	}]
}`

func newAdzunaTest(t *testing.T, handler http.HandlerFunc) *Adzuna {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAdzuna(&AdzunaOptions{
		BaseURL: srv.URL,
		AppID:   "id",
		AppKey:  "key",
		Now:     fixedClock,
	})
}

func TestAdzuna_MissingCredentials(t *testing.T) {
	_, err := NewAdzuna(&AdzunaOptions{AppID: "id"}).Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewAdzuna(&AdzunaOptions{AppKey: "key"}).Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAdzuna_FetchesEveryCategory(t *testing.T) {
	var whats []string
	adapter := newAdzunaTest(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		whats = append(whats, q.Get("what"))
		assert.Equal(t, "id", q.Get("app_id"))
		assert.Equal(t, "key", q.Get("app_key"))
		assert.Equal(t, "25", q.Get("results_per_page"))
		assert.Equal(t, "30", q.Get("max_days_old"))
		_, _ = w.Write([]byte(adzunaPayload))
	})

	listings, err := adapter.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"it-jobs", "marketing-jobs", "sales-jobs", "healthcare-nursing-jobs"}, whats)
	assert.Len(t, listings, 4, "category results are concatenated, not deduplicated")

	job := listings[0]
	assert.Equal(t, "adzuna-5001", job.ID)
	assert.Equal(t, "Mercy Hospital", job.Company)
	assert.Equal(t, "Dallas, TX", job.Location)
	assert.Equal(t, types.WorkOnsite, job.WorkType)
	assert.Equal(t, types.EmploymentFullTime, job.EmploymentType)
	assert.Equal(t, "$50k+", job.Salary, "min-only salary renders open-ended")
	assert.Equal(t, "2 days ago", job.PostedAt)
	assert.Equal(t, "Healthcare & Nursing Jobs", job.Category)
	assert.Equal(t, "https://adzuna.example/land/5001", job.ApplyURL)
	assert.Equal(t, types.SourceAdzuna, job.Source)
}

func TestAdzuna_FailedCategorySkipped(t *testing.T) {
	var requests int
	adapter := newAdzunaTest(t, func(w http.ResponseWriter, _ *http.Request) {
		requests++
		if requests == 2 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(adzunaPayload))
	})

	listings, err := adapter.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, requests)
	assert.Len(t, listings, 3, "a failed category does not sink the others")
}

func TestAdzuna_WorkTypeHeuristics(t *testing.T) {
	payload := `{"results":[
		{"id":"1","title":"Remote Writer","description":"Write.","company":{"display_name":"A"},"location":{"display_name":"X"},"created":"2025-06-15T00:00:00Z","redirect_url":"https://x/1","category":{"label":"L"}},
		{"id":"2","title":"Clerk","description":"Hybrid schedule.","company":{"display_name":"B"},"location":{"display_name":"Y"},"created":"2025-06-15T00:00:00Z","redirect_url":"https://x/2","category":{"label":"L"}}
	]}`
	adapter := newAdzunaTest(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	})

	listings, err := adapter.Fetch(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, listings, 8)
	assert.Equal(t, types.WorkRemote, listings[0].WorkType, "remote in the title wins")
	assert.Equal(t, types.WorkHybrid, listings[1].WorkType)
}
