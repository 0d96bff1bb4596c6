package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobradar/internal/aggregate"
	"github.com/jonathan/jobradar/internal/types"
)

func TestPrintSearchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSearchSummary(&aggregate.Response{
		Jobs:  make([]types.JobListing, 2),
		Total: 7,
		Sources: map[types.Source]int{
			types.SourceRemotive: 5,
			types.SourceAdzuna:   2,
		},
	}, 123*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "SEARCH RESULTS")
	assert.Contains(t, out, "Matched:  7")
	assert.Contains(t, out, "Showing:  2")
	assert.Contains(t, out, "remotive")
	assert.Contains(t, out, "adzuna")
	assert.NotContains(t, out, "jsearch", "sources without a count are omitted")
}

func TestPrintSearchSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSearchSummary(nil, 0)
	assert.Empty(t, buf.String())
}

func TestPrintListings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	err := p.PrintListings([]types.JobListing{
		{ID: "remotive-1", Title: "Backend Engineer", Company: "Acme",
			Location: "Remote", PostedAt: "Today"},
		{ID: "adzuna-9", Title: "Nurse", Company: "Mercy",
			Location: "Boston, MA", PostedAt: "2 days ago"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[2], "remotive-1")
	assert.Contains(t, lines[3], "Boston, MA")
}

func TestPrintListings_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).PrintListings(nil))
	assert.Contains(t, buf.String(), "No jobs found.")
}

func TestPrintListing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintListing(&types.JobListing{
		Title:          "Backend Engineer",
		Company:        "Acme",
		Location:       "Remote",
		WorkType:       types.WorkRemote,
		EmploymentType: types.EmploymentFullTime,
		Salary:         "$90k - $120k",
		PostedAt:       "Today",
		Requirements: []string{
			"5+ years of Go", "Experience with Kubernetes", "SQL fluency",
			"CI/CD ownership", "On-call rotation", "Mentoring juniors",
		},
		ApplyURL: "https://example.com/apply",
	})

	out := buf.String()
	assert.Contains(t, out, "JOB LISTING")
	assert.Contains(t, out, "remote / full-time")
	assert.Contains(t, out, "$90k - $120k")
	assert.Contains(t, out, "... and 1 more")
	assert.Contains(t, out, "https://example.com/apply")
}
