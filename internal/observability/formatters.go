// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jonathan/jobradar/internal/aggregate"
	"github.com/jonathan/jobradar/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the search command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSearchSummary outputs the result counts of an aggregated search.
func (p *Printer) PrintSearchSummary(resp *aggregate.Response, elapsed time.Duration) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matched:  %d\n", resp.Total))
	sb.WriteString(fmt.Sprintf("Showing:  %d\n", len(resp.Jobs)))
	sb.WriteString(fmt.Sprintf("Elapsed:  %v\n", elapsed.Round(time.Millisecond)))
	sb.WriteString("\n")

	sb.WriteString("Per source:\n")
	for _, src := range types.Sources() {
		count, ok := resp.Sources[src]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-10s %d\n", src, count))
	}

	p.printBox("SEARCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintListings outputs a table of listings, one row each.
func (p *Printer) PrintListings(jobs []types.JobListing) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(p.out, "No jobs found.")
		return err
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tLOCATION\tPOSTED")
	fmt.Fprintln(w, "--\t-----\t-------\t--------\t------")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Title, j.Company, j.Location, j.PostedAt)
	}
	return w.Flush()
}

// PrintListing outputs a human-readable summary of one expanded listing.
func (p *Printer) PrintListing(job *types.JobListing) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Location: %s\n", job.Location))
	sb.WriteString(fmt.Sprintf("Type:     %s / %s\n", job.WorkType, job.EmploymentType))
	if job.Salary != "" {
		sb.WriteString(fmt.Sprintf("Salary:   %s\n", job.Salary))
	}
	sb.WriteString(fmt.Sprintf("Posted:   %s\n", job.PostedAt))
	sb.WriteString("\n")

	if len(job.Requirements) > 0 {
		sb.WriteString("Requirements:\n")
		count := min(len(job.Requirements), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.Requirements[i]))
		}
		if len(job.Requirements) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Requirements)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Apply:    %s", job.ApplyURL))

	p.printBox("JOB LISTING", sb.String())
}
