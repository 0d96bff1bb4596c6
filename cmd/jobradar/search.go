package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobradar/internal/aggregate"
	"github.com/jonathan/jobradar/internal/config"
	"github.com/jonathan/jobradar/internal/observability"
)

var (
	searchLocation       string
	searchWorkType       string
	searchEmploymentType string
	searchSeniority      string
	searchCategory       string
	searchLimit          int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a one-shot aggregated search from the command line",
	Long:  `Fetch listings from every configured source, apply the given filters and print the results as a table.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "Filter by location substring")
	searchCmd.Flags().StringVar(&searchWorkType, "work-type", "", "Filter by work type (all, remote, hybrid, onsite)")
	searchCmd.Flags().StringVar(&searchEmploymentType, "employment-type", "", "Filter by employment type (all, full-time, part-time, contract)")
	searchCmd.Flags().StringVar(&searchSeniority, "seniority", "", "Filter by seniority (all, entry, mid, senior)")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Filter by category")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of rows to print")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	query := &aggregate.Query{
		Text:           strings.Join(args, " "),
		Location:       searchLocation,
		WorkType:       searchWorkType,
		EmploymentType: searchEmploymentType,
		Seniority:      searchSeniority,
		Category:       searchCategory,
	}
	if err := query.Validate(); err != nil {
		return err
	}

	engine, _ := buildStack(cfg)

	start := time.Now()
	resp := engine.Search(cmd.Context(), query)
	elapsed := time.Since(start)

	jobs := resp.Jobs
	if searchLimit > 0 && len(jobs) > searchLimit {
		jobs = jobs[:searchLimit]
	}

	printer := observability.NewPrinter(os.Stdout)
	if err := printer.PrintListings(jobs); err != nil {
		return err
	}
	printer.PrintSearchSummary(resp, elapsed)
	return nil
}
