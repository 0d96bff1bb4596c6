// Package main provides the entry point for the JobRadar aggregation service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobradar",
	Short: "JobRadar job listing aggregator",
	Long:  "JobRadar aggregates listings from Remotive, JSearch, Arbeitnow and Adzuna into one canonical feed, served over REST or searched from the command line.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
