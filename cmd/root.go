package cmd

import (
	"fmt"
	"os"

	"collections/internal/logger"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "collections",
	Short: "Collections performance analytics for accounts receivable",
	Long: `Collections imports an accounts-receivable invoice spreadsheet and reports
collections performance: DSO under five methods, CEI, collection rate,
average days delinquent, the 30-day collection ratio, collector scorecards
with bonuses, customer risk tiers and monthly trends.

State (the imported dataset, parameters and salaries) is kept in DATA_DIR
or, with STORE_DRIVER=postgres, in the database at DATABASE_URL.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
