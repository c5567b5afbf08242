package cmd

import (
	"fmt"
	"io"
	"strings"

	"collections/internal/analytics"
	"collections/pkg/models"
	"github.com/spf13/cobra"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show monthly collections trend",
	Long: `Bucket invoices by the month of their basis date (dateBasis parameter) and
show sales, collections, outstanding balance, DSO, CEI and collection rate
for each month in ascending order.`,
	Example: `  collections trend --period year
  collections trend --fiscal-year 2024 --json`,
	RunE: runTrend,
}

func init() {
	rootCmd.AddCommand(trendCmd)
	addAnalysisFlags(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := a.analysisInput(cmd)
	if err != nil {
		return err
	}

	stats := analytics.MonthlyTrend(in.invoices, in.params, in.asOf)
	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), stats)
	}
	printTrend(cmd.OutOrStdout(), stats, in.scope)
	return nil
}

func printTrend(w io.Writer, stats []models.MonthlyStats, scope string) {
	printHeader(w, "Monthly Trend", scope)
	fmt.Fprintf(w, "%-8s %13s %13s %13s %5s %5s %6s %5s\n", "Month", "Sales", "Collected", "Outstanding", "DSO", "CEI", "Coll%", "Inv")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, s := range stats {
		fmt.Fprintf(w, "%-8s %13.2f %13.2f %13.2f %5d %5d %6d %5d\n",
			s.Month, s.Sales, s.Collected, s.Outstanding, s.DSO, s.CEI, s.CollectionRate, s.InvoiceCount)
	}
}
