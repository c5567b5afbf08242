package cmd

import (
	"fmt"
	"io"

	"collections/internal/analytics"
	"collections/pkg/models"
	"github.com/spf13/cobra"
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Show portfolio KPIs",
	Long: `Show DSO (using the configured method), best possible DSO, CEI, collection
rate, average days delinquent and the 30-day collection ratio for the
imported invoices in the selected period.`,
	Example: `  collections kpi --period quarter
  collections kpi --fiscal-year 2025 --fiscal-period h1 --json`,
	RunE: runKPI,
}

func init() {
	rootCmd.AddCommand(kpiCmd)
	addAnalysisFlags(kpiCmd)
}

func runKPI(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := a.analysisInput(cmd)
	if err != nil {
		return err
	}

	kpi := analytics.CalculateKPIs(in.invoices, in.params, in.asOf)
	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), kpi)
	}
	printKPI(cmd.OutOrStdout(), kpi, in)
	return nil
}

func printKPI(w io.Writer, kpi models.KPI, in *analysisInput) {
	printHeader(w, "Collections KPIs", in.scope)
	fmt.Fprintf(w, "Invoices:            %d\n", kpi.TotalInvoices)
	fmt.Fprintf(w, "Total amount:        %.2f\n", kpi.TotalAmount)
	fmt.Fprintf(w, "Collected:           %.2f\n", kpi.TotalCollected)
	fmt.Fprintf(w, "Outstanding:         %.2f\n", kpi.TotalOutstanding)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-21s%d days\n", "DSO ("+string(in.params.DSOMethod)+"):", kpi.DSO)
	fmt.Fprintf(w, "Best possible DSO:   %d days\n", kpi.BestPossibleDSO)
	fmt.Fprintf(w, "ADD:                 %d days\n", kpi.ADD)
	fmt.Fprintf(w, "CEI:                 %d%%\n", kpi.CEI)
	fmt.Fprintf(w, "Collection rate:     %d%%\n", kpi.CollectionRate)
	fmt.Fprintf(w, "Collected in 30d:    %d%%\n", kpi.Days30)
}
