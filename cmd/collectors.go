package cmd

import (
	"fmt"
	"io"
	"strings"

	"collections/internal/analytics"
	"collections/internal/logger"
	"collections/internal/sheets"
	"collections/pkg/models"
	"github.com/spf13/cobra"
)

var collectorsCmd = &cobra.Command{
	Use:   "collectors",
	Short: "Score collectors and compute bonuses",
	Long: `Group invoices by collector and build a scorecard for each: KPI snapshot,
sub-scores against the configured targets, weighted score, rating and bonus.

The bonus follows the configured bonusPolicy: "continuous" scales
maxBonusPercent of salary by the collection rate, "tiered" pays the
percentage of the highest bonus rule whose minimum score is reached.

With --export the scorecards are appended to a worksheet of the Google Sheet
at GOOGLE_SHEET_URL.`,
	Example: `  collections collectors --period month
  collections collectors --fiscal-period q2 --export "Q2 Scorecards"`,
	RunE: runCollectors,
}

func init() {
	rootCmd.AddCommand(collectorsCmd)
	addAnalysisFlags(collectorsCmd)
	collectorsCmd.Flags().String("export", "", "Append scorecards to this Google Sheets worksheet")
}

func runCollectors(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("collectors")
	ctx := cmd.Context()
	exportSheet, _ := cmd.Flags().GetString("export")

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := a.analysisInput(cmd)
	if err != nil {
		return err
	}

	scorecards := analytics.ScoreCollectors(in.invoices, in.params, in.salaries, in.asOf)
	log.Info().
		Int("collectors", len(scorecards)).
		Int("invoices", len(in.invoices)).
		Str("bonus_policy", string(in.params.BonusPolicy)).
		Msg("Collectors scored")

	if exportSheet != "" {
		if err := a.cfg.RequireSheetURL(); err != nil {
			return err
		}
		svc, err := sheets.NewSheetsService(ctx, a.cfg.GoogleSheetURL)
		if err != nil {
			return fmt.Errorf("failed to initialize Google Sheets service: %w", err)
		}
		if err := svc.WriteScorecards(ctx, scorecards, exportSheet); err != nil {
			return fmt.Errorf("failed to export scorecards: %w", err)
		}
	}

	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), scorecards)
	}
	printScorecards(cmd.OutOrStdout(), scorecards, in.scope)
	return nil
}

func printScorecards(w io.Writer, scorecards []models.CollectorPerformance, scope string) {
	printHeader(w, "Collector Scorecards", scope)
	if len(scorecards) == 0 {
		fmt.Fprintln(w, "No invoices in scope.")
		return
	}

	fmt.Fprintf(w, "%-22s %6s %-12s %10s %5s %5s %5s %5s %5s %5s\n",
		"Collector", "Score", "Rating", "Bonus", "Coll%", "DSO", "CEI", "ADD", "30d%", "Inv")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, p := range scorecards {
		fmt.Fprintf(w, "%-22s %6.1f %-12s %10.0f %5d %5d %5d %5d %5d %5d\n",
			truncate(p.Name, 22), p.Score, p.Rating, p.Bonus,
			p.KPI.CollectionRate, p.KPI.DSO, p.KPI.CEI, p.KPI.ADD, p.KPI.Days30, p.InvoiceCount)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
