package cmd

import (
	"fmt"
	"io"
	"strings"

	"collections/internal/analytics"
	"collections/pkg/models"
	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Classify customers by collection risk",
	Long: `Group invoices by customer and assign a risk tier from the average overdue
delay and the overdue share of the customer's outstanding balance:

  High    average delay over 60 days or more than half of the balance overdue
  Medium  average delay over 30 days or more than a fifth overdue
  Low     everything else`,
	Example: `  collections risk --level High
  collections risk --profiles --json`,
	RunE: runRisk,
}

func init() {
	rootCmd.AddCommand(riskCmd)
	addAnalysisFlags(riskCmd)
	riskCmd.Flags().String("level", "", "Only show customers at this risk level (High, Medium, Low)")
	riskCmd.Flags().Bool("profiles", false, "Show account profiles (invoiced, collected, outstanding)")
}

func runRisk(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("level")
	profiles, _ := cmd.Flags().GetBool("profiles")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := a.analysisInput(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if profiles {
		list := filterProfiles(analytics.CustomerProfiles(in.invoices), level)
		if wantJSON(cmd) {
			return printJSON(w, list)
		}
		printProfiles(w, list, in.scope)
		return nil
	}

	risks := filterRisks(analytics.CustomerRisks(in.invoices), level)
	if wantJSON(cmd) {
		return printJSON(w, risks)
	}
	printRisks(w, risks, in.scope)
	return nil
}

func filterRisks(risks []models.CustomerRisk, level string) []models.CustomerRisk {
	if level == "" {
		return risks
	}
	out := make([]models.CustomerRisk, 0, len(risks))
	for _, r := range risks {
		if strings.EqualFold(string(r.RiskLevel), level) {
			out = append(out, r)
		}
	}
	return out
}

func filterProfiles(profiles []models.CustomerProfile, level string) []models.CustomerProfile {
	if level == "" {
		return profiles
	}
	out := make([]models.CustomerProfile, 0, len(profiles))
	for _, p := range profiles {
		if strings.EqualFold(string(p.RiskLevel), level) {
			out = append(out, p)
		}
	}
	return out
}

func printRisks(w io.Writer, risks []models.CustomerRisk, scope string) {
	printHeader(w, "Customer Risk", scope)
	fmt.Fprintf(w, "%-26s %-7s %12s %12s %9s %-18s\n", "Customer", "Risk", "Exposure", "Overdue", "Avg delay", "Collector")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range risks {
		fmt.Fprintf(w, "%-26s %-7s %12.2f %12.2f %9.1f %-18s\n",
			truncate(r.Name, 26), r.RiskLevel, r.TotalExposure, r.OverdueAmount, r.AvgDelay, truncate(r.CollectorName, 18))
	}
}

func printProfiles(w io.Writer, profiles []models.CustomerProfile, scope string) {
	printHeader(w, "Customer Profiles", scope)
	fmt.Fprintf(w, "%-26s %-7s %13s %13s %13s\n", "Customer", "Risk", "Invoiced", "Collected", "Outstanding")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, p := range profiles {
		fmt.Fprintf(w, "%-26s %-7s %13.2f %13.2f %13.2f\n",
			truncate(p.Name, 26), p.RiskLevel, p.TotalInvoiced, p.TotalCollected, p.TotalOutstanding)
	}
}
