package analytics

import (
	"math"
	"sort"
	"time"

	"collections/pkg/models"
)

// Rating thresholds on the composite score, evaluated highest first.
const (
	outstandingScore = 96
	excellentScore   = 86
	goodScore        = 75
)

// ScoreCollectors groups invoices by collector and builds one scorecard per
// collector. Results are ordered by score descending, then by name.
func ScoreCollectors(
	invoices []models.Invoice,
	params models.GlobalParameters,
	salaries models.SalaryTable,
	asOf time.Time,
) []models.CollectorPerformance {
	return ScoreCollectorsWithPolicy(invoices, params, salaries, PolicyFor(params), asOf)
}

// ScoreCollectorsWithPolicy is ScoreCollectors with an explicit bonus policy.
func ScoreCollectorsWithPolicy(
	invoices []models.Invoice,
	params models.GlobalParameters,
	salaries models.SalaryTable,
	policy BonusPolicy,
	asOf time.Time,
) []models.CollectorPerformance {
	groups, order := groupBy(invoices, func(inv *models.Invoice) string {
		if inv.CollectorName == "" {
			return models.UnassignedCollector
		}
		return inv.CollectorName
	})

	results := make([]models.CollectorPerformance, 0, len(order))
	for _, name := range order {
		group := groups[name]
		kpi := CalculateKPIs(group, params, asOf)
		sub := SubScoresFor(kpi, params)
		raw := weightedScore(sub, params)

		perf := models.CollectorPerformance{
			Name:           name,
			Salary:         salaries.For(name),
			KPI:            kpi,
			SubScores:      sub,
			Score:          roundScore(raw),
			TargetAmount:   kpi.TotalAmount * params.CollectedTarget.Target / 100,
			InvoiceCount:   kpi.TotalInvoices,
			CustomersCount: distinctCustomers(group),
			Invoices:       group,
		}
		perf.Rating = RatingFor(raw)
		perf.Bonus = policy.Bonus(perf.Salary, perf)
		results = append(results, perf)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})
	return results
}

// SubScoresFor normalizes each KPI against its target into [0, 100].
func SubScoresFor(kpi models.KPI, params models.GlobalParameters) models.SubScores {
	return models.SubScores{
		Collected: ratioScore(float64(kpi.CollectionRate), params.CollectedTarget.Target),
		DSO:       inverseScore(float64(kpi.DSO), params.DSO.Target),
		CEI:       ratioScore(float64(kpi.CEI), params.CEI.Target),
		ADD:       inverseScore(float64(kpi.ADD), params.ADD.Target),
		Days30:    ratioScore(float64(kpi.Days30), params.Days30.Target),
	}
}

// CompositeScore is the weight-averaged sub-score, rounded to one decimal.
func CompositeScore(sub models.SubScores, params models.GlobalParameters) float64 {
	return roundScore(weightedScore(sub, params))
}

func weightedScore(sub models.SubScores, params models.GlobalParameters) float64 {
	return params.CollectedTarget.Weight/100*sub.Collected +
		params.DSO.Weight/100*sub.DSO +
		params.CEI.Weight/100*sub.CEI +
		params.ADD.Weight/100*sub.ADD +
		params.Days30.Weight/100*sub.Days30
}

func roundScore(score float64) float64 {
	return math.Floor(score*10+0.5) / 10
}

// RatingFor maps an unrounded composite score to its rating band.
func RatingFor(score float64) models.Rating {
	switch {
	case score >= outstandingScore:
		return models.RatingOutstanding
	case score >= excellentScore:
		return models.RatingExcellent
	case score >= goodScore:
		return models.RatingGood
	default:
		return models.RatingPoor
	}
}

// ratioScore rewards reaching target (higher is better) and never exceeds 100.
// A non-positive target is always met.
func ratioScore(actual, target float64) float64 {
	if target <= 0 {
		return 100
	}
	return clampScore(math.Min(actual/target, 1) * 100)
}

// inverseScore is for lower-is-better KPIs: 100 at or under target, then
// target/actual.
func inverseScore(actual, target float64) float64 {
	if actual <= target {
		return 100
	}
	return clampScore(target / actual * 100)
}

func clampScore(s float64) float64 {
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func distinctCustomers(invoices []models.Invoice) int {
	seen := make(map[string]struct{}, len(invoices))
	for i := range invoices {
		seen[invoices[i].CustomerName] = struct{}{}
	}
	return len(seen)
}

// groupBy partitions invoices by key, returning groups and keys in first-seen order.
func groupBy(invoices []models.Invoice, key func(*models.Invoice) string) (map[string][]models.Invoice, []string) {
	groups := make(map[string][]models.Invoice)
	var order []string
	for i := range invoices {
		k := key(&invoices[i])
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], invoices[i])
	}
	return groups, order
}
