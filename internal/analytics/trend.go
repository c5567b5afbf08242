package analytics

import (
	"sort"
	"time"

	"collections/pkg/models"
)

// MonthKeyLayout formats bucket keys; lexicographic order is chronological.
const MonthKeyLayout = "2006-01"

// MonthlyTrend buckets invoices by the month of their basis date and computes
// a KPI snapshot per bucket, ascending by month.
func MonthlyTrend(invoices []models.Invoice, params models.GlobalParameters, asOf time.Time) []models.MonthlyStats {
	basis := params.DateBasis
	if basis == "" {
		basis = models.BasisInvoiceDate
	}

	groups, keys := groupBy(invoices, func(inv *models.Invoice) string {
		return inv.DateFor(basis).Format(MonthKeyLayout)
	})
	sort.Strings(keys)

	stats := make([]models.MonthlyStats, 0, len(keys))
	for _, month := range keys {
		kpi := CalculateKPIs(groups[month], params, asOf)
		stats = append(stats, models.MonthlyStats{
			Month:          month,
			Sales:          kpi.TotalAmount,
			Collected:      kpi.TotalCollected,
			Outstanding:    kpi.TotalOutstanding,
			DSO:            kpi.DSO,
			CEI:            kpi.CEI,
			CollectionRate: kpi.CollectionRate,
			InvoiceCount:   kpi.TotalInvoices,
		})
	}
	return stats
}
