package analytics

import (
	"time"

	"collections/pkg/models"
)

// CEI computes the collection effectiveness index. Invoices carrying a
// positive opening balance count towards beginning AR, all others towards
// credit sales. A zero denominator yields 100.
func CEI(invoices []models.Invoice) int {
	var beginningAR, creditSales, endingAR, overdue float64
	for i := range invoices {
		inv := &invoices[i]
		endingAR += inv.TotalBalance
		if inv.IsOverdue() {
			overdue += inv.TotalBalance
		}
		if inv.HasOpeningBalance() {
			beginningAR += *inv.OpeningBalance
		} else {
			creditSales += inv.TotalAmount
		}
	}
	endingCurrentAR := endingAR - overdue

	numerator := beginningAR + creditSales - endingAR
	denominator := beginningAR + creditSales - endingCurrentAR
	if denominator == 0 {
		return 100
	}
	return roundHalfUp(numerator / denominator * 100)
}

// CollectionRate is Σ collected / Σ amount as a rounded percent, 0 when
// nothing was invoiced.
func CollectionRate(invoices []models.Invoice) int {
	total := sumAmount(invoices)
	if total == 0 {
		return 0
	}
	return roundHalfUp(sumCollected(invoices) / total * 100)
}

// ADD is the selected DSO minus the best possible DSO, floored at 0.
func ADD(invoices []models.Invoice, method models.DSOMethod, asOf time.Time) int {
	return delinquentDays(DSO(invoices, method, DefaultPeriodDays, asOf), BestPossibleDSO(invoices, DefaultPeriodDays))
}

func delinquentDays(dso, best int) int {
	return nonNegative(dso - best)
}

// Days30Ratio is the percentage of invoiced amount collected no later than
// 30 days after the due date. Only invoices with a positive amount count.
func Days30Ratio(invoices []models.Invoice) int {
	var collected, eligible float64
	for i := range invoices {
		inv := &invoices[i]
		if inv.TotalAmount <= 0 {
			continue
		}
		eligible += inv.TotalAmount
		if inv.PaymentDate != nil && daysBetween(*inv.PaymentDate, inv.DueDate) <= 30 {
			collected += inv.AmountCollected
		}
	}
	if eligible == 0 {
		return 0
	}
	return roundHalfUp(collected / eligible * 100)
}

// CalculateKPIs builds the full KPI snapshot for invoices.
func CalculateKPIs(invoices []models.Invoice, params models.GlobalParameters, asOf time.Time) models.KPI {
	dso := DSO(invoices, params.DSOMethod, DefaultPeriodDays, asOf)
	best := BestPossibleDSO(invoices, DefaultPeriodDays)

	return models.KPI{
		DSO:              dso,
		BestPossibleDSO:  best,
		CEI:              CEI(invoices),
		CollectionRate:   CollectionRate(invoices),
		ADD:              delinquentDays(dso, best),
		Days30:           Days30Ratio(invoices),
		TotalInvoices:    len(invoices),
		TotalAmount:      sumAmount(invoices),
		TotalCollected:   sumCollected(invoices),
		TotalOutstanding: sumBalance(invoices),
	}
}
