// Package analytics computes collections KPIs from normalized invoices.
//
// Every function is pure: results depend only on the invoice slice, the
// parameters and the asOf instant passed in. Inputs are never mutated.
//
// Invoice age is always measured from the invoice date, whatever date basis
// is configured. The basis only decides which invoices fall into a period or
// a monthly bucket.
package analytics

import (
	"math"
	"sort"
	"time"

	"collections/pkg/models"
)

// DefaultPeriodDays is the period length used by the ratio-based DSO methods.
const DefaultPeriodDays = 30

// WeightedDSO is Σ(amount × age) / Σ(amount).
func WeightedDSO(invoices []models.Invoice, asOf time.Time) int {
	total := sumAmount(invoices)
	if total == 0 {
		return 0
	}
	var weighted float64
	for i := range invoices {
		weighted += invoices[i].TotalAmount * float64(AgeDays(invoices[i], asOf))
	}
	return nonNegative(roundHalfUp(weighted / total))
}

// SimpleDSO is the mean invoice age.
func SimpleDSO(invoices []models.Invoice, asOf time.Time) int {
	if len(invoices) == 0 {
		return 0
	}
	var ages float64
	for i := range invoices {
		ages += float64(AgeDays(invoices[i], asOf))
	}
	return nonNegative(roundHalfUp(ages / float64(len(invoices))))
}

// TraditionalDSO is (Σ balance / Σ amount) × periodDays.
func TraditionalDSO(invoices []models.Invoice, periodDays int) int {
	total := sumAmount(invoices)
	if total == 0 {
		return 0
	}
	return nonNegative(roundHalfUp(sumBalance(invoices) / total * float64(periodDays)))
}

// CountbackDSO walks invoices newest first, accumulating amounts until the
// total outstanding balance is covered, and returns the age of the invoice
// that covers it. If the balance is never covered the oldest age is returned.
func CountbackDSO(invoices []models.Invoice, asOf time.Time) int {
	outstanding := sumBalance(invoices)
	if outstanding <= 0 {
		return 0
	}

	sorted := make([]models.Invoice, len(invoices))
	copy(sorted, invoices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].InvoiceDate.After(sorted[j].InvoiceDate)
	})

	var accumulated float64
	days := 0
	for i := 0; i < len(sorted); i++ {
		accumulated += sorted[i].TotalAmount
		days = AgeDays(sorted[i], asOf)
		if accumulated >= outstanding {
			break
		}
	}
	if days < 0 {
		return 0
	}
	return days
}

// BestPossibleDSO is (Σ balance of non-overdue invoices / Σ amount) × periodDays.
func BestPossibleDSO(invoices []models.Invoice, periodDays int) int {
	total := sumAmount(invoices)
	if total == 0 {
		return 0
	}
	var current float64
	for i := range invoices {
		if !invoices[i].IsOverdue() {
			current += invoices[i].TotalBalance
		}
	}
	return nonNegative(roundHalfUp(current / total * float64(periodDays)))
}

// DSO dispatches on method. Unknown methods fall back to weighted.
func DSO(invoices []models.Invoice, method models.DSOMethod, periodDays int, asOf time.Time) int {
	switch method {
	case models.DSOSimple:
		return SimpleDSO(invoices, asOf)
	case models.DSOTraditional:
		return TraditionalDSO(invoices, periodDays)
	case models.DSOCountback:
		return CountbackDSO(invoices, asOf)
	case models.DSOBestPossible:
		return BestPossibleDSO(invoices, periodDays)
	default:
		return WeightedDSO(invoices, asOf)
	}
}

const secondsPerDay = 24 * 60 * 60

// AgeDays is the number of whole days from the invoice date to asOf.
func AgeDays(inv models.Invoice, asOf time.Time) int {
	return daysBetween(asOf, inv.InvoiceDate)
}

// daysBetween counts whole days from earlier to later, truncated toward zero.
// It stays exact for dates centuries apart, where time.Sub saturates.
func daysBetween(later, earlier time.Time) int {
	secs := later.Unix() - earlier.Unix()
	nanos := later.Nanosecond() - earlier.Nanosecond()
	switch {
	case secs > 0 && nanos < 0:
		secs--
	case secs < 0 && nanos > 0:
		secs++
	}
	return int(secs / secondsPerDay)
}

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(math.Floor(x + 0.5))
}

// nonNegative clamps DSO results; future-dated invoices carry a negative age.
func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func sumAmount(invoices []models.Invoice) float64 {
	var total float64
	for i := range invoices {
		total += invoices[i].TotalAmount
	}
	return total
}

func sumBalance(invoices []models.Invoice) float64 {
	var total float64
	for i := range invoices {
		total += invoices[i].TotalBalance
	}
	return total
}

func sumCollected(invoices []models.Invoice) float64 {
	var total float64
	for i := range invoices {
		total += invoices[i].AmountCollected
	}
	return total
}
