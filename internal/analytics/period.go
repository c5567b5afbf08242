package analytics

import (
	"strconv"
	"strings"
	"time"

	"collections/pkg/models"
)

// Period is a reporting window ending at the reference month.
type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodAll     Period = "all"
)

// ParsePeriod maps a flag value to a Period, reporting whether it is known.
func ParsePeriod(s string) (Period, bool) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodMonth, PeriodQuarter, PeriodYear, PeriodAll:
		return p, true
	}
	return "", false
}

// PeriodWindow returns the inclusive window for period: the month containing
// ref plus 0, 2 or 11 preceding months.
func PeriodWindow(period Period, ref time.Time) (time.Time, time.Time) {
	start := startOfMonth(ref)
	switch period {
	case PeriodQuarter:
		start = start.AddDate(0, -2, 0)
	case PeriodYear:
		start = start.AddDate(0, -11, 0)
	}
	return start, endOfMonth(ref)
}

// FilterByPeriod keeps invoices whose basis date falls in the period window.
// PeriodAll returns the input unchanged.
func FilterByPeriod(invoices []models.Invoice, period Period, basis models.DateBasis, ref time.Time) []models.Invoice {
	if period == PeriodAll {
		return invoices
	}
	start, end := PeriodWindow(period, ref)
	return FilterByRange(invoices, basis, start, end)
}

// FilterByRange keeps invoices whose basis date is within [start, end].
func FilterByRange(invoices []models.Invoice, basis models.DateBasis, start, end time.Time) []models.Invoice {
	out := make([]models.Invoice, 0, len(invoices))
	for i := range invoices {
		d := invoices[i].DateFor(basis)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, invoices[i])
	}
	return out
}

// StartMonthIndex returns the 0-based month a fiscal year starts in, given
// an "MM-DD" start. Unknown values start in January.
func StartMonthIndex(fiscalYearStart string) int {
	month, err := strconv.Atoi(strings.SplitN(fiscalYearStart, "-", 2)[0])
	if err != nil || month < 1 || month > 12 {
		return 0
	}
	return month - 1
}

// FiscalYear returns the fiscal year date belongs to. A fiscal year is named
// after the calendar year it starts in.
func FiscalYear(date time.Time, startMonth int) int {
	if startMonth == 0 {
		return date.Year()
	}
	if int(date.Month())-1 < startMonth {
		return date.Year() - 1
	}
	return date.Year()
}

// FiscalQuarter returns the 1-based fiscal quarter of date.
func FiscalQuarter(date time.Time, startMonth int) int {
	shifted := (int(date.Month()) - 1 - startMonth + 12) % 12
	return shifted/3 + 1
}

// FiscalPeriodRange resolves a fiscal period name (year, h1, h2, q1..q4,
// current_month) to an inclusive window. Unknown names resolve to the whole
// fiscal year. current_month uses asOf.
func FiscalPeriodRange(fiscalYear int, period string, startMonth int, asOf time.Time) (time.Time, time.Time) {
	fyStart := time.Date(fiscalYear, time.Month(startMonth+1), 1, 0, 0, 0, 0, time.UTC)

	switch period := strings.ToLower(period); {
	case period == "h1":
		return fyStart, endOfMonth(fyStart.AddDate(0, 5, 0))
	case period == "h2":
		return fyStart.AddDate(0, 6, 0), endOfMonth(fyStart.AddDate(0, 11, 0))
	case len(period) == 2 && period[0] == 'q' && period[1] >= '1' && period[1] <= '4':
		q := int(period[1] - '1')
		qStart := fyStart.AddDate(0, q*3, 0)
		return qStart, endOfMonth(qStart.AddDate(0, 2, 0))
	case period == "current_month":
		return startOfMonth(asOf), endOfMonth(asOf)
	default:
		return fyStart, endOfMonth(fyStart.AddDate(0, 11, 0))
	}
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
