package analytics

import (
	"testing"
	"time"

	"collections/pkg/models"
)

func datedInvoice(invoiceDate, dueDate time.Time) models.Invoice {
	return models.Invoice{InvoiceDate: invoiceDate, DueDate: dueDate, TotalAmount: 100}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilterByPeriod(t *testing.T) {
	ref := day(2025, time.June, 15)
	invoices := []models.Invoice{
		datedInvoice(day(2025, time.June, 1), day(2025, time.July, 1)),
		datedInvoice(time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC), day(2025, time.July, 30)),
		datedInvoice(day(2025, time.May, 31), day(2025, time.June, 30)),
		datedInvoice(day(2025, time.April, 1), day(2025, time.May, 1)),
		datedInvoice(day(2024, time.July, 1), day(2024, time.August, 1)),
		datedInvoice(day(2024, time.June, 30), day(2024, time.July, 30)),
		datedInvoice(day(2025, time.July, 1), day(2025, time.July, 31)),
	}

	tests := []struct {
		period Period
		basis  models.DateBasis
		want   int
	}{
		{PeriodMonth, models.BasisInvoiceDate, 2},
		{PeriodQuarter, models.BasisInvoiceDate, 4},
		{PeriodYear, models.BasisInvoiceDate, 5},
		{PeriodAll, models.BasisInvoiceDate, 7},
		{PeriodMonth, models.BasisDueDate, 1},
	}
	for _, tt := range tests {
		got := FilterByPeriod(invoices, tt.period, tt.basis, ref)
		if len(got) != tt.want {
			t.Errorf("%s/%s: got %d invoices, want %d", tt.period, tt.basis, len(got), tt.want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	if p, ok := ParsePeriod(" Quarter "); !ok || p != PeriodQuarter {
		t.Fatalf("got %q %v", p, ok)
	}
	if _, ok := ParsePeriod("decade"); ok {
		t.Fatal("expected unknown period to be rejected")
	}
}

func TestStartMonthIndex(t *testing.T) {
	tests := map[string]int{"01-01": 0, "04-01": 3, "06-01": 5, "garbage": 0, "": 0}
	for in, want := range tests {
		if got := StartMonthIndex(in); got != want {
			t.Errorf("StartMonthIndex(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestFiscalYearAndQuarter(t *testing.T) {
	april := 3
	if got := FiscalYear(day(2025, time.March, 15), april); got != 2024 {
		t.Errorf("fiscal year: got %d, want 2024", got)
	}
	if got := FiscalYear(day(2025, time.April, 1), april); got != 2025 {
		t.Errorf("fiscal year: got %d, want 2025", got)
	}
	if got := FiscalYear(day(2025, time.March, 15), 0); got != 2025 {
		t.Errorf("calendar fiscal year: got %d, want 2025", got)
	}
	if got := FiscalQuarter(day(2025, time.April, 10), april); got != 1 {
		t.Errorf("quarter: got %d, want 1", got)
	}
	if got := FiscalQuarter(day(2025, time.March, 10), april); got != 4 {
		t.Errorf("quarter: got %d, want 4", got)
	}
}

func TestFiscalPeriodRange(t *testing.T) {
	april := 3
	tests := []struct {
		period    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"year", day(2024, time.April, 1), day(2025, time.April, 1)},
		{"h1", day(2024, time.April, 1), day(2024, time.October, 1)},
		{"h2", day(2024, time.October, 1), day(2025, time.April, 1)},
		{"q2", day(2024, time.July, 1), day(2024, time.October, 1)},
		{"q4", day(2025, time.January, 1), day(2025, time.April, 1)},
		{"unknown", day(2024, time.April, 1), day(2025, time.April, 1)},
		{"current_month", day(2025, time.June, 1), day(2025, time.July, 1)},
	}
	for _, tt := range tests {
		start, end := FiscalPeriodRange(2024, tt.period, april, asOf)
		if !start.Equal(tt.wantStart) {
			t.Errorf("%s: start %v, want %v", tt.period, start, tt.wantStart)
		}
		// Windows end one nanosecond before the next period starts.
		if !end.Add(time.Nanosecond).Equal(tt.wantEnd) {
			t.Errorf("%s: end %v, want just before %v", tt.period, end, tt.wantEnd)
		}
	}
}

func TestFilterByRange_Inclusive(t *testing.T) {
	start, end := day(2025, time.January, 1), day(2025, time.January, 31)
	invoices := []models.Invoice{
		datedInvoice(start, start),
		datedInvoice(end, end),
		datedInvoice(end.Add(time.Second), end),
	}
	if got := FilterByRange(invoices, models.BasisInvoiceDate, start, end); len(got) != 2 {
		t.Fatalf("got %d, want 2", len(got))
	}
}
