package analytics

import (
	"testing"
	"time"

	"collections/pkg/models"
)

var asOf = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

// daysAgo returns asOf minus n days.
func daysAgo(n int) time.Time {
	return asOf.AddDate(0, 0, -n)
}

func invoice(amount, balance, collected float64, age int) models.Invoice {
	return models.Invoice{
		InvoiceNumber:   "N",
		CustomerName:    "C",
		CollectorName:   "A",
		InvoiceDate:     daysAgo(age),
		DueDate:         daysAgo(age).AddDate(0, 0, 30),
		TotalAmount:     amount,
		TotalBalance:    balance,
		AmountCollected: collected,
	}
}

func TestDSO_EmptySetIsZero(t *testing.T) {
	for _, method := range append(models.DSOMethods, "unknown") {
		if got := DSO(nil, method, DefaultPeriodDays, asOf); got != 0 {
			t.Errorf("%s: got %d, want 0", method, got)
		}
	}
}

func TestDSO_NeverNegative(t *testing.T) {
	invoices := []models.Invoice{
		invoice(100, -50, 150, -20), // future-dated credit
		invoice(-300, 0, 0, 5),
	}
	for _, method := range models.DSOMethods {
		if got := DSO(invoices, method, DefaultPeriodDays, asOf); got < 0 {
			t.Errorf("%s: got %d, want >= 0", method, got)
		}
	}
}

func TestWeightedDSO(t *testing.T) {
	single := []models.Invoice{invoice(1000, 0, 1000, 100)}
	if got := WeightedDSO(single, asOf); got != 100 {
		t.Fatalf("got %d, want 100", got)
	}

	mixed := []models.Invoice{invoice(3000, 0, 0, 10), invoice(1000, 0, 0, 50)}
	// (3000*10 + 1000*50) / 4000 = 20
	if got := WeightedDSO(mixed, asOf); got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

func TestSimpleDSO_RoundsHalfUp(t *testing.T) {
	invoices := []models.Invoice{invoice(1, 0, 0, 10), invoice(1, 0, 0, 21)}
	if got := SimpleDSO(invoices, asOf); got != 16 {
		t.Fatalf("got %d, want 16", got)
	}
}

func TestTraditionalDSO(t *testing.T) {
	invoices := []models.Invoice{invoice(1000, 500, 500, 10)}
	if got := TraditionalDSO(invoices, 30); got != 15 {
		t.Fatalf("got %d, want 15", got)
	}
	if got := TraditionalDSO([]models.Invoice{invoice(0, 500, 0, 10)}, 30); got != 0 {
		t.Fatalf("zero sales: got %d, want 0", got)
	}
}

func TestCountbackDSO(t *testing.T) {
	// Deliberately out of order; countback sorts newest first.
	invoices := []models.Invoice{
		invoice(100, 0, 100, 20),
		invoice(100, 100, 0, 10),
		invoice(100, 100, 0, 5),
		invoice(100, 100, 0, 15),
	}
	if got := CountbackDSO(invoices, asOf); got != 15 {
		t.Fatalf("got %d, want 15", got)
	}
}

func TestCountbackDSO_NeverCovered(t *testing.T) {
	invoices := []models.Invoice{
		invoice(10, 1000, 0, 5),
		invoice(10, 0, 0, 20),
	}
	if got := CountbackDSO(invoices, asOf); got != 20 {
		t.Fatalf("got %d, want age of last invoice 20", got)
	}
}

func TestCountbackDSO_NoOutstanding(t *testing.T) {
	invoices := []models.Invoice{invoice(100, 0, 100, 40)}
	if got := CountbackDSO(invoices, asOf); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestBestPossibleDSO_IgnoresOverdue(t *testing.T) {
	overdue := invoice(1000, 500, 500, 60)
	overdue.MTDOverdue = 12
	current := invoice(1000, 500, 500, 10)

	// 500 / 2000 * 30 = 7.5 -> 8
	if got := BestPossibleDSO([]models.Invoice{overdue, current}, 30); got != 8 {
		t.Fatalf("got %d, want 8", got)
	}
}

func TestDSO_UnknownMethodFallsBackToWeighted(t *testing.T) {
	invoices := []models.Invoice{invoice(3000, 0, 0, 10), invoice(1000, 0, 0, 50)}
	want := WeightedDSO(invoices, asOf)
	if got := DSO(invoices, "median", DefaultPeriodDays, asOf); got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestAgeIgnoresDateBasis(t *testing.T) {
	// Age is measured from the invoice date even when due date is the basis.
	inv := invoice(1000, 1000, 0, 90)
	inv.DueDate = daysAgo(10)

	byInvoice := models.DefaultParameters()
	byDue := models.DefaultParameters()
	byDue.DateBasis = models.BasisDueDate

	a := CalculateKPIs([]models.Invoice{inv}, byInvoice, asOf)
	b := CalculateKPIs([]models.Invoice{inv}, byDue, asOf)
	if a.DSO != 90 || b.DSO != 90 {
		t.Fatalf("got dso %d/%d, want 90 for both bases", a.DSO, b.DSO)
	}
}

func TestAgeDays(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"same day", asOf.Add(-time.Hour), 0},
		{"one day short", asOf.Add(-24*time.Hour + time.Nanosecond), 0},
		{"one day", asOf.Add(-24 * time.Hour), 1},
		{"future", asOf.AddDate(0, 0, 3), -3},
		{"year one", time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), 739431},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeDays(models.Invoice{InvoiceDate: tt.date}, asOf); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeightedDSO_AncientInvoice(t *testing.T) {
	inv := invoice(1000, 1000, 0, 0)
	inv.InvoiceDate = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := WeightedDSO([]models.Invoice{inv}, asOf); got != 739431 {
		t.Fatalf("got %d, want 739431", got)
	}
}
