package analytics

import (
	"fmt"
	"math"
	"testing"
	"time"

	"collections/pkg/models"
)

var now = time.Date(2025, 6, 30, 9, 30, 0, 0, time.UTC)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{"$1,234.50", 1234.5},
		{"SAR 2,000", 2000},
		{" -350.25 ", -350.25},
		{"+75", 75},
		{"1.2.3", 1.2},
		{"abc", 0},
		{"", 0},
		{nil, 0},
		{42, 42},
		{int64(7), 7},
		{12.75, 12.75},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{true, 0},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"serial", 45000.0, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"serial with time fraction", 45000.75, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"integer serial", 1, time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"iso date", "2025-01-15", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"iso datetime", "2025-01-15T10:00:00Z", time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"iso with offset", "2025-01-15T10:00:00+02:00", time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)},
		{"minutes with zone", "2024-03-15T10:30Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"basic offset", "2024-03-15T10:30:00+0300", time.Date(2024, 3, 15, 7, 30, 0, 0, time.UTC)},
		{"basic offset minutes", "2024-03-15T10:30+0300", time.Date(2024, 3, 15, 7, 30, 0, 0, time.UTC)},
		{"space separator", "2024-03-15 10:30", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"space separator with zone", "2024-03-15 10:30+02:00", time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)},
		{"year month", "2024-03", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"year only", "2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"far past", "0001-01-01", time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"time value", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"garbage", "next tuesday", now},
		{"empty", "", now},
		{"nil", nil, now},
		{"nan", math.NaN(), now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDate(tt.in, now); !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeInvoice_Defaults(t *testing.T) {
	mapping := models.FieldMapping{
		models.FieldInvoiceNumber: "Invoice No",
		models.FieldCustomerName:  "Customer",
		models.FieldInvoiceDate:   "Invoice Date",
		models.FieldTotalAmount:   "Amount",
	}
	row := models.RawRow{"Amount": "oops", "Invoice Date": "not a date"}

	inv := NormalizeInvoice(row, mapping, 3, now)

	if inv.ID != "INV-3" || inv.InvoiceNumber != "INV-3" {
		t.Errorf("ids: got %q / %q", inv.ID, inv.InvoiceNumber)
	}
	if inv.CustomerName != models.UnknownCustomer {
		t.Errorf("customer: got %q", inv.CustomerName)
	}
	if inv.CollectorName != models.UnassignedCollector {
		t.Errorf("collector: got %q", inv.CollectorName)
	}
	if inv.CustomerType != models.DefaultCustomerType || inv.Status != models.DefaultStatus {
		t.Errorf("type/status: got %q / %q", inv.CustomerType, inv.Status)
	}
	if inv.TotalAmount != 0 {
		t.Errorf("amount: got %v, want 0", inv.TotalAmount)
	}
	if !inv.InvoiceDate.Equal(now) || !inv.DueDate.Equal(now) {
		t.Errorf("dates should default to now: %v / %v", inv.InvoiceDate, inv.DueDate)
	}
	if inv.PaymentDate != nil || inv.ExpectedDate != nil {
		t.Errorf("unmapped optional dates should be nil")
	}
	if inv.OpeningBalance != nil || inv.CreditNote != nil {
		t.Errorf("unmapped optional amounts should be nil")
	}
}

func TestNormalizeInvoice_MappedRow(t *testing.T) {
	mapping := models.FieldMapping{
		models.FieldInvoiceNumber:   "Inv #",
		models.FieldCustomerName:    "Customer",
		models.FieldInvoiceDate:     "Date",
		models.FieldDueDate:         "Due",
		models.FieldPaymentDate:     "Paid On",
		models.FieldCollectorName:   "Collector",
		models.FieldTotalAmount:     "Total",
		models.FieldAmountCollected: "Collected",
		models.FieldTotalBalance:    "Balance",
		models.FieldOpeningBalance:  "Opening",
	}
	row := models.RawRow{
		"Inv #":       1001.0,
		"Customer":    " Acme Ltd ",
		"Date":        45000.0,
		"Due":         "2023-04-14",
		"Paid On":     "",
		"Collector":   "Sara",
		"Total":       "$1,234.50",
		"Collected":   "1,000",
		"Balance":     234.5,
		"Opening":     "",
		"MTD Overdue": "15",
	}

	inv := NormalizeInvoice(row, mapping, 0, now)

	if inv.InvoiceNumber != "1001" || inv.CustomerName != "Acme Ltd" || inv.CollectorName != "Sara" {
		t.Errorf("text fields: %q %q %q", inv.InvoiceNumber, inv.CustomerName, inv.CollectorName)
	}
	if inv.TotalAmount != 1234.5 || inv.AmountCollected != 1000 || inv.TotalBalance != 234.5 {
		t.Errorf("amounts: %v %v %v", inv.TotalAmount, inv.AmountCollected, inv.TotalBalance)
	}
	if !inv.InvoiceDate.Equal(time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("invoice date: %v", inv.InvoiceDate)
	}
	if !inv.DueDate.Equal(time.Date(2023, 4, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("due date: %v", inv.DueDate)
	}
	if inv.PaymentDate != nil {
		t.Errorf("empty payment cell should stay nil, got %v", inv.PaymentDate)
	}
	if inv.OpeningBalance == nil || *inv.OpeningBalance != 0 {
		t.Errorf("mapped empty opening balance should be 0")
	}
	if inv.MTDOverdue != 15 || !inv.IsOverdue() {
		t.Errorf("mtd overdue fallback column: %v", inv.MTDOverdue)
	}
}

func TestNormalizeRows_AssignsPositionalIDs(t *testing.T) {
	rows := []models.RawRow{{}, {}, {}}
	invoices := NormalizeRows(rows, models.FieldMapping{}, now)
	for i, inv := range invoices {
		if want := fmt.Sprintf("INV-%d", i); inv.ID != want {
			t.Errorf("row %d: got id %q, want %q", i, inv.ID, want)
		}
	}
}
