package analytics

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"collections/pkg/models"
	"github.com/shopspring/decimal"
)

// excelEpoch is day zero of spreadsheet serial dates.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	nonNumeric    = regexp.MustCompile(`[^0-9.+-]+`)
	numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)
)

// isoLayouts are tried in order for string dates.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01",
	"20060102",
	"2006",
}

// NormalizeInvoice turns one raw row into an Invoice using mapping. It never
// fails: unparseable numbers become 0 and unparseable required dates become now.
func NormalizeInvoice(row models.RawRow, mapping models.FieldMapping, index int, now time.Time) models.Invoice {
	id := fmt.Sprintf("INV-%d", index)

	inv := models.Invoice{
		ID:            id,
		InvoiceNumber: textOr(row, mapping, models.FieldInvoiceNumber, id),
		BusinessCase:  textOr(row, mapping, models.FieldBusinessCase, ""),
		CustomerName:  textOr(row, mapping, models.FieldCustomerName, models.UnknownCustomer),
		CustomerType:  textOr(row, mapping, models.FieldCustomerType, models.DefaultCustomerType),
		Salesperson:   textOr(row, mapping, models.FieldSalesperson, ""),
		CollectorName: textOr(row, mapping, models.FieldCollectorName, models.UnassignedCollector),
		PaymentTerms:  textOr(row, mapping, models.FieldPaymentTerms, ""),
		Status:        textOr(row, mapping, models.FieldStatus, models.DefaultStatus),

		InvoiceDate:  ParseDate(lookup(row, mapping, models.FieldInvoiceDate), now),
		DueDate:      ParseDate(lookup(row, mapping, models.FieldDueDate), now),
		ExpectedDate: optionalDate(row, mapping, models.FieldExpectedDate, now),
		PaymentDate:  optionalDate(row, mapping, models.FieldPaymentDate, now),

		TotalAmount:     ParseAmount(lookup(row, mapping, models.FieldTotalAmount)),
		AmountCollected: ParseAmount(lookup(row, mapping, models.FieldAmountCollected)),
		TotalBalance:    ParseAmount(lookup(row, mapping, models.FieldTotalBalance)),
		OpeningBalance:  optionalAmount(row, mapping, models.FieldOpeningBalance),
		CreditNote:      optionalAmount(row, mapping, models.FieldCreditNote),
	}

	if _, ok := mapping.Column(models.FieldMTDOverdue); ok {
		inv.MTDOverdue = ParseAmount(lookup(row, mapping, models.FieldMTDOverdue))
	} else {
		inv.MTDOverdue = ParseAmount(row[models.MTDOverdueColumn])
	}

	return inv
}

// NormalizeRows normalizes every row, assigning ids by position.
func NormalizeRows(rows []models.RawRow, mapping models.FieldMapping, now time.Time) []models.Invoice {
	invoices := make([]models.Invoice, len(rows))
	for i, row := range rows {
		invoices[i] = NormalizeInvoice(row, mapping, i, now)
	}
	return invoices
}

// ParseAmount parses a tolerant numeric value. Every character that is not a
// digit, sign or decimal point is stripped and the leading number is parsed
// at full precision. Anything unparseable yields 0.
func ParseAmount(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case decimal.Decimal:
		return n.InexactFloat64()
	}

	cleaned := nonNumeric.ReplaceAllString(asString(v), "")
	match := numericPrefix.FindString(cleaned)
	if match == "" {
		return 0
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(match, "+"))
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// ParseDate resolves a raw cell to a date: time values pass through, numbers
// are spreadsheet serial dates, strings are tried as ISO-8601 and then
// yyyy-MM-dd. Anything else yields now.
func ParseDate(v any, now time.Time) time.Time {
	switch d := v.(type) {
	case nil:
		return now
	case time.Time:
		if d.IsZero() {
			return now
		}
		return d
	case *time.Time:
		if d == nil || d.IsZero() {
			return now
		}
		return *d
	case float64, float32, int, int32, int64:
		if f, ok := d.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return now
		}
		serial := ParseAmount(d)
		return excelEpoch.AddDate(0, 0, int(math.Trunc(serial)))
	}

	s := asString(v)
	if s == "" {
		return now
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t
	}
	return now
}

func lookup(row models.RawRow, mapping models.FieldMapping, field string) any {
	col, ok := mapping.Column(field)
	if !ok {
		return nil
	}
	return row[col]
}

func textOr(row models.RawRow, mapping models.FieldMapping, field, fallback string) string {
	if s := asString(lookup(row, mapping, field)); s != "" {
		return s
	}
	return fallback
}

// optionalDate returns nil when the field is unmapped or the cell is empty.
func optionalDate(row models.RawRow, mapping models.FieldMapping, field string, now time.Time) *time.Time {
	v := lookup(row, mapping, field)
	if v == nil || asString(v) == "" {
		return nil
	}
	t := ParseDate(v, now)
	return &t
}

// optionalAmount returns nil only when the field is unmapped.
func optionalAmount(row models.RawRow, mapping models.FieldMapping, field string) *float64 {
	if _, ok := mapping.Column(field); !ok {
		return nil
	}
	n := ParseAmount(lookup(row, mapping, field))
	return &n
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case time.Time:
		return s.Format(time.RFC3339)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
