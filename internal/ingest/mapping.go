package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"collections/pkg/models"
)

// detectors match column headers to canonical fields. The first column whose
// header matches wins.
var detectors = []struct {
	field   string
	pattern *regexp.Regexp
}{
	{models.FieldInvoiceNumber, regexp.MustCompile(`(?i)invoice.*number|inv.*no`)},
	{models.FieldCustomerName, regexp.MustCompile(`(?i)customer`)},
	{models.FieldPaymentTerms, regexp.MustCompile(`(?i)terms|pt`)},
	{models.FieldStatus, regexp.MustCompile(`(?i)status`)},
	{models.FieldInvoiceDate, regexp.MustCompile(`(?i)invoice.*date`)},
	{models.FieldDueDate, regexp.MustCompile(`(?i)due.*date`)},
	{models.FieldExpectedDate, regexp.MustCompile(`(?i)expected`)},
	{models.FieldCollectorName, regexp.MustCompile(`(?i)collector`)},
	{models.FieldPaymentDate, regexp.MustCompile(`(?i)payment.*date`)},
	{models.FieldCustomerType, regexp.MustCompile(`(?i)type`)},
	{models.FieldTotalAmount, regexp.MustCompile(`(?i)total.*amount|amount`)},
	{models.FieldAmountCollected, regexp.MustCompile(`(?i)collected`)},
	{models.FieldTotalBalance, regexp.MustCompile(`(?i)balance`)},
	{models.FieldBusinessCase, regexp.MustCompile(`(?i)business.*case|case`)},
	{models.FieldCreditNote, regexp.MustCompile(`(?i)credit.*note|cn`)},
	{models.FieldOpeningBalance, regexp.MustCompile(`(?i)opening.*balance`)},
	{models.FieldSalesperson, regexp.MustCompile(`(?i)sales.*person|sales`)},
	{models.FieldMTDOverdue, regexp.MustCompile(`(?i)mtd.*overdue`)},
}

// DetectMapping guesses a column for every canonical field from the header
// names. Fields with no matching header are left unmapped.
func DetectMapping(columns []string) models.FieldMapping {
	mapping := make(models.FieldMapping, len(detectors))
	for _, d := range detectors {
		for _, col := range columns {
			if d.pattern.MatchString(col) {
				mapping[d.field] = col
				break
			}
		}
	}
	return mapping
}

// ParseOverrides parses "field=column" pairs.
func ParseOverrides(pairs []string) (map[string]string, error) {
	const op = "ParseOverrides"

	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		field, column, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(field) == "" {
			return nil, NewIngestError(op, fmt.Errorf("expected field=column, got %q", pair), "")
		}
		overrides[strings.TrimSpace(field)] = strings.TrimSpace(column)
	}
	return overrides, nil
}

// ApplyOverrides sets explicit columns on mapping. An empty column unmaps the
// field. Fields must be canonical and columns must exist in columns.
func ApplyOverrides(mapping models.FieldMapping, overrides map[string]string, columns []string) error {
	const op = "ApplyOverrides"

	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	for field, column := range overrides {
		if !isCanonical(field) {
			return NewIngestError(op, ErrUnknownField, field)
		}
		if column == "" {
			delete(mapping, field)
			continue
		}
		if !known[column] {
			return NewIngestError(op, ErrUnknownColumn, column)
		}
		mapping[field] = column
	}
	return nil
}

func isCanonical(field string) bool {
	for _, f := range models.CanonicalFields {
		if f == field {
			return true
		}
	}
	return false
}
