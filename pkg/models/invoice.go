package models

import "time"

// Default values applied when a raw row does not supply a text field.
const (
	UnknownCustomer     = "Unknown"
	UnassignedCollector = "Unassigned"
	DefaultCustomerType = "Commercial"
	DefaultStatus       = "Open"
)

// Invoice is one normalized accounts-receivable invoice.
type Invoice struct {
	// Core identifiers
	ID            string `json:"id"`            // Assigned at normalization time ("INV-<row>")
	InvoiceNumber string `json:"invoiceNumber"` // Number as printed on the invoice
	BusinessCase  string `json:"businessCase,omitempty"`

	// Parties
	CustomerName  string `json:"customerName"`
	CustomerType  string `json:"customerType"`
	Salesperson   string `json:"salesperson,omitempty"`
	CollectorName string `json:"collectorName"` // Owning agent, "Unassigned" if absent

	// Dates
	InvoiceDate  time.Time  `json:"invoiceDate"`
	DueDate      time.Time  `json:"dueDate"`
	ExpectedDate *time.Time `json:"expectedDate,omitempty"` // Expected payment date
	PaymentDate  *time.Time `json:"paymentDate,omitempty"`  // Actual payment date (nil if unpaid)
	PaymentTerms string     `json:"paymentTerms,omitempty"`

	// Amounts
	TotalAmount     float64  `json:"totalAmount"`     // Invoice face value
	AmountCollected float64  `json:"amountCollected"` // Collected so far
	TotalBalance    float64  `json:"totalBalance"`    // Outstanding
	OpeningBalance  *float64 `json:"openingBalance,omitempty"`
	CreditNote      *float64 `json:"creditNote,omitempty"`

	// Status
	Status     string  `json:"status"`
	MTDOverdue float64 `json:"mtdOverdue"` // Month-to-date overdue indicator
}

// IsOverdue reports whether the invoice is currently past terms.
func (inv *Invoice) IsOverdue() bool {
	return inv.MTDOverdue > 0
}

// HasOpeningBalance reports whether the invoice was carried over from a prior period.
func (inv *Invoice) HasOpeningBalance() bool {
	return inv.OpeningBalance != nil && *inv.OpeningBalance > 0
}

// DateFor returns the invoice date or due date depending on basis.
func (inv *Invoice) DateFor(basis DateBasis) time.Time {
	if basis == BasisDueDate {
		return inv.DueDate
	}
	return inv.InvoiceDate
}

// RawRow is one spreadsheet row keyed by column header.
type RawRow map[string]any

// Canonical field names used in a FieldMapping.
const (
	FieldInvoiceNumber   = "invoiceNumber"
	FieldCustomerName    = "customerName"
	FieldPaymentTerms    = "paymentTerms"
	FieldStatus          = "status"
	FieldInvoiceDate     = "invoiceDate"
	FieldDueDate         = "dueDate"
	FieldExpectedDate    = "expectedDate"
	FieldBusinessCase    = "businessCase"
	FieldCollectorName   = "collectorName"
	FieldPaymentDate     = "paymentDate"
	FieldCustomerType    = "customerType"
	FieldTotalAmount     = "totalAmount"
	FieldAmountCollected = "amountCollected"
	FieldTotalBalance    = "totalBalance"
	FieldCreditNote      = "creditNote"
	FieldOpeningBalance  = "openingBalance"
	FieldSalesperson     = "salesperson"
	FieldMTDOverdue      = "mtdOverdue"
)

// MTDOverdueColumn is read when mtdOverdue is not mapped explicitly.
const MTDOverdueColumn = "MTD Overdue"

// CanonicalFields lists every mappable field in display order.
var CanonicalFields = []string{
	FieldInvoiceNumber,
	FieldCustomerName,
	FieldPaymentTerms,
	FieldStatus,
	FieldInvoiceDate,
	FieldDueDate,
	FieldExpectedDate,
	FieldBusinessCase,
	FieldCollectorName,
	FieldPaymentDate,
	FieldCustomerType,
	FieldTotalAmount,
	FieldAmountCollected,
	FieldTotalBalance,
	FieldCreditNote,
	FieldOpeningBalance,
	FieldSalesperson,
	FieldMTDOverdue,
}

// RequiredFields must be mapped before a dataset is useful.
var RequiredFields = []string{
	FieldInvoiceNumber,
	FieldCustomerName,
	FieldInvoiceDate,
	FieldTotalAmount,
}

// FieldMapping maps a canonical field name to the raw column supplying it.
// An empty or missing entry means the field is unmapped.
type FieldMapping map[string]string

// Column returns the raw column for field and whether it is mapped.
func (m FieldMapping) Column(field string) (string, bool) {
	col, ok := m[field]
	return col, ok && col != ""
}

// Missing returns the required fields that have no column.
func (m FieldMapping) Missing() []string {
	var missing []string
	for _, field := range RequiredFields {
		if _, ok := m.Column(field); !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// Dataset is the invoice set imported for the current session.
type Dataset struct {
	ID         string       `json:"id"`
	FileName   string       `json:"fileName"`
	Columns    []string     `json:"columns"`
	Mapping    FieldMapping `json:"mapping"`
	Invoices   []Invoice    `json:"invoices"`
	ImportedAt time.Time    `json:"importedAt"`
}
