package models

// KPI is the metric snapshot for one invoice set.
type KPI struct {
	DSO              int     `json:"dso"`
	BestPossibleDSO  int     `json:"bestPossibleDso"`
	CEI              int     `json:"cei"`
	CollectionRate   int     `json:"collectionRate"`
	ADD              int     `json:"add"`
	Days30           int     `json:"days30"`
	TotalInvoices    int     `json:"totalInvoices"`
	TotalAmount      float64 `json:"totalAmount"`
	TotalCollected   float64 `json:"totalCollected"`
	TotalOutstanding float64 `json:"totalOutstanding"`
}

// Rating is the categorical band of a composite score.
type Rating string

const (
	RatingOutstanding Rating = "Outstanding"
	RatingExcellent   Rating = "Excellent"
	RatingGood        Rating = "Good"
	RatingPoor        Rating = "Poor"
)

// SubScores are the per-KPI normalized scores (0-100).
type SubScores struct {
	Collected float64 `json:"collected"`
	DSO       float64 `json:"dso"`
	CEI       float64 `json:"cei"`
	ADD       float64 `json:"add"`
	Days30    float64 `json:"days30"`
}

// CollectorPerformance is the scorecard of one collector. Invoices references
// the collector's invoices and must be treated as read-only.
type CollectorPerformance struct {
	Name           string    `json:"name"`
	Salary         float64   `json:"salary"`
	KPI            KPI       `json:"kpi"`
	SubScores      SubScores `json:"subScores"`
	Score          float64   `json:"score"`
	Rating         Rating    `json:"rating"`
	Bonus          float64   `json:"bonus"`
	TargetAmount   float64   `json:"target"` // Total amount times the collected-ratio target
	InvoiceCount   int       `json:"invoiceCount"`
	CustomersCount int       `json:"customersCount"`
	Invoices       []Invoice `json:"-"`
}

// RiskLevel is a customer risk tier.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// CustomerRisk is the risk classification of one customer.
type CustomerRisk struct {
	Name          string    `json:"name"`
	TotalExposure float64   `json:"totalExposure"`
	OverdueAmount float64   `json:"overdueAmount"`
	AvgDelay      float64   `json:"avgDelay"`
	RiskLevel     RiskLevel `json:"riskLevel"`
	CollectorName string    `json:"collectorName"`
	CustomerType  string    `json:"customerType"`
	Invoices      []Invoice `json:"-"`
}

// CustomerProfile summarizes a customer's account for display.
type CustomerProfile struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	TotalInvoiced     float64   `json:"totalInvoiced"`
	TotalCollected    float64   `json:"totalCollected"`
	TotalOutstanding  float64   `json:"totalOutstanding"`
	OverdueAmount     float64   `json:"overdueAmount"`
	AvgDaysDelinquent float64   `json:"avgDaysDelinquent"`
	RiskLevel         RiskLevel `json:"riskLevel"`
}

// MonthlyStats is one bucket of the monthly trend series.
type MonthlyStats struct {
	Month          string  `json:"month"` // yyyy-MM
	Sales          float64 `json:"sales"`
	Collected      float64 `json:"collected"`
	Outstanding    float64 `json:"outstanding"`
	DSO            int     `json:"dso"`
	CEI            int     `json:"cei"`
	CollectionRate int     `json:"collectionRate"`
	InvoiceCount   int     `json:"invoiceCount"`
}
