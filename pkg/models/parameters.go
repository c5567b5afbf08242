package models

import (
	"encoding/json"
	"fmt"
)

// DSOMethod selects the days-sales-outstanding algorithm.
type DSOMethod string

const (
	DSOWeighted     DSOMethod = "weighted"
	DSOSimple       DSOMethod = "simple"
	DSOTraditional  DSOMethod = "traditional"
	DSOCountback    DSOMethod = "countback"
	DSOBestPossible DSOMethod = "bestPossible"
)

// DSOMethods lists the supported methods.
var DSOMethods = []DSOMethod{DSOWeighted, DSOSimple, DSOTraditional, DSOCountback, DSOBestPossible}

// DateBasis selects which invoice date governs filtering and bucketing.
type DateBasis string

const (
	BasisInvoiceDate DateBasis = "invoiceDate"
	BasisDueDate     DateBasis = "dueDate"
)

// BonusPolicy selects how collector bonuses are computed.
type BonusPolicy string

const (
	BonusContinuous BonusPolicy = "continuous"
	BonusTiered     BonusPolicy = "tiered"
)

// Supported fiscal year starts ("MM-DD").
const (
	FiscalStartJanuary = "01-01"
	FiscalStartApril   = "04-01"
	FiscalStartJune    = "06-01"
)

// KPITarget is a target value and a percentage weight for one scored KPI.
type KPITarget struct {
	Target float64 `json:"target" jsonschema:"minimum=0"`
	Weight float64 `json:"weight" jsonschema:"minimum=0,maximum=100"`
}

// BonusRule is one tier of the tiered bonus policy.
type BonusRule struct {
	Name       string  `json:"name"`
	MinScore   float64 `json:"minScore" jsonschema:"minimum=0,maximum=100"`
	Percentage float64 `json:"percentage" jsonschema:"minimum=0,maximum=100"`
}

// GlobalParameters drives every analytics computation. Weights are
// percentages that should sum to 100 across the five scored KPIs.
type GlobalParameters struct {
	DSOMethod       DSOMethod `json:"dsoMethod" jsonschema:"enum=weighted,enum=simple,enum=traditional,enum=countback,enum=bestPossible"`
	DateBasis       DateBasis `json:"dateBasis" jsonschema:"enum=invoiceDate,enum=dueDate"`
	FiscalYearStart string    `json:"fiscalYearStart" jsonschema:"enum=01-01,enum=04-01,enum=06-01"`

	CollectedTarget KPITarget `json:"collectedTarget"` // collection rate, percent
	DSO             KPITarget `json:"dso"`             // days
	CEI             KPITarget `json:"cei"`             // percent
	ADD             KPITarget `json:"add"`             // days
	Days30          KPITarget `json:"days30"`          // percent

	MaxBonusPercent float64     `json:"maxBonusPercent" jsonschema:"minimum=0,maximum=100"`
	BonusPolicy     BonusPolicy `json:"bonusPolicy" jsonschema:"enum=continuous,enum=tiered"`
	BonusRules      []BonusRule `json:"bonusRules"`
}

// DefaultParameters returns the built-in parameter set.
func DefaultParameters() GlobalParameters {
	return GlobalParameters{
		DSOMethod:       DSOWeighted,
		DateBasis:       BasisInvoiceDate,
		FiscalYearStart: FiscalStartJanuary,
		CollectedTarget: KPITarget{Target: 85, Weight: 30},
		DSO:             KPITarget{Target: 45, Weight: 20},
		CEI:             KPITarget{Target: 80, Weight: 20},
		ADD:             KPITarget{Target: 10, Weight: 15},
		Days30:          KPITarget{Target: 70, Weight: 15},
		MaxBonusPercent: 15,
		BonusPolicy:     BonusContinuous,
		BonusRules: []BonusRule{
			{Name: "Standard Bonus", MinScore: 35, Percentage: 2.5},
			{Name: "High Performance", MinScore: 40, Percentage: 5.0},
			{Name: "Elite Bonus", MinScore: 45, Percentage: 7.5},
		},
	}
}

// MergeParameters overlays stored JSON on top of the defaults so that fields
// added after the parameters were persisted keep their default values.
func MergeParameters(stored []byte) (GlobalParameters, error) {
	params := DefaultParameters()
	if len(stored) == 0 {
		return params, nil
	}
	if err := json.Unmarshal(stored, &params); err != nil {
		return DefaultParameters(), fmt.Errorf("decode stored parameters: %w", err)
	}
	return params, nil
}

// TotalWeight returns the sum of the five KPI weights.
func (p GlobalParameters) TotalWeight() float64 {
	return p.CollectedTarget.Weight + p.DSO.Weight + p.CEI.Weight + p.ADD.Weight + p.Days30.Weight
}

// SalaryTable holds per-collector salaries used for bonus calculation.
type SalaryTable struct {
	Default    float64            `json:"default"`
	Collectors map[string]float64 `json:"collectors,omitempty"`
}

// DefaultSalary is used when no salary is configured at all.
const DefaultSalary = 10000

// For returns the salary configured for collector, or the table default.
func (s SalaryTable) For(collector string) float64 {
	if salary, ok := s.Collectors[collector]; ok {
		return salary
	}
	return s.Default
}

// With returns a copy of the table with collector's salary set.
func (s SalaryTable) With(collector string, salary float64) SalaryTable {
	out := SalaryTable{Default: s.Default, Collectors: make(map[string]float64, len(s.Collectors)+1)}
	for name, v := range s.Collectors {
		out.Collectors[name] = v
	}
	out.Collectors[collector] = salary
	return out
}
