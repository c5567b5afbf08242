package settings

import (
	"errors"
	"fmt"
	"math"

	"collections/pkg/models"
)

// weightTolerance absorbs float noise when checking that weights sum to 100.
const weightTolerance = 0.01

// Validate checks a parameter set. All problems are reported together,
// wrapped in ErrInvalidParameters.
func Validate(p models.GlobalParameters) error {
	var errs []error
	add := func(field string, value interface{}, msg string) {
		errs = append(errs, NewValidationError(field, value, msg))
	}

	if !knownMethod(p.DSOMethod) {
		add("dsoMethod", p.DSOMethod, "unknown DSO method")
	}
	if p.DateBasis != models.BasisInvoiceDate && p.DateBasis != models.BasisDueDate {
		add("dateBasis", p.DateBasis, "must be invoiceDate or dueDate")
	}
	switch p.FiscalYearStart {
	case models.FiscalStartJanuary, models.FiscalStartApril, models.FiscalStartJune:
	default:
		add("fiscalYearStart", p.FiscalYearStart, "must be 01-01, 04-01 or 06-01")
	}

	targets := []struct {
		name string
		kpi  models.KPITarget
	}{
		{"collectedTarget", p.CollectedTarget},
		{"dso", p.DSO},
		{"cei", p.CEI},
		{"add", p.ADD},
		{"days30", p.Days30},
	}
	for _, t := range targets {
		if t.kpi.Target < 0 {
			add(t.name+".target", t.kpi.Target, "must not be negative")
		}
		if t.kpi.Weight < 0 || t.kpi.Weight > 100 {
			add(t.name+".weight", t.kpi.Weight, "must be between 0 and 100")
		}
	}
	if total := p.TotalWeight(); math.Abs(total-100) > weightTolerance {
		add("weights", total, "must sum to 100")
	}

	if p.MaxBonusPercent < 0 || p.MaxBonusPercent > 100 {
		add("maxBonusPercent", p.MaxBonusPercent, "must be between 0 and 100")
	}
	if p.BonusPolicy != models.BonusContinuous && p.BonusPolicy != models.BonusTiered {
		add("bonusPolicy", p.BonusPolicy, "must be continuous or tiered")
	}
	for i, rule := range p.BonusRules {
		field := fmt.Sprintf("bonusRules[%d]", i)
		if rule.MinScore < 0 || rule.MinScore > 100 {
			add(field+".minScore", rule.MinScore, "must be between 0 and 100")
		}
		if rule.Percentage < 0 || rule.Percentage > 100 {
			add(field+".percentage", rule.Percentage, "must be between 0 and 100")
		}
	}
	if p.BonusPolicy == models.BonusTiered && len(p.BonusRules) == 0 {
		add("bonusRules", len(p.BonusRules), "tiered policy needs at least one rule")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidParameters, errors.Join(errs...))
}

// ValidateSalary rejects negative or non-finite salaries.
func ValidateSalary(name string, amount float64) error {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, NewValidationError("salary", amount, "must be a non-negative amount for "+name))
	}
	return nil
}

func knownMethod(m models.DSOMethod) bool {
	for _, known := range models.DSOMethods {
		if m == known {
			return true
		}
	}
	return false
}
