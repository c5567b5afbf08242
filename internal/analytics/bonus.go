package analytics

import (
	"sort"

	"collections/pkg/models"
	"github.com/shopspring/decimal"
)

// BonusPolicy computes a collector's bonus from salary and performance.
type BonusPolicy interface {
	Bonus(salary float64, perf models.CollectorPerformance) float64
}

// ContinuousBonus pays salary × maxBonusPercent scaled by the collection
// rate, capped at the full percentage.
type ContinuousBonus struct {
	MaxBonusPercent float64
}

// Bonus implements BonusPolicy.
func (c ContinuousBonus) Bonus(salary float64, perf models.CollectorPerformance) float64 {
	ratio := float64(perf.KPI.CollectionRate) / 100
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	return roundMoney(salary * (c.MaxBonusPercent / 100) * ratio)
}

// TieredBonus pays the percentage of the highest tier whose minimum score
// the collector reaches, or nothing.
type TieredBonus struct {
	Rules []models.BonusRule
}

// Bonus implements BonusPolicy.
func (t TieredBonus) Bonus(salary float64, perf models.CollectorPerformance) float64 {
	rules := make([]models.BonusRule, len(t.Rules))
	copy(rules, t.Rules)
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].MinScore > rules[j].MinScore })

	for _, rule := range rules {
		if perf.Score >= rule.MinScore {
			return roundMoney(salary * rule.Percentage / 100)
		}
	}
	return 0
}

// PolicyFor returns the bonus policy selected by params.
func PolicyFor(params models.GlobalParameters) BonusPolicy {
	if params.BonusPolicy == models.BonusTiered {
		return TieredBonus{Rules: params.BonusRules}
	}
	return ContinuousBonus{MaxBonusPercent: params.MaxBonusPercent}
}

// roundMoney rounds to the nearest whole currency unit, halves up.
func roundMoney(amount float64) float64 {
	d := decimal.NewFromFloat(amount)
	return d.Add(decimal.NewFromFloat(0.5)).Floor().InexactFloat64()
}
