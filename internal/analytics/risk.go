package analytics

import (
	"encoding/base64"
	"sort"

	"collections/pkg/models"
)

// CustomerRisks groups invoices by customer and classifies each customer.
// Results are ordered by total exposure descending.
func CustomerRisks(invoices []models.Invoice) []models.CustomerRisk {
	groups, order := groupBy(invoices, func(inv *models.Invoice) string {
		if inv.CustomerName == "" {
			return models.UnknownCustomer
		}
		return inv.CustomerName
	})

	risks := make([]models.CustomerRisk, 0, len(order))
	for _, name := range order {
		group := groups[name]

		var exposure, overdueAmount, delaySum float64
		overdueCount := 0
		for i := range group {
			exposure += group[i].TotalBalance
			if group[i].IsOverdue() {
				overdueAmount += group[i].TotalBalance
				delaySum += group[i].MTDOverdue
				overdueCount++
			}
		}
		avgDelay := 0.0
		if overdueCount > 0 {
			avgDelay = delaySum / float64(overdueCount)
		}

		risk := models.CustomerRisk{
			Name:          name,
			TotalExposure: exposure,
			OverdueAmount: overdueAmount,
			AvgDelay:      avgDelay,
			RiskLevel:     RiskLevelFor(avgDelay, overdueAmount, exposure),
			CollectorName: models.UnassignedCollector,
			CustomerType:  models.DefaultCustomerType,
			Invoices:      group,
		}
		if c := group[0].CollectorName; c != "" {
			risk.CollectorName = c
		}
		if t := group[0].CustomerType; t != "" {
			risk.CustomerType = t
		}
		risks = append(risks, risk)
	}

	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].TotalExposure != risks[j].TotalExposure {
			return risks[i].TotalExposure > risks[j].TotalExposure
		}
		return risks[i].Name < risks[j].Name
	})
	return risks
}

// RiskLevelFor assigns a tier from the average delay and the overdue share of
// exposure. Zero exposure counts as a zero overdue share.
func RiskLevelFor(avgDelay, overdueAmount, exposure float64) models.RiskLevel {
	ratio := 0.0
	if exposure != 0 {
		ratio = overdueAmount / exposure
	}
	switch {
	case avgDelay > 60 || ratio > 0.5:
		return models.RiskHigh
	case avgDelay > 30 || ratio > 0.2:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// CustomerProfiles summarizes each customer's account in exposure order.
func CustomerProfiles(invoices []models.Invoice) []models.CustomerProfile {
	risks := CustomerRisks(invoices)
	profiles := make([]models.CustomerProfile, 0, len(risks))
	for _, r := range risks {
		collected := sumCollected(r.Invoices)
		profiles = append(profiles, models.CustomerProfile{
			ID:                base64.StdEncoding.EncodeToString([]byte(r.Name)),
			Name:              r.Name,
			TotalInvoiced:     r.TotalExposure + collected,
			TotalCollected:    collected,
			TotalOutstanding:  r.TotalExposure,
			OverdueAmount:     r.OverdueAmount,
			AvgDaysDelinquent: r.AvgDelay,
			RiskLevel:         r.RiskLevel,
		})
	}
	return profiles
}
