package matching

import "tarweej.app/models"

// ServiceFeeRate is the platform's cut on top of paid collaborations.
const ServiceFeeRate = 0.10

// BuildStrategy derives the campaign's strategy summary from a ranked
// suggestion list: paid influencers are taken greedily in rank order while
// their cost fits the budget, then up to BonusHospitalitySlots
// hospitality-only influencers are appended regardless of score when the
// campaign offers hospitality.
func BuildStrategy(budget float64, offerHospitality bool, ranked []models.Suggestion) models.StrategySummary {
	var summary models.StrategySummary
	remaining := budget

	for _, s := range ranked {
		if s.IsHospitality {
			continue
		}
		if s.Price > remaining {
			continue
		}
		summary.PaidCount++
		summary.TotalCost += s.Price
		summary.TotalReach += s.EstimatedViews
		remaining -= s.Price
	}

	if offerHospitality {
		for _, s := range ranked {
			if !s.IsHospitality {
				continue
			}
			if summary.HospitalityCount >= BonusHospitalitySlots {
				break
			}
			summary.HospitalityCount++
			summary.TotalReach += s.EstimatedViews
		}
	}

	summary.ServiceFee = summary.TotalCost * ServiceFeeRate
	summary.RemainingBudget = budget - summary.TotalCost
	return summary
}

// PickReplacement walks an already-ranked candidate list and returns the
// first one whose cost fits the remaining budget. Budget fit filters the
// frozen ranking; it never reorders it. Nil means the pool is exhausted,
// which is a valid terminal outcome, not an error.
func PickReplacement(remainingBudget float64, candidates []models.Suggestion) *models.Suggestion {
	for i := range candidates {
		cost := candidates[i].Price
		if candidates[i].IsHospitality {
			cost = 0
		}
		if cost <= remainingBudget {
			return &candidates[i]
		}
	}
	return nil
}
