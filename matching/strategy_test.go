package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarweej.app/models"
)

func paidSuggestion(id uint, price float64, views int64) models.Suggestion {
	s := models.Suggestion{InfluencerID: id, Price: price, EstimatedViews: views}
	s.ID = id
	return s
}

func hospitalitySuggestion(id uint, views int64) models.Suggestion {
	s := models.Suggestion{InfluencerID: id, IsHospitality: true, EstimatedViews: views}
	s.ID = id
	return s
}

func TestBuildStrategyGreedyWithinBudget(t *testing.T) {
	ranked := []models.Suggestion{
		paidSuggestion(1, 2000, 100000),
		paidSuggestion(2, 1500, 80000),
		paidSuggestion(3, 1200, 50000),
	}

	summary := BuildStrategy(3600, false, ranked)

	// 2000 + 1500 fit; 1200 exceeds the 100 left over.
	assert.Equal(t, 2, summary.PaidCount)
	assert.Equal(t, 0, summary.HospitalityCount)
	assert.Equal(t, 3500.0, summary.TotalCost)
	assert.Equal(t, 350.0, summary.ServiceFee)
	assert.Equal(t, int64(180000), summary.TotalReach)
	assert.Equal(t, 100.0, summary.RemainingBudget)
}

func TestBuildStrategySkipsUnaffordableButKeepsWalking(t *testing.T) {
	ranked := []models.Suggestion{
		paidSuggestion(1, 5000, 100000),
		paidSuggestion(2, 800, 30000),
	}

	summary := BuildStrategy(1000, false, ranked)

	assert.Equal(t, 1, summary.PaidCount)
	assert.Equal(t, 800.0, summary.TotalCost)
	assert.Equal(t, 200.0, summary.RemainingBudget)
}

func TestBuildStrategyHospitalityBonus(t *testing.T) {
	ranked := []models.Suggestion{
		paidSuggestion(1, 1000, 50000),
		hospitalitySuggestion(2, 20000),
		hospitalitySuggestion(3, 15000),
		hospitalitySuggestion(4, 10000),
	}

	summary := BuildStrategy(2000, true, ranked)

	assert.Equal(t, 1, summary.PaidCount)
	assert.Equal(t, BonusHospitalitySlots, summary.HospitalityCount)
	assert.Equal(t, 1000.0, summary.TotalCost, "hospitality slots cost nothing")
	assert.Equal(t, int64(50000+20000+15000), summary.TotalReach)
}

func TestBuildStrategyHospitalityIgnoredWhenNotOffered(t *testing.T) {
	ranked := []models.Suggestion{
		paidSuggestion(1, 1000, 50000),
		hospitalitySuggestion(2, 20000),
	}

	summary := BuildStrategy(2000, false, ranked)
	assert.Equal(t, 0, summary.HospitalityCount)
	assert.Equal(t, int64(50000), summary.TotalReach)
}

func TestPickReplacementSkipsOverBudget(t *testing.T) {
	candidates := []models.Suggestion{
		paidSuggestion(1, 1200, 100000),
		paidSuggestion(2, 800, 50000),
	}

	// 1000 SAR left: the top-ranked 1200 SAR candidate is skipped, the
	// 800 SAR one picked. Ranking order is respected, never rebuilt.
	pick := PickReplacement(1000, candidates)
	require.NotNil(t, pick)
	assert.Equal(t, uint(2), pick.InfluencerID)
}

func TestPickReplacementHospitalityAlwaysAffordable(t *testing.T) {
	candidates := []models.Suggestion{
		paidSuggestion(1, 1200, 100000),
		hospitalitySuggestion(2, 20000),
	}

	pick := PickReplacement(0, candidates)
	require.NotNil(t, pick)
	assert.Equal(t, uint(2), pick.InfluencerID)
}

func TestPickReplacementPoolExhausted(t *testing.T) {
	candidates := []models.Suggestion{
		paidSuggestion(1, 1200, 100000),
		paidSuggestion(2, 900, 50000),
	}

	assert.Nil(t, PickReplacement(500, candidates))
	assert.Nil(t, PickReplacement(1000, nil))
}
