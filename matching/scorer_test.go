package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarweej.app/models"
)

func TestContentTypeWeight(t *testing.T) {
	assert.Equal(t, WeightFoodReviews, ContentTypeWeight(models.CategoryFoodReviews))
	assert.Equal(t, WeightLifestyle, ContentTypeWeight(models.CategoryLifestyle))
	assert.Equal(t, WeightTravel, ContentTypeWeight(models.CategoryTravel))
	assert.Equal(t, 0, ContentTypeWeight(models.CategoryFashion))
	assert.Equal(t, 0, ContentTypeWeight(models.CategoryGeneral))
}

func TestReachScore(t *testing.T) {
	assert.Equal(t, 0, ReachScore(0))
	assert.Equal(t, 0, ReachScore(-100))
	assert.Equal(t, MaxReachScore/2, ReachScore(ReachSaturationViews/2))
	assert.Equal(t, MaxReachScore, ReachScore(ReachSaturationViews))
	assert.Equal(t, MaxReachScore, ReachScore(ReachSaturationViews*10), "reach saturates, never exceeds the cap")
}

func TestScoreCandidateCapsAtMaxScore(t *testing.T) {
	c := Candidate{Category: models.CategoryFoodReviews, EstimatedViews: ReachSaturationViews}
	assert.Equal(t, MaxScore, ScoreCandidate(c))

	c = Candidate{Category: models.CategoryLifestyle, EstimatedViews: 375_000}
	assert.Equal(t, WeightLifestyle+MaxReachScore/2, ScoreCandidate(c))
}

func TestWeightedScorerOrdering(t *testing.T) {
	scorer := NewWeightedScorer()
	campaign := CampaignContext{CampaignID: 1, City: "Riyadh", Budget: 5000}
	candidates := []Candidate{
		{InfluencerID: 1, Category: models.CategoryTravel, EstimatedViews: 5000, Price: 900},
		{InfluencerID: 2, Category: models.CategoryFoodReviews, EstimatedViews: 750_000, Price: 2000},
		{InfluencerID: 3, Category: models.CategoryLifestyle, EstimatedViews: 375_000, Price: 1200},
	}

	results, err := scorer.Score(context.Background(), campaign, candidates)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, uint(2), results[0].InfluencerID)
	assert.Equal(t, MaxScore, results[0].Score)
	assert.Equal(t, uint(3), results[1].InfluencerID)
	assert.Equal(t, uint(1), results[2].InfluencerID)
}

func TestWeightedScorerTieBreaksOnPrice(t *testing.T) {
	scorer := NewWeightedScorer()
	candidates := []Candidate{
		{InfluencerID: 10, Category: models.CategoryLifestyle, EstimatedViews: 30000, Price: 1500},
		{InfluencerID: 11, Category: models.CategoryLifestyle, EstimatedViews: 30000, Price: 800},
	}

	results, err := scorer.Score(context.Background(), CampaignContext{}, candidates)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, uint(11), results[0].InfluencerID, "cheaper candidate wins the tie")
}

func TestWeightedScorerDeterministic(t *testing.T) {
	scorer := NewWeightedScorer()
	candidates := []Candidate{
		{InfluencerID: 1, Category: models.CategoryFoodReviews, EstimatedViews: 30000, Price: 500},
		{InfluencerID: 2, Category: models.CategoryComedy, EstimatedViews: 75000, Price: 700},
		{InfluencerID: 3, Category: models.CategoryTravel, EstimatedViews: 300000, Price: 600},
	}

	first, err := scorer.Score(context.Background(), CampaignContext{}, candidates)
	require.NoError(t, err)
	second, err := scorer.Score(context.Background(), CampaignContext{}, candidates)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
