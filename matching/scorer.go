// Package matching ranks influencer candidates for a campaign. The default
// implementation is a deterministic weighted formula; a remote scoring
// service can be plugged in behind the same interface.
package matching

import (
	"context"
	"fmt"
	"sort"

	"tarweej.app/models"
)

// Scoring weights. Content-type points and reach points are additive and
// cap at 100 total.
const (
	WeightFoodReviews = 40
	WeightLifestyle   = 15
	WeightTravel      = 5

	// MaxReachScore caps the reach axis. Reach is scaled linearly from 0
	// views up to ReachSaturationViews.
	MaxReachScore        = 60
	ReachSaturationViews = 750_000

	// BonusHospitalitySlots is how many hospitality-only influencers may
	// be appended to a paid selection regardless of score.
	BonusHospitalitySlots = 2

	MaxScore = 100
)

// contentTypeWeights gives each niche its score contribution. Categories
// not listed contribute 0 on this axis.
var contentTypeWeights = map[models.InfluencerCategory]int{
	models.CategoryFoodReviews: WeightFoodReviews,
	models.CategoryLifestyle:   WeightLifestyle,
	models.CategoryTravel:      WeightTravel,
}

// Candidate is the scorer's view of one influencer: the snapshot fields
// that feed the formula, nothing more.
type Candidate struct {
	InfluencerID   uint                      `json:"influencer_id"`
	DisplayName    string                    `json:"display_name"`
	Category       models.InfluencerCategory `json:"category"`
	City           string                    `json:"city"`
	EstimatedViews int64                     `json:"estimated_views"`
	Price          float64                   `json:"price"`
	Hospitality    bool                      `json:"hospitality"`
}

// CampaignContext is the campaign side of a scoring request.
type CampaignContext struct {
	CampaignID       uint    `json:"campaign_id"`
	Title            string  `json:"title"`
	Goal             string  `json:"goal"`
	City             string  `json:"city"`
	Budget           float64 `json:"budget"`
	OfferHospitality bool    `json:"offer_hospitality"`
}

// Result is one ranked candidate.
type Result struct {
	InfluencerID uint   `json:"influencer_id"`
	Score        int    `json:"score"`
	Rationale    string `json:"rationale"`
}

// Scorer ranks candidates for a campaign, best first. Implementations must
// be deterministic for identical input so matching reruns are idempotent.
type Scorer interface {
	Score(ctx context.Context, campaign CampaignContext, candidates []Candidate) ([]Result, error)
}

// WeightedScorer is the built-in deterministic strategy:
// score = content-type weight + linearly scaled reach score.
type WeightedScorer struct{}

// NewWeightedScorer returns the default scorer.
func NewWeightedScorer() *WeightedScorer {
	return &WeightedScorer{}
}

// ContentTypeWeight returns the score contribution of a niche.
func ContentTypeWeight(category models.InfluencerCategory) int {
	return contentTypeWeights[category]
}

// ReachScore scales estimated views linearly into [0, MaxReachScore],
// saturating at ReachSaturationViews.
func ReachScore(estimatedViews int64) int {
	if estimatedViews <= 0 {
		return 0
	}
	if estimatedViews >= ReachSaturationViews {
		return MaxReachScore
	}
	return int(estimatedViews * MaxReachScore / ReachSaturationViews)
}

// ScoreCandidate applies the formula to one candidate.
func ScoreCandidate(c Candidate) int {
	score := ContentTypeWeight(c.Category) + ReachScore(c.EstimatedViews)
	if score > MaxScore {
		score = MaxScore
	}
	return score
}

// Score ranks all candidates, highest score first; equal scores order by
// ascending price so the cheaper option wins ties everywhere downstream.
func (s *WeightedScorer) Score(_ context.Context, campaign CampaignContext, candidates []Candidate) ([]Result, error) {
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		score := ScoreCandidate(c)
		results = append(results, Result{
			InfluencerID: c.InfluencerID,
			Score:        score,
			Rationale: fmt.Sprintf("%s niche (+%d), est. %d views (+%d) for %s",
				c.Category, ContentTypeWeight(c.Category), c.EstimatedViews, ReachScore(c.EstimatedViews), campaign.City),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return candidatePrice(candidates, results[i].InfluencerID) < candidatePrice(candidates, results[j].InfluencerID)
	})
	return results, nil
}

func candidatePrice(candidates []Candidate, influencerID uint) float64 {
	for _, c := range candidates {
		if c.InfluencerID == influencerID {
			return c.Price
		}
	}
	return 0
}

var _ Scorer = (*WeightedScorer)(nil)
