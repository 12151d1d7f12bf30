package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tarweej.app/configs"
	"tarweej.app/configs/configslog"
	"tarweej.app/matching"
	"tarweej.app/models"
	"tarweej.app/pkg/cities"
	"tarweej.app/pkg/views"
	"tarweej.app/repositories"
)

// MatchingServiceError is the typed error family for matching runs and
// suggestion approval.
type MatchingServiceError string

func (e MatchingServiceError) Error() string { return string(e) }

const (
	ErrMatchingFailed       MatchingServiceError = "matching run failed"
	ErrNoCandidates         MatchingServiceError = "no eligible influencers for this campaign"
	ErrSuggestionNotFound   MatchingServiceError = "suggestion not found"
	ErrSuggestionSelected   MatchingServiceError = "suggestion was already approved"
	ErrAlreadyInvited       MatchingServiceError = "influencer already invited to this campaign"
	ErrCampaignNotMatchable MatchingServiceError = "campaign is not in a matchable state"
)

// IMatchingService runs the scoring step and turns approved suggestions
// into invitations.
type IMatchingService interface {
	RunMatching(ctx context.Context, campaignID, ownerID uint) ([]models.Suggestion, error)
	GetSuggestions(ctx context.Context, campaignID, ownerID uint) ([]models.Suggestion, error)
	UpdateSuggestionSchedule(ctx context.Context, suggestionID, ownerID uint, scheduled *time.Time) error
	ApproveSuggestion(ctx context.Context, suggestionID, ownerID uint) (*models.Invitation, error)
	ApproveAllSuggestions(ctx context.Context, campaignID, ownerID uint) ([]models.Invitation, error)
}

type MatchingService struct {
	db          *gorm.DB
	campaigns   repositories.ICampaignRepository
	influencers repositories.IInfluencerRepository
	suggestions repositories.ISuggestionRepository
	scorer      matching.Scorer
}

// NewMatchingService wires the configured scorer: remote when SCORER_URL
// is set, the built-in weighted formula otherwise.
func NewMatchingService() IMatchingService {
	cfg := configs.GetConfig()
	var scorer matching.Scorer = matching.NewWeightedScorer()
	if cfg.ScorerURL != "" {
		scorer = matching.NewRemoteScorer(cfg.ScorerURL, cfg.ScorerTimeout)
	}
	return &MatchingService{
		db:          configs.GetDB(),
		campaigns:   repositories.NewCampaignRepository(),
		influencers: repositories.NewInfluencerRepository(),
		suggestions: repositories.NewSuggestionRepository(),
		scorer:      scorer,
	}
}

// RunMatching scores every eligible influencer for the campaign and
// replaces the suggestion set wholesale. A scorer failure leaves the
// campaign and its previous suggestions untouched; reruns are safe.
func (s *MatchingService) RunMatching(ctx context.Context, campaignID, ownerID uint) ([]models.Suggestion, error) {
	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if campaign.OwnerID != ownerID {
		return nil, ErrCampaignForbidden
	}
	if campaign.Status != models.CampaignStatusDraft && campaign.Status != models.CampaignStatusMatching {
		return nil, ErrCampaignNotMatchable
	}

	profiles, err := s.influencers.FindAllApproved(ctx)
	if err != nil {
		return nil, err
	}

	candidates, byID := buildCandidates(campaign, profiles)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	results, err := s.scorer.Score(ctx, matching.CampaignContext{
		CampaignID:       campaign.ID,
		Title:            campaign.Title,
		Goal:             campaign.Goal,
		City:             campaign.City,
		Budget:           campaign.Budget,
		OfferHospitality: campaign.OfferHospitality,
	}, candidates)
	if err != nil {
		configslog.Log.Error("scorer failed, campaign left untouched",
			zap.Uint("campaignID", campaignID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMatchingFailed, err)
	}

	ranked := make([]models.Suggestion, 0, len(results))
	for _, r := range results {
		c, ok := byID[r.InfluencerID]
		if !ok {
			// Scorer returned an influencer we never sent; drop it.
			configslog.SLog.Warnf("scorer returned unknown influencer %d for campaign %d", r.InfluencerID, campaignID)
			continue
		}
		score := r.Score
		if score < 0 {
			score = 0
		}
		if score > matching.MaxScore {
			score = matching.MaxScore
		}
		ranked = append(ranked, models.Suggestion{
			CampaignID:     campaignID,
			InfluencerID:   c.InfluencerID,
			DisplayName:    c.DisplayName,
			Category:       c.Category,
			City:           campaign.City,
			EstimatedViews: c.EstimatedViews,
			Price:          c.Price,
			IsHospitality:  c.Hospitality,
			MatchScore:     score,
			Rationale:      r.Rationale,
		})
	}

	strategy := matching.BuildStrategy(campaign.Budget, campaign.OfferHospitality, ranked)

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		suggestionsTx := repositories.NewSuggestionRepositoryTx(tx)
		campaignsTx := repositories.NewCampaignRepositoryTx(tx)

		if err := suggestionsTx.ReplaceForCampaign(ctx, campaignID, ranked); err != nil {
			return err
		}
		if err := campaignsTx.UpdateStrategy(ctx, campaignID, strategy); err != nil {
			return err
		}
		if campaign.Status == models.CampaignStatusDraft {
			if err := campaignsTx.UpdateStatus(ctx, campaignID, models.CampaignStatusDraft, models.CampaignStatusMatching); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("persisting matching run failed", zap.Uint("campaignID", campaignID), zap.Error(txErr))
		return nil, txErr
	}

	configslog.SLog.Infof("matching run complete: campaign=%d suggestions=%d paid=%d hospitality=%d",
		campaignID, len(ranked), strategy.PaidCount, strategy.HospitalityCount)
	return ranked, nil
}

// buildCandidates filters the approved pool down to influencers who cover
// the campaign city and fit its compensation model, and resolves each
// profile's representative view count.
func buildCandidates(campaign *models.Campaign, profiles []models.InfluencerProfile) ([]matching.Candidate, map[uint]matching.Candidate) {
	candidates := make([]matching.Candidate, 0, len(profiles))
	byID := make(map[uint]matching.Candidate, len(profiles))

	for _, p := range profiles {
		if !cities.MatchAny(p.Cities, campaign.City) {
			continue
		}

		paidFits := p.AcceptsPaid && p.MinPrice <= campaign.Budget
		hospitalityFits := campaign.OfferHospitality && p.AcceptsHospitality
		if !paidFits && !hospitalityFits {
			continue
		}

		// An influencer joins as paid when affordable, hospitality
		// otherwise.
		hospitality := !paidFits
		price := p.MinPrice
		if hospitality {
			price = 0
		}

		c := matching.Candidate{
			InfluencerID:   p.ID,
			DisplayName:    p.DisplayName,
			Category:       p.Category,
			City:           campaign.City,
			EstimatedViews: views.Estimate(p.ViewsOverride, string(p.PrimaryViewRange())),
			Price:          price,
			Hospitality:    hospitality,
		}
		candidates = append(candidates, c)
		byID[p.ID] = c
	}
	return candidates, byID
}

func (s *MatchingService) GetSuggestions(ctx context.Context, campaignID, ownerID uint) ([]models.Suggestion, error) {
	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if campaign.OwnerID != ownerID {
		return nil, ErrCampaignForbidden
	}
	return s.suggestions.FindByCampaign(ctx, campaignID)
}

// UpdateSuggestionSchedule lets the owner set the visit date before
// approving; the date is copied onto the invitation at approval time.
func (s *MatchingService) UpdateSuggestionSchedule(ctx context.Context, suggestionID, ownerID uint, scheduled *time.Time) error {
	suggestion, err := s.suggestions.FindByID(ctx, suggestionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSuggestionNotFound
		}
		return err
	}
	if err := s.ownerOwnsCampaign(ctx, suggestion.CampaignID, ownerID); err != nil {
		return err
	}
	if err := s.suggestions.UpdateScheduledDate(ctx, suggestionID, scheduled); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return ErrSuggestionSelected
		}
		return err
	}
	return nil
}

// ApproveSuggestion turns one suggestion into a pending invitation. The
// whole step runs under the campaign's advisory lock so it cannot race the
// replacement flow over budget or the unique invitation pair.
func (s *MatchingService) ApproveSuggestion(ctx context.Context, suggestionID, ownerID uint) (*models.Invitation, error) {
	var invitation *models.Invitation

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		suggestionsTx := repositories.NewSuggestionRepositoryTx(tx)
		invitationsTx := repositories.NewInvitationRepositoryTx(tx)
		campaignsTx := repositories.NewCampaignRepositoryTx(tx)

		suggestion, err := suggestionsTx.FindByID(ctx, suggestionID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrSuggestionNotFound
			}
			return err
		}

		if err := repositories.AcquireCampaignLock(tx, suggestion.CampaignID); err != nil {
			return err
		}

		campaign, err := campaignsTx.FindByID(ctx, suggestion.CampaignID)
		if err != nil {
			return err
		}
		if campaign.OwnerID != ownerID {
			return ErrCampaignForbidden
		}

		created, err := approveOne(ctx, suggestionsTx, invitationsTx, suggestion)
		if err != nil {
			return err
		}
		invitation = created

		if campaign.Status == models.CampaignStatusMatching {
			if err := campaignsTx.UpdateStatus(ctx, campaign.ID, models.CampaignStatusMatching, models.CampaignStatusActive); err != nil && !errors.Is(err, repositories.ErrConflict) {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("suggestion approved: suggestion=%d invitation=%d", suggestionID, invitation.ID)
	return invitation, nil
}

// ApproveAllSuggestions bulk-approves every unselected suggestion for the
// campaign. Already-invited influencers are skipped rather than failing
// the batch.
func (s *MatchingService) ApproveAllSuggestions(ctx context.Context, campaignID, ownerID uint) ([]models.Invitation, error) {
	var created []models.Invitation

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		suggestionsTx := repositories.NewSuggestionRepositoryTx(tx)
		invitationsTx := repositories.NewInvitationRepositoryTx(tx)
		campaignsTx := repositories.NewCampaignRepositoryTx(tx)

		if err := repositories.AcquireCampaignLock(tx, campaignID); err != nil {
			return err
		}

		campaign, err := campaignsTx.FindByID(ctx, campaignID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}
		if campaign.OwnerID != ownerID {
			return ErrCampaignForbidden
		}

		suggestions, err := suggestionsTx.FindByCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		for i := range suggestions {
			if suggestions[i].Selected {
				continue
			}
			invitation, err := approveOne(ctx, suggestionsTx, invitationsTx, &suggestions[i])
			if err != nil {
				if errors.Is(err, ErrAlreadyInvited) || errors.Is(err, ErrSuggestionSelected) {
					continue
				}
				return err
			}
			created = append(created, *invitation)
		}

		if len(created) > 0 && campaign.Status == models.CampaignStatusMatching {
			if err := campaignsTx.UpdateStatus(ctx, campaignID, models.CampaignStatusMatching, models.CampaignStatusActive); err != nil && !errors.Is(err, repositories.ErrConflict) {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("bulk approval: campaign=%d invitations=%d", campaignID, len(created))
	return created, nil
}

// approveOne is the shared selected-flag CAS plus invitation insert.
func approveOne(ctx context.Context, suggestions repositories.ISuggestionRepository, invitations repositories.IInvitationRepository, suggestion *models.Suggestion) (*models.Invitation, error) {
	invited, err := invitations.ExistsPair(ctx, suggestion.CampaignID, suggestion.InfluencerID)
	if err != nil {
		return nil, err
	}
	if invited {
		return nil, ErrAlreadyInvited
	}

	if err := suggestions.MarkSelected(ctx, suggestion.ID); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrSuggestionSelected
		}
		return nil, err
	}

	invitation := NewInvitationFromSuggestion(suggestion)
	if err := invitations.Create(ctx, invitation); err != nil {
		return nil, err
	}
	return invitation, nil
}

// NewInvitationFromSuggestion builds the pending invitation carrying the
// suggestion's scheduled date and pricing over.
func NewInvitationFromSuggestion(suggestion *models.Suggestion) *models.Invitation {
	invitation := &models.Invitation{
		Key:           uuid.NewString(),
		CampaignID:    suggestion.CampaignID,
		InfluencerID:  suggestion.InfluencerID,
		Status:        models.InvitationStatusPending,
		ProofStatus:   models.ProofStatusPendingSubmission,
		ScheduledDate: suggestion.ScheduledDate,
	}
	if !suggestion.IsHospitality && suggestion.Price > 0 {
		price := suggestion.Price
		invitation.OfferedPrice = &price
	}
	return invitation
}

func (s *MatchingService) ownerOwnsCampaign(ctx context.Context, campaignID, ownerID uint) error {
	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if campaign.OwnerID != ownerID {
		return ErrCampaignForbidden
	}
	return nil
}

var _ IMatchingService = (*MatchingService)(nil)
