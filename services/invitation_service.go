package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tarweej.app/configs"
	"tarweej.app/configs/configslog"
	"tarweej.app/matching"
	"tarweej.app/models"
	"tarweej.app/pkg/queryparams"
	"tarweej.app/repositories"
)

// InvitationServiceError is the typed error family for the invitation
// workflow.
type InvitationServiceError string

func (e InvitationServiceError) Error() string { return string(e) }

const (
	ErrInvitationNotFound  InvitationServiceError = "invitation not found"
	ErrInvitationForbidden InvitationServiceError = "not allowed for this invitation"
	ErrInvitationConflict  InvitationServiceError = "invitation state changed, action not applied"
	ErrProofURLRequired    InvitationServiceError = "a valid absolute proof URL is required"
	ErrRejectReasonNeeded  InvitationServiceError = "a rejection reason is required"
	ErrNotPaymentEligible  InvitationServiceError = "invitation is not eligible for payment"
)

// ReplacementResult reports the outcome of one replacement attempt. A
// false Replaced with a message is a valid terminal outcome, not an error.
type ReplacementResult struct {
	Replaced        bool       `json:"replaced"`
	Message         string     `json:"message,omitempty"`
	InfluencerID    uint       `json:"influencer_id,omitempty"`
	DisplayName     string     `json:"display_name,omitempty"`
	Cost            float64    `json:"cost"`
	MatchScore      int        `json:"match_score,omitempty"`
	ScheduledDate   *time.Time `json:"scheduled_date,omitempty"`
	RemainingBudget float64    `json:"remaining_budget"`
}

// IInvitationService drives the invitation lifecycle end to end: influencer
// response, proof review, payment, the replacement flow and both sweeps.
type IInvitationService interface {
	GetByID(ctx context.Context, id uint) (*models.Invitation, error)
	GetByKey(ctx context.Context, key string, influencerID uint) (*models.Invitation, error)
	GetForInfluencer(ctx context.Context, influencerID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetForCampaign(ctx context.Context, campaignID, ownerID uint) ([]models.Invitation, error)
	GetAll(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)

	Accept(ctx context.Context, id, influencerID uint) error
	Decline(ctx context.Context, id, influencerID uint) (*ReplacementResult, error)
	SubmitProof(ctx context.Context, id, influencerID uint, proofURL string) error
	ApproveProof(ctx context.Context, id, ownerID uint) error
	RejectProof(ctx context.Context, id, ownerID uint, reason string) error
	MarkPaymentCompleted(ctx context.Context, id uint) error
	PaymentEligible(invitation *models.Invitation, now time.Time) bool

	ReplaceDeclinedInfluencer(ctx context.Context, campaignID, declinedInfluencerID uint) (*ReplacementResult, error)
	ExpirePendingInvitations(ctx context.Context) (int, error)
	AutoApproveSubmittedProofs(ctx context.Context) (int, error)
}

type InvitationService struct {
	db          *gorm.DB
	invitations repositories.IInvitationRepository
	campaigns   repositories.ICampaignRepository

	inviteExpiry     time.Duration
	proofAutoApprove time.Duration
	sweepBatchSize   int
}

func NewInvitationService() IInvitationService {
	cfg := configs.GetConfig()
	return &InvitationService{
		db:               configs.GetDB(),
		invitations:      repositories.NewInvitationRepository(),
		campaigns:        repositories.NewCampaignRepository(),
		inviteExpiry:     cfg.InviteExpiry,
		proofAutoApprove: cfg.ProofAutoApprove,
		sweepBatchSize:   cfg.SweepBatchSize,
	}
}

func (s *InvitationService) GetByID(ctx context.Context, id uint) (*models.Invitation, error) {
	invitation, err := s.invitations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return invitation, nil
}

// GetByKey resolves an invitation by its public key, restricted to the
// invited influencer.
func (s *InvitationService) GetByKey(ctx context.Context, key string, influencerID uint) (*models.Invitation, error) {
	invitation, err := s.invitations.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	if invitation.InfluencerID != influencerID {
		return nil, ErrInvitationForbidden
	}
	return invitation, nil
}

func (s *InvitationService) GetForInfluencer(ctx context.Context, influencerID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	invitations, totalCount, err := s.invitations.FindByInfluencerPaginated(ctx, influencerID, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: invitations,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

func (s *InvitationService) GetForCampaign(ctx context.Context, campaignID, ownerID uint) ([]models.Invitation, error) {
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
	return s.invitations.FindByCampaign(ctx, campaignID)
}

// InvitationView decorates an invitation with its read-time payment
// eligibility, covering the gap between a proof earning auto-approval and
// the sweep persisting it.
type InvitationView struct {
	models.Invitation
	PaymentEligible bool `json:"payment_eligible"`
}

// GetAll lists every invitation for the back office, eligibility included.
func (s *InvitationService) GetAll(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	invitations, totalCount, err := s.invitations.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]InvitationView, 0, len(invitations))
	for i := range invitations {
		views = append(views, InvitationView{
			Invitation:      invitations[i],
			PaymentEligible: invitations[i].PaymentEligible(now, s.proofAutoApprove),
		})
	}

	return &queryparams.PaginatedResult{
		Data: views,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// loadOwned fetches the invitation and checks it belongs to the acting
// influencer.
func (s *InvitationService) loadOwned(ctx context.Context, id, influencerID uint) (*models.Invitation, error) {
	invitation, err := s.invitations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	if invitation.InfluencerID != influencerID {
		return nil, ErrInvitationForbidden
	}
	return invitation, nil
}

// Accept transitions pending → accepted via a status-guarded update.
func (s *InvitationService) Accept(ctx context.Context, id, influencerID uint) error {
	invitation, err := s.loadOwned(ctx, id, influencerID)
	if err != nil {
		return err
	}
	if err := invitation.Accept(time.Now().UTC()); err != nil {
		return ErrInvitationConflict
	}
	if err := s.invitations.UpdateResponse(ctx, id, models.InvitationStatusAccepted, *invitation.RespondedAt); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return ErrInvitationConflict
		}
		return err
	}
	configslog.SLog.Infof("invitation accepted: id=%d influencer=%d", id, influencerID)
	return nil
}

// Decline transitions pending → declined, then synchronously attempts to
// invite a replacement from the campaign's suggestion pool.
func (s *InvitationService) Decline(ctx context.Context, id, influencerID uint) (*ReplacementResult, error) {
	invitation, err := s.loadOwned(ctx, id, influencerID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := invitation.Decline(now); err != nil {
		return nil, ErrInvitationConflict
	}
	if err := s.invitations.UpdateResponse(ctx, id, models.InvitationStatusDeclined, now); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrInvitationConflict
		}
		return nil, err
	}
	configslog.SLog.Infof("invitation declined: id=%d influencer=%d", id, influencerID)

	result, err := s.ReplaceDeclinedInfluencer(ctx, invitation.CampaignID, influencerID)
	if err != nil {
		// The decline itself stands; a failed replacement attempt is
		// logged and reported as no replacement.
		configslog.Log.Error("replacement flow failed after decline",
			zap.Uint("invitationID", id), zap.Error(err))
		return &ReplacementResult{Replaced: false, Message: "replacement attempt failed"}, nil
	}
	return result, nil
}

// SubmitProof records the influencer's content URL for owner review.
func (s *InvitationService) SubmitProof(ctx context.Context, id, influencerID uint, proofURL string) error {
	invitation, err := s.loadOwned(ctx, id, influencerID)
	if err != nil {
		return err
	}
	fromProof := invitation.ProofStatus
	if err := invitation.SubmitProof(proofURL, time.Now().UTC()); err != nil {
		if errors.Is(err, models.ErrProofURLInvalid) {
			return ErrProofURLRequired
		}
		return ErrInvitationConflict
	}
	if err := s.invitations.UpdateProofSubmission(ctx, id, fromProof, proofURL, *invitation.ProofSubmittedAt); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return ErrInvitationConflict
		}
		return err
	}
	configslog.SLog.Infof("proof submitted: invitation=%d", id)
	return nil
}

// ownerOfInvitation checks the acting user owns the invitation's campaign.
func (s *InvitationService) ownerOfInvitation(ctx context.Context, invitation *models.Invitation, ownerID uint) error {
	campaign, err := s.campaigns.FindByID(ctx, invitation.CampaignID)
	if err != nil {
		return err
	}
	if campaign.OwnerID != ownerID {
		return ErrInvitationForbidden
	}
	return nil
}

func (s *InvitationService) ApproveProof(ctx context.Context, id, ownerID uint) error {
	invitation, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ownerOfInvitation(ctx, invitation, ownerID); err != nil {
		return err
	}
	if err := s.invitations.UpdateProofApproval(ctx, id, time.Now().UTC()); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return ErrInvitationConflict
		}
		return err
	}
	configslog.SLog.Infof("proof approved: invitation=%d owner=%d", id, ownerID)
	return nil
}

func (s *InvitationService) RejectProof(ctx context.Context, id, ownerID uint, reason string) error {
	if reason == "" {
		return ErrRejectReasonNeeded
	}
	invitation, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ownerOfInvitation(ctx, invitation, ownerID); err != nil {
		return err
	}
	if err := s.invitations.UpdateProofRejection(ctx, id, reason); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return ErrInvitationConflict
		}
		return err
	}
	configslog.SLog.Infof("proof rejected: invitation=%d owner=%d", id, ownerID)
	return nil
}

// PaymentEligible mirrors the stored approval plus the read-time
// auto-approval window, for API responses between sweep runs.
func (s *InvitationService) PaymentEligible(invitation *models.Invitation, now time.Time) bool {
	return invitation.PaymentEligible(now, s.proofAutoApprove)
}

// MarkPaymentCompleted is the admin payout flag. If the proof earned
// auto-approval but the sweep has not persisted it yet, the approval is
// persisted here first so the payment guard stays a plain column check.
func (s *InvitationService) MarkPaymentCompleted(ctx context.Context, id uint) error {
	invitation, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if !invitation.PaymentEligible(now, s.proofAutoApprove) {
		return ErrNotPaymentEligible
	}
	if invitation.ProofStatus == models.ProofStatusSubmitted {
		if err := s.invitations.UpdateProofApproval(ctx, id, now); err != nil && !errors.Is(err, repositories.ErrConflict) {
			return err
		}
	}
	if err := s.invitations.UpdatePaymentCompleted(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return ErrInvitationConflict
		}
		return err
	}
	configslog.SLog.Infof("payment marked complete: invitation=%d", id)
	return nil
}

// ReplaceDeclinedInfluencer finds the best affordable, not-yet-invited
// suggestion and invites it. The whole flow runs inside one transaction
// holding the campaign's advisory lock: remaining budget is computed and
// spent atomically, so concurrent invocations cannot double-spend, and the
// unique (campaign, influencer) pair makes re-invocation a no-op.
func (s *InvitationService) ReplaceDeclinedInfluencer(ctx context.Context, campaignID, declinedInfluencerID uint) (*ReplacementResult, error) {
	var result *ReplacementResult

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.AcquireCampaignLock(tx, campaignID); err != nil {
			return err
		}

		campaignsTx := repositories.NewCampaignRepositoryTx(tx)
		invitationsTx := repositories.NewInvitationRepositoryTx(tx)
		suggestionsTx := repositories.NewSuggestionRepositoryTx(tx)

		campaign, err := campaignsTx.FindByID(ctx, campaignID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}

		committed, err := invitationsTx.CommittedCost(ctx, campaignID)
		if err != nil {
			return err
		}
		remaining := campaign.Budget - committed

		candidates, err := suggestionsTx.FindReplacementCandidates(ctx, campaignID)
		if err != nil {
			return err
		}

		pick := matching.PickReplacement(remaining, candidates)
		if pick == nil {
			result = &ReplacementResult{
				Replaced:        false,
				Message:         "no affordable replacement left in the suggestion pool",
				RemainingBudget: remaining,
			}
			return nil
		}

		if err := suggestionsTx.MarkSelected(ctx, pick.ID); err != nil {
			return err
		}
		invitation := NewInvitationFromSuggestion(pick)
		if err := invitationsTx.Create(ctx, invitation); err != nil {
			return err
		}

		cost := invitation.Cost()
		strategy := campaign.Strategy
		strategy.RemainingBudget = remaining - cost
		if err := campaignsTx.UpdateStrategy(ctx, campaignID, strategy); err != nil {
			return err
		}

		result = &ReplacementResult{
			Replaced:        true,
			InfluencerID:    pick.InfluencerID,
			DisplayName:     pick.DisplayName,
			Cost:            cost,
			MatchScore:      pick.MatchScore,
			ScheduledDate:   pick.ScheduledDate,
			RemainingBudget: remaining - cost,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if result.Replaced {
		configslog.SLog.Infof("replacement invited: campaign=%d declined=%d replacement=%d cost=%.0f",
			campaignID, declinedInfluencerID, result.InfluencerID, result.Cost)
	} else {
		configslog.SLog.Infof("no replacement for campaign=%d after decline of %d: %s",
			campaignID, declinedInfluencerID, result.Message)
	}
	return result, nil
}

// ExpirePendingInvitations force-declines pending invitations older than
// the expiry window and runs the replacement flow for each. One bounded
// batch per call; each row's own status guard makes reruns no-ops.
func (s *InvitationService) ExpirePendingInvitations(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-s.inviteExpiry)

	expired, err := s.invitations.FindExpiredPending(ctx, cutoff, s.sweepBatchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for i := range expired {
		inv := &expired[i]
		if err := s.invitations.UpdateResponse(ctx, inv.ID, models.InvitationStatusDeclined, now); err != nil {
			if errors.Is(err, repositories.ErrConflict) {
				// The influencer responded between the query and the
				// write; nothing to do.
				continue
			}
			configslog.Log.Error("expiring invitation failed", zap.Uint("id", inv.ID), zap.Error(err))
			continue
		}
		processed++
		configslog.SLog.Infof("invitation expired: id=%d campaign=%d age=%s",
			inv.ID, inv.CampaignID, now.Sub(inv.CreatedAt).Truncate(time.Minute))

		if _, err := s.ReplaceDeclinedInfluencer(ctx, inv.CampaignID, inv.InfluencerID); err != nil {
			configslog.Log.Error("replacement after expiry failed",
				zap.Uint("invitationID", inv.ID), zap.Error(err))
		}
	}
	return processed, nil
}

// AutoApproveSubmittedProofs persists the implicit approval of proofs that
// waited past the review window, mirroring the expiration sweep so the
// transition is auditable instead of recomputed on every read.
func (s *InvitationService) AutoApproveSubmittedProofs(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-s.proofAutoApprove)

	due, err := s.invitations.FindAutoApprovable(ctx, cutoff, s.sweepBatchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for i := range due {
		inv := &due[i]
		if err := s.invitations.UpdateProofApproval(ctx, inv.ID, now); err != nil {
			if errors.Is(err, repositories.ErrConflict) {
				continue
			}
			configslog.Log.Error("proof auto-approval failed", zap.Uint("id", inv.ID), zap.Error(err))
			continue
		}
		processed++
		configslog.SLog.Infof("proof auto-approved: invitation=%d submitted_at=%s",
			inv.ID, inv.ProofSubmittedAt.Format(time.RFC3339))
	}
	return processed, nil
}

var _ IInvitationService = (*InvitationService)(nil)
