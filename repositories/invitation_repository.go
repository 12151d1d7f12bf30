package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tarweej.app/configs"
	"tarweej.app/models"
	"tarweej.app/pkg/queryparams"
)

// IInvitationRepository is the persistence surface for invitations. Every
// state transition is a conditional update: the WHERE clause re-checks the
// source state so concurrent writers resolve to ErrConflict instead of a
// silent overwrite.
type IInvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	FindByID(ctx context.Context, id uint) (*models.Invitation, error)
	FindByKey(ctx context.Context, key string) (*models.Invitation, error)
	FindByCampaign(ctx context.Context, campaignID uint) ([]models.Invitation, error)
	FindByInfluencerPaginated(ctx context.Context, influencerID uint, params queryparams.ListParams) ([]models.Invitation, int64, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Invitation, int64, error)
	ExistsPair(ctx context.Context, campaignID, influencerID uint) (bool, error)

	UpdateResponse(ctx context.Context, id uint, to models.InvitationStatus, respondedAt time.Time) error
	UpdateProofSubmission(ctx context.Context, id uint, fromProof models.ProofStatus, proofURL string, submittedAt time.Time) error
	UpdateProofApproval(ctx context.Context, id uint, approvedAt time.Time) error
	UpdateProofRejection(ctx context.Context, id uint, reason string) error
	UpdatePaymentCompleted(ctx context.Context, id uint) error

	CommittedCost(ctx context.Context, campaignID uint) (float64, error)
	FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]models.Invitation, error)
	FindAutoApprovable(ctx context.Context, cutoff time.Time, limit int) ([]models.Invitation, error)
}

type InvitationRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Invitation]
}

func NewInvitationRepository() IInvitationRepository {
	return NewInvitationRepositoryTx(configs.GetDB())
}

// NewInvitationRepositoryTx binds the repository to a transaction.
func NewInvitationRepositoryTx(tx *gorm.DB) IInvitationRepository {
	return &InvitationRepository{db: tx, base: NewBaseRepository[models.Invitation](tx)}
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *InvitationRepository) FindByID(ctx context.Context, id uint) (*models.Invitation, error) {
	return r.base.FindByID(ctx, id)
}

func (r *InvitationRepository) FindByKey(ctx context.Context, key string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&invitation).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &invitation, nil
}

func (r *InvitationRepository) FindByCampaign(ctx context.Context, campaignID uint) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}

func (r *InvitationRepository) FindByInfluencerPaginated(ctx context.Context, influencerID uint, params queryparams.ListParams) ([]models.Invitation, int64, error) {
	var invitations []models.Invitation
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("influencer_id = ?", influencerID)
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return invitations, 0, nil
	}

	err := query.Order("created_at " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&invitations).Error
	return invitations, totalCount, err
}

func (r *InvitationRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Invitation, int64, error) {
	var invitations []models.Invitation
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Invitation{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return invitations, 0, nil
	}

	err := query.Order("created_at " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&invitations).Error
	return invitations, totalCount, err
}

func (r *InvitationRepository) ExistsPair(ctx context.Context, campaignID, influencerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("campaign_id = ? AND influencer_id = ?", campaignID, influencerID).
		Count(&count).Error
	return count > 0, err
}

// UpdateResponse moves pending → accepted/declined. A double response (or
// a sweep racing a user click) fails the status guard and conflicts.
func (r *InvitationRepository) UpdateResponse(ctx context.Context, id uint, to models.InvitationStatus, respondedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ? AND status = ?", id, models.InvitationStatusPending).
		Updates(map[string]interface{}{
			"status":       to,
			"responded_at": respondedAt,
		})
	return checkAffected(result)
}

// UpdateProofSubmission records the content URL. fromProof is the expected
// current proof state (pending_submission for first submit, rejected for a
// resubmit).
func (r *InvitationRepository) UpdateProofSubmission(ctx context.Context, id uint, fromProof models.ProofStatus, proofURL string, submittedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ? AND status = ? AND proof_status = ?", id, models.InvitationStatusAccepted, fromProof).
		Updates(map[string]interface{}{
			"proof_status":          models.ProofStatusSubmitted,
			"proof_url":             proofURL,
			"proof_submitted_at":    submittedAt,
			"proof_rejected_reason": "",
		})
	return checkAffected(result)
}

func (r *InvitationRepository) UpdateProofApproval(ctx context.Context, id uint, approvedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ? AND proof_status = ?", id, models.ProofStatusSubmitted).
		Updates(map[string]interface{}{
			"proof_status":          models.ProofStatusApproved,
			"proof_approved_at":     approvedAt,
			"proof_rejected_reason": "",
		})
	return checkAffected(result)
}

func (r *InvitationRepository) UpdateProofRejection(ctx context.Context, id uint, reason string) error {
	result := r.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ? AND proof_status = ?", id, models.ProofStatusSubmitted).
		Updates(map[string]interface{}{
			"proof_status":          models.ProofStatusRejected,
			"proof_rejected_reason": reason,
			"proof_approved_at":     nil,
		})
	return checkAffected(result)
}

func (r *InvitationRepository) UpdatePaymentCompleted(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ? AND proof_status = ? AND payment_completed = ?", id, models.ProofStatusApproved, false).
		Update("payment_completed", true)
	return checkAffected(result)
}

// CommittedCost sums the offered prices of every invitation still counting
// against the campaign budget (everything not declined).
func (r *InvitationRepository) CommittedCost(ctx context.Context, campaignID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("campaign_id = ? AND status <> ?", campaignID, models.InvitationStatusDeclined).
		Select("COALESCE(SUM(offered_price), 0)").
		Scan(&total).Error
	return total, err
}

// FindExpiredPending returns pending, unanswered invitations created
// before the cutoff, oldest first, capped to one sweep batch.
func (r *InvitationRepository) FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.WithContext(ctx).
		Where("status = ? AND responded_at IS NULL AND created_at < ?", models.InvitationStatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&invitations).Error
	return invitations, err
}

// FindAutoApprovable returns submitted proofs that have waited past the
// review cutoff, oldest first, capped to one sweep batch.
func (r *InvitationRepository) FindAutoApprovable(ctx context.Context, cutoff time.Time, limit int) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.WithContext(ctx).
		Where("proof_status = ? AND proof_submitted_at < ?", models.ProofStatusSubmitted, cutoff).
		Order("proof_submitted_at ASC").
		Limit(limit).
		Find(&invitations).Error
	return invitations, err
}

var _ IInvitationRepository = (*InvitationRepository)(nil)
