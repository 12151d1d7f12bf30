package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tarweej.app/configs"
	"tarweej.app/models"
)

// ISuggestionRepository is the persistence surface for matching suggestions.
type ISuggestionRepository interface {
	ReplaceForCampaign(ctx context.Context, campaignID uint, suggestions []models.Suggestion) error
	FindByID(ctx context.Context, id uint) (*models.Suggestion, error)
	FindByCampaign(ctx context.Context, campaignID uint) ([]models.Suggestion, error)
	FindReplacementCandidates(ctx context.Context, campaignID uint) ([]models.Suggestion, error)
	MarkSelected(ctx context.Context, id uint) error
	UpdateScheduledDate(ctx context.Context, id uint, scheduled *time.Time) error
}

type SuggestionRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Suggestion]
}

func NewSuggestionRepository() ISuggestionRepository {
	return NewSuggestionRepositoryTx(configs.GetDB())
}

// NewSuggestionRepositoryTx binds the repository to a transaction.
func NewSuggestionRepositoryTx(tx *gorm.DB) ISuggestionRepository {
	return &SuggestionRepository{db: tx, base: NewBaseRepository[models.Suggestion](tx)}
}

// ReplaceForCampaign swaps out a campaign's entire suggestion set. Matching
// reruns are idempotent because of this wholesale replacement.
func (r *SuggestionRepository) ReplaceForCampaign(ctx context.Context, campaignID uint, suggestions []models.Suggestion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("campaign_id = ?", campaignID).
			Delete(&models.Suggestion{}).Error; err != nil {
			return err
		}
		if len(suggestions) == 0 {
			return nil
		}
		return tx.Create(&suggestions).Error
	})
}

func (r *SuggestionRepository) FindByID(ctx context.Context, id uint) (*models.Suggestion, error) {
	return r.base.FindByID(ctx, id)
}

func (r *SuggestionRepository) FindByCampaign(ctx context.Context, campaignID uint) ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("match_score DESC, price ASC").
		Find(&suggestions).Error
	return suggestions, err
}

// FindReplacementCandidates returns unselected suggestions whose influencer
// has not been invited to this campaign yet, best score first and cheaper
// first on ties.
func (r *SuggestionRepository) FindReplacementCandidates(ctx context.Context, campaignID uint) ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND selected = ?", campaignID, false).
		Where("influencer_id NOT IN (?)",
			r.db.Model(&models.Invitation{}).
				Select("influencer_id").
				Where("campaign_id = ?", campaignID)).
		Order("match_score DESC, price ASC").
		Find(&suggestions).Error
	return suggestions, err
}

// MarkSelected flips selected false → true; a second invocation conflicts.
func (r *SuggestionRepository) MarkSelected(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where("id = ? AND selected = ?", id, false).
		Update("selected", true)
	return checkAffected(result)
}

// UpdateScheduledDate lets the owner adjust the visit date before approval.
func (r *SuggestionRepository) UpdateScheduledDate(ctx context.Context, id uint, scheduled *time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where("id = ? AND selected = ?", id, false).
		Update("scheduled_date", scheduled)
	return checkAffected(result)
}

var _ ISuggestionRepository = (*SuggestionRepository)(nil)
