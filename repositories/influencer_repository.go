package repositories

import (
	"context"

	"gorm.io/gorm"

	"tarweej.app/configs"
	"tarweej.app/models"
	"tarweej.app/pkg/queryparams"
)

// IInfluencerRepository is the persistence surface for influencer profiles.
type IInfluencerRepository interface {
	Create(ctx context.Context, profile *models.InfluencerProfile) error
	FindByID(ctx context.Context, id uint) (*models.InfluencerProfile, error)
	FindByUserID(ctx context.Context, userID uint) (*models.InfluencerProfile, error)
	FindAllApproved(ctx context.Context) ([]models.InfluencerProfile, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.InfluencerProfile, int64, error)
	Update(ctx context.Context, profile *models.InfluencerProfile) error
	SetApproval(ctx context.Context, id uint, approved bool) error
}

type InfluencerRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.InfluencerProfile]
}

func NewInfluencerRepository() IInfluencerRepository {
	return NewInfluencerRepositoryTx(configs.GetDB())
}

// NewInfluencerRepositoryTx binds the repository to a transaction.
func NewInfluencerRepositoryTx(tx *gorm.DB) IInfluencerRepository {
	return &InfluencerRepository{db: tx, base: NewBaseRepository[models.InfluencerProfile](tx)}
}

func (r *InfluencerRepository) Create(ctx context.Context, profile *models.InfluencerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *InfluencerRepository) FindByID(ctx context.Context, id uint) (*models.InfluencerProfile, error) {
	return r.base.FindByID(ctx, id)
}

func (r *InfluencerRepository) FindByUserID(ctx context.Context, userID uint) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &profile, nil
}

// FindAllApproved returns the matching candidate pool: approved profiles
// that accepted the platform agreement. City filtering happens in the
// service via pkg/cities since coverage is a normalized-string list.
func (r *InfluencerRepository) FindAllApproved(ctx context.Context) ([]models.InfluencerProfile, error) {
	var profiles []models.InfluencerProfile
	err := r.db.WithContext(ctx).
		Where("is_approved = ? AND agreement_accepted = ?", true, true).
		Find(&profiles).Error
	return profiles, err
}

func (r *InfluencerRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.InfluencerProfile, int64, error) {
	var profiles []models.InfluencerProfile
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.InfluencerProfile{})
	if params.Status == "approved" {
		query = query.Where("is_approved = ?", true)
	} else if params.Status == "pending" {
		query = query.Where("is_approved = ?", false)
	}
	if params.Name != "" {
		query = query.Where("display_name ILIKE ?", "%"+params.Name+"%")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return profiles, 0, nil
	}

	allowedSortColumns := map[string]string{
		"id":           "id",
		"created_at":   "created_at",
		"display_name": "display_name",
		"min_price":    "min_price",
	}
	orderColumn := "created_at"
	if col, ok := allowedSortColumns[params.SortBy]; ok {
		orderColumn = col
	}

	err := query.Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&profiles).Error
	return profiles, totalCount, err
}

func (r *InfluencerRepository) Update(ctx context.Context, profile *models.InfluencerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *InfluencerRepository) SetApproval(ctx context.Context, id uint, approved bool) error {
	result := r.db.WithContext(ctx).Model(&models.InfluencerProfile{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	return checkAffected(result)
}

var _ IInfluencerRepository = (*InfluencerRepository)(nil)
