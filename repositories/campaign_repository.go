package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tarweej.app/configs"
	"tarweej.app/models"
	"tarweej.app/pkg/queryparams"
)

// ICampaignRepository is the persistence surface for campaigns.
type ICampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, id uint) (*models.Campaign, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Campaign, error)
	FindAllByOwnerPaginated(ctx context.Context, ownerID uint, params queryparams.ListParams) ([]models.Campaign, int64, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Campaign, int64, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	UpdateStatus(ctx context.Context, id uint, from, to models.CampaignStatus) error
	UpdateStrategy(ctx context.Context, id uint, strategy models.StrategySummary) error
}

type CampaignRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Campaign]
}

func NewCampaignRepository() ICampaignRepository {
	return NewCampaignRepositoryTx(configs.GetDB())
}

// NewCampaignRepositoryTx binds the repository to a transaction.
func NewCampaignRepositoryTx(tx *gorm.DB) ICampaignRepository {
	return &CampaignRepository{db: tx, base: NewBaseRepository[models.Campaign](tx)}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

func (r *CampaignRepository) FindByID(ctx context.Context, id uint) (*models.Campaign, error) {
	return r.base.FindByID(ctx, id)
}

// FindByIDForUpdate loads the campaign under a row lock. Only meaningful
// inside a transaction.
func (r *CampaignRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&campaign, id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &campaign, nil
}

func (r *CampaignRepository) applyFilters(query *gorm.DB, params queryparams.ListParams) *gorm.DB {
	if params.Status != "" {
		query = query.Where("campaigns.status = ?", params.Status)
	}
	if params.Name != "" {
		query = query.Where("campaigns.title ILIKE ?", "%"+params.Name+"%")
	}

	allowedSortColumns := map[string]string{
		"id":         "campaigns.id",
		"created_at": "campaigns.created_at",
		"title":      "campaigns.title",
		"budget":     "campaigns.budget",
		"status":     "campaigns.status",
	}
	orderColumn := "campaigns.created_at"
	if col, ok := allowedSortColumns[params.SortBy]; ok {
		orderColumn = col
	}
	return query.Order(orderColumn + " " + params.OrderBy)
}

func (r *CampaignRepository) FindAllByOwnerPaginated(ctx context.Context, ownerID uint, params queryparams.ListParams) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Campaign{}).Where("campaigns.owner_id = ?", ownerID)
	query = r.applyFilters(query, params)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return campaigns, 0, nil
	}

	err := query.Limit(params.PerPage).Offset(params.CalculateOffset()).Find(&campaigns).Error
	return campaigns, totalCount, err
}

func (r *CampaignRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Campaign{})
	query = r.applyFilters(query, params)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return campaigns, 0, nil
	}

	err := query.Limit(params.PerPage).Offset(params.CalculateOffset()).Find(&campaigns).Error
	return campaigns, totalCount, err
}

func (r *CampaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Save(campaign).Error
}

// UpdateStatus is a compare-and-swap on the status column.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id uint, from, to models.CampaignStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return checkAffected(result)
}

func (r *CampaignRepository) UpdateStrategy(ctx context.Context, id uint, strategy models.StrategySummary) error {
	result := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"strategy_paid_count":        strategy.PaidCount,
			"strategy_hospitality_count": strategy.HospitalityCount,
			"strategy_total_cost":        strategy.TotalCost,
			"strategy_service_fee":       strategy.ServiceFee,
			"strategy_total_reach":       strategy.TotalReach,
			"strategy_remaining_budget":  strategy.RemainingBudget,
		})
	return checkAffected(result)
}

var _ ICampaignRepository = (*CampaignRepository)(nil)
