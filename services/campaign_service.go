package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tarweej.app/configs/configslog"
	"tarweej.app/models"
	"tarweej.app/pkg/cities"
	"tarweej.app/pkg/queryparams"
	"tarweej.app/repositories"
)

// CampaignServiceError is the typed error family for campaigns.
type CampaignServiceError string

func (e CampaignServiceError) Error() string { return string(e) }

const (
	ErrCampaignNotFound      CampaignServiceError = "campaign not found"
	ErrCampaignForbidden     CampaignServiceError = "not allowed for this campaign"
	ErrCampaignInvalidInput  CampaignServiceError = "invalid campaign data"
	ErrCampaignTitleRequired CampaignServiceError = "campaign title is required"
	ErrCampaignCityRequired  CampaignServiceError = "campaign city is required"
	ErrCampaignBudgetTooLow  CampaignServiceError = "campaign budget is below the minimum"
)

// MinCampaignBudget is the smallest budget (SAR) a campaign may carry.
const MinCampaignBudget = 500

// ICampaignService covers owner-side campaign CRUD.
type ICampaignService interface {
	CreateCampaign(ctx context.Context, ownerID uint, campaign models.Campaign) (*models.Campaign, error)
	GetCampaign(ctx context.Context, id, requestingUserID uint, isAdmin bool) (*models.Campaign, error)
	GetCampaignsForOwner(ctx context.Context, ownerID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAllCampaigns(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateCampaign(ctx context.Context, id, ownerID uint, updates models.Campaign) error
}

type CampaignService struct {
	repo repositories.ICampaignRepository
}

func NewCampaignService() ICampaignService {
	return &CampaignService{repo: repositories.NewCampaignRepository()}
}

// ValidateCampaign applies the boundary checks shared by create and update.
func ValidateCampaign(campaign *models.Campaign) error {
	if campaign.Title == "" {
		return ErrCampaignTitleRequired
	}
	if campaign.City == "" {
		return ErrCampaignCityRequired
	}
	if campaign.Budget < MinCampaignBudget {
		return fmt.Errorf("%w: minimum is %d SAR", ErrCampaignBudgetTooLow, MinCampaignBudget)
	}
	if campaign.DurationDays < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrCampaignInvalidInput)
	}
	return nil
}

func (s *CampaignService) CreateCampaign(ctx context.Context, ownerID uint, campaign models.Campaign) (*models.Campaign, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("%w: missing owner", ErrCampaignInvalidInput)
	}
	if err := ValidateCampaign(&campaign); err != nil {
		return nil, err
	}

	campaign.OwnerID = ownerID
	campaign.City = cities.Normalize(campaign.City)
	campaign.Status = models.CampaignStatusDraft
	campaign.Strategy = models.StrategySummary{RemainingBudget: campaign.Budget}

	if err := s.repo.Create(ctx, &campaign); err != nil {
		configslog.Log.Error("campaign create failed", zap.Uint("ownerID", ownerID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("campaign created: id=%d owner=%d city=%s budget=%.0f",
		campaign.ID, ownerID, campaign.City, campaign.Budget)
	return &campaign, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, id, requestingUserID uint, isAdmin bool) (*models.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if !isAdmin && campaign.OwnerID != requestingUserID {
		return nil, ErrCampaignForbidden
	}
	return campaign, nil
}

func (s *CampaignService) GetCampaignsForOwner(ctx context.Context, ownerID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	campaigns, totalCount, err := s.repo.FindAllByOwnerPaginated(ctx, ownerID, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: campaigns,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

func (s *CampaignService) GetAllCampaigns(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	campaigns, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: campaigns,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateCampaign lets the owner edit the descriptive fields. Budget edits
// are allowed while the campaign is still a draft; once matching has run
// the budget is locked to keep the suggestion math honest.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id, ownerID uint, updates models.Campaign) error {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if campaign.OwnerID != ownerID {
		return ErrCampaignForbidden
	}

	campaign.Title = updates.Title
	campaign.Description = updates.Description
	campaign.Goal = updates.Goal
	campaign.StartDate = updates.StartDate
	campaign.DurationDays = updates.DurationDays
	campaign.OfferHospitality = updates.OfferHospitality
	if updates.City != "" {
		campaign.City = cities.Normalize(updates.City)
	}
	if campaign.Status == models.CampaignStatusDraft && updates.Budget > 0 {
		campaign.Budget = updates.Budget
		campaign.Strategy.RemainingBudget = updates.Budget
	}

	if err := ValidateCampaign(campaign); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, campaign); err != nil {
		configslog.Log.Error("campaign update failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

var _ ICampaignService = (*CampaignService)(nil)
