package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tarweej.app/configs/configslog"
	"tarweej.app/models"
	"tarweej.app/pkg/cities"
	"tarweej.app/pkg/queryparams"
	"tarweej.app/repositories"
)

// InfluencerServiceError is the typed error family for influencer profiles.
type InfluencerServiceError string

func (e InfluencerServiceError) Error() string { return string(e) }

const (
	ErrProfileNotFound      InfluencerServiceError = "influencer profile not found"
	ErrProfileExists        InfluencerServiceError = "influencer profile already exists"
	ErrProfileInvalidInput  InfluencerServiceError = "invalid profile data"
	ErrProfileNameRequired  InfluencerServiceError = "display name is required"
	ErrProfileCityRequired  InfluencerServiceError = "at least one covered city is required"
	ErrProfileNoCompensation InfluencerServiceError = "profile must accept paid or hospitality collaborations"
	ErrProfileIBANInvalid   InfluencerServiceError = "IBAN is not valid"
)

// IInfluencerService covers influencer onboarding, self-service edits and
// admin approval.
type IInfluencerService interface {
	CreateProfile(ctx context.Context, userID uint, profile models.InfluencerProfile) (*models.InfluencerProfile, error)
	GetProfileByUser(ctx context.Context, userID uint) (*models.InfluencerProfile, error)
	UpdateProfile(ctx context.Context, userID uint, updates models.InfluencerProfile) error
	UpdateBankDetails(ctx context.Context, userID uint, bankName, iban string) error
	ListProfiles(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	SetApproval(ctx context.Context, profileID uint, approved bool) error
}

type InfluencerService struct {
	repo repositories.IInfluencerRepository
}

func NewInfluencerService() IInfluencerService {
	return &InfluencerService{repo: repositories.NewInfluencerRepository()}
}

// ValidateProfile applies the onboarding boundary checks.
func ValidateProfile(profile *models.InfluencerProfile) error {
	if profile.DisplayName == "" {
		return ErrProfileNameRequired
	}
	if len(profile.Cities) == 0 {
		return ErrProfileCityRequired
	}
	if !profile.AcceptsPaid && !profile.AcceptsHospitality {
		return ErrProfileNoCompensation
	}
	if profile.AcceptsPaid && profile.MinPrice <= 0 {
		return fmt.Errorf("%w: paid profiles need a minimum price", ErrProfileInvalidInput)
	}
	if profile.MaxPrice > 0 && profile.MaxPrice < profile.MinPrice {
		return fmt.Errorf("%w: max price below min price", ErrProfileInvalidInput)
	}
	return nil
}

// validIBAN checks the Saudi format: "SA" followed by 22 digits. Only a
// shape check; ownership verification happens off-platform.
func validIBAN(iban string) bool {
	iban = strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	if len(iban) != 24 || !strings.HasPrefix(iban, "SA") {
		return false
	}
	for _, r := range iban[2:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func normalizeCities(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		n := cities.Normalize(c)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func (s *InfluencerService) CreateProfile(ctx context.Context, userID uint, profile models.InfluencerProfile) (*models.InfluencerProfile, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: missing user", ErrProfileInvalidInput)
	}
	profile.Cities = normalizeCities(profile.Cities)
	if err := ValidateProfile(&profile); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByUserID(ctx, userID); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	profile.UserID = userID
	profile.IsApproved = false
	if err := s.repo.Create(ctx, &profile); err != nil {
		configslog.Log.Error("profile create failed", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("influencer profile created: id=%d user=%d cities=%v",
		profile.ID, userID, profile.Cities)
	return &profile, nil
}

func (s *InfluencerService) GetProfileByUser(ctx context.Context, userID uint) (*models.InfluencerProfile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *InfluencerService) UpdateProfile(ctx context.Context, userID uint, updates models.InfluencerProfile) error {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	profile.DisplayName = updates.DisplayName
	profile.InstagramHandle = updates.InstagramHandle
	profile.TikTokHandle = updates.TikTokHandle
	profile.SnapchatHandle = updates.SnapchatHandle
	profile.YouTubeHandle = updates.YouTubeHandle
	profile.Cities = normalizeCities(updates.Cities)
	profile.Category = updates.Category
	profile.InstagramViewRange = updates.InstagramViewRange
	profile.TikTokViewRange = updates.TikTokViewRange
	profile.SnapchatViewRange = updates.SnapchatViewRange
	profile.ViewsOverride = updates.ViewsOverride
	profile.AcceptsHospitality = updates.AcceptsHospitality
	profile.AcceptsPaid = updates.AcceptsPaid
	profile.MinPrice = updates.MinPrice
	profile.MaxPrice = updates.MaxPrice
	profile.AgreementAccepted = updates.AgreementAccepted

	if err := ValidateProfile(profile); err != nil {
		return err
	}
	return s.repo.Update(ctx, profile)
}

func (s *InfluencerService) UpdateBankDetails(ctx context.Context, userID uint, bankName, iban string) error {
	if !validIBAN(iban) {
		return ErrProfileIBANInvalid
	}
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	profile.BankName = bankName
	profile.IBAN = strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	return s.repo.Update(ctx, profile)
}

func (s *InfluencerService) ListProfiles(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	profiles, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: profiles,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

func (s *InfluencerService) SetApproval(ctx context.Context, profileID uint, approved bool) error {
	if err := s.repo.SetApproval(ctx, profileID, approved); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return ErrProfileNotFound
		}
		return err
	}
	configslog.SLog.Infof("influencer approval set: id=%d approved=%t", profileID, approved)
	return nil
}

var _ IInfluencerService = (*InfluencerService)(nil)
