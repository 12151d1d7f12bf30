package models

import "time"

// CampaignStatus tracks a campaign through its lifecycle.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusMatching  CampaignStatus = "matching"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// StrategySummary is the denormalized aggregate recomputed after every
// matching run: how the budget breaks down across the suggested lineup.
type StrategySummary struct {
	PaidCount        int     `gorm:"default:0" json:"paid_count"`
	HospitalityCount int     `gorm:"default:0" json:"hospitality_count"`
	TotalCost        float64 `gorm:"default:0" json:"total_cost"`
	ServiceFee       float64 `gorm:"default:0" json:"service_fee"`
	TotalReach       int64   `gorm:"default:0" json:"total_reach"`
	RemainingBudget  float64 `gorm:"default:0" json:"remaining_budget"`
}

// Campaign is an owner's marketing campaign for one location.
type Campaign struct {
	BaseModel
	OwnerID          uint           `gorm:"index;not null" json:"owner_id"`
	Owner            User           `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Title            string         `gorm:"type:varchar(255);not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	City             string         `gorm:"type:varchar(100);not null;index" json:"city"`
	Budget           float64        `gorm:"not null" json:"budget"`
	Status           CampaignStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Goal             string         `gorm:"type:varchar(255)" json:"goal"`
	StartDate        *time.Time     `gorm:"type:timestamptz" json:"start_date,omitempty"`
	DurationDays     int            `gorm:"default:0" json:"duration_days"`
	OfferHospitality bool           `gorm:"default:false" json:"offer_hospitality"`

	Strategy StrategySummary `gorm:"embedded;embeddedPrefix:strategy_" json:"strategy"`

	Suggestions []Suggestion `gorm:"foreignKey:CampaignID" json:"suggestions,omitempty"`
	Invitations []Invitation `gorm:"foreignKey:CampaignID" json:"invitations,omitempty"`
}
