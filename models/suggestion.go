package models

import "time"

// Suggestion is a scored, unconfirmed pairing of an influencer to a
// campaign, produced by a matching run. It snapshots the influencer fields
// that mattered at scoring time; once selected it is superseded by an
// Invitation and never mutated again.
type Suggestion struct {
	BaseModel
	CampaignID   uint              `gorm:"not null;index:idx_suggestion_pair,unique" json:"campaign_id"`
	InfluencerID uint              `gorm:"not null;index:idx_suggestion_pair,unique" json:"influencer_id"`
	Influencer   InfluencerProfile `gorm:"foreignKey:InfluencerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Snapshot of the influencer at matching time.
	DisplayName    string             `gorm:"type:varchar(150)" json:"display_name"`
	Category       InfluencerCategory `gorm:"type:varchar(30)" json:"category"`
	City           string             `gorm:"type:varchar(100)" json:"city"`
	EstimatedViews int64              `gorm:"default:0" json:"estimated_views"`
	Price          float64            `gorm:"default:0" json:"price"`
	IsHospitality  bool               `gorm:"default:false" json:"is_hospitality"`

	MatchScore    int        `gorm:"not null;index" json:"match_score"`
	Rationale     string     `gorm:"type:text" json:"rationale"`
	Selected      bool       `gorm:"default:false;index" json:"selected"`
	ScheduledDate *time.Time `gorm:"type:timestamptz" json:"scheduled_date,omitempty"`
}
