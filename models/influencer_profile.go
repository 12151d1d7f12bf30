package models

// InfluencerCategory is the content niche an influencer belongs to.
type InfluencerCategory string

const (
	CategoryFoodReviews InfluencerCategory = "food_reviews"
	CategoryLifestyle   InfluencerCategory = "lifestyle"
	CategoryFashion     InfluencerCategory = "fashion"
	CategoryTravel      InfluencerCategory = "travel"
	CategoryComedy      InfluencerCategory = "comedy"
	CategoryGeneral     InfluencerCategory = "general"
)

// ViewRange is the coarse average-views bracket an influencer self-reports
// per platform. pkg/views maps these to representative numbers.
type ViewRange string

const (
	ViewRange0To10K    ViewRange = "0-10k"
	ViewRange10To50K   ViewRange = "10k-50k"
	ViewRange50To100K  ViewRange = "50k-100k"
	ViewRange100To500K ViewRange = "100k-500k"
	ViewRange500KPlus  ViewRange = "500k+"
)

// InfluencerProfile is the public-facing creator profile built at
// onboarding. Approval and bank details are edited later by admins and the
// influencer respectively.
type InfluencerProfile struct {
	BaseModel
	UserID      uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DisplayName string `gorm:"type:varchar(150);not null" json:"display_name"`

	InstagramHandle string `gorm:"type:varchar(100)" json:"instagram_handle"`
	TikTokHandle    string `gorm:"type:varchar(100)" json:"tiktok_handle"`
	SnapchatHandle  string `gorm:"type:varchar(100)" json:"snapchat_handle"`
	YouTubeHandle   string `gorm:"type:varchar(100)" json:"youtube_handle"`

	// Cities the influencer covers, stored canonicalized (pkg/cities).
	Cities   []string           `gorm:"serializer:json;type:jsonb" json:"cities"`
	Category InfluencerCategory `gorm:"type:varchar(30);not null;default:'general';index" json:"category"`

	InstagramViewRange ViewRange `gorm:"type:varchar(20)" json:"instagram_view_range"`
	TikTokViewRange    ViewRange `gorm:"type:varchar(20)" json:"tiktok_view_range"`
	SnapchatViewRange  ViewRange `gorm:"type:varchar(20)" json:"snapchat_view_range"`

	// ViewsOverride, when positive, beats any bracket above.
	ViewsOverride int64 `gorm:"default:0" json:"views_override"`

	AcceptsHospitality bool    `gorm:"default:false" json:"accepts_hospitality"`
	AcceptsPaid        bool    `gorm:"default:true" json:"accepts_paid"`
	MinPrice           float64 `gorm:"default:0" json:"min_price"`
	MaxPrice           float64 `gorm:"default:0" json:"max_price"`

	IsApproved        bool   `gorm:"default:false;index" json:"is_approved"`
	BankName          string `gorm:"type:varchar(150)" json:"bank_name"`
	IBAN              string `gorm:"type:varchar(34)" json:"iban"`
	AgreementAccepted bool   `gorm:"default:false" json:"agreement_accepted"`
}

// PrimaryViewRange returns the highest self-reported bracket across
// platforms, preferring Instagram when set.
func (p *InfluencerProfile) PrimaryViewRange() ViewRange {
	for _, r := range []ViewRange{p.InstagramViewRange, p.TikTokViewRange, p.SnapchatViewRange} {
		if r != "" {
			return r
		}
	}
	return ""
}

// CollaborationCost is what inviting this influencer costs the campaign:
// the minimum price for paid collaborations, zero for hospitality-only.
func (p *InfluencerProfile) CollaborationCost() float64 {
	if !p.AcceptsPaid {
		return 0
	}
	return p.MinPrice
}
