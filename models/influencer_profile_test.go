package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryViewRange(t *testing.T) {
	p := InfluencerProfile{}
	assert.Equal(t, ViewRange(""), p.PrimaryViewRange())

	p.SnapchatViewRange = ViewRange10To50K
	assert.Equal(t, ViewRange10To50K, p.PrimaryViewRange())

	p.TikTokViewRange = ViewRange50To100K
	assert.Equal(t, ViewRange50To100K, p.PrimaryViewRange())

	p.InstagramViewRange = ViewRange0To10K
	assert.Equal(t, ViewRange0To10K, p.PrimaryViewRange(), "Instagram wins when set")
}

func TestCollaborationCost(t *testing.T) {
	paid := InfluencerProfile{AcceptsPaid: true, MinPrice: 900}
	assert.Equal(t, 900.0, paid.CollaborationCost())

	hospitality := InfluencerProfile{AcceptsPaid: false, AcceptsHospitality: true, MinPrice: 900}
	assert.Equal(t, 0.0, hospitality.CollaborationCost())
}
