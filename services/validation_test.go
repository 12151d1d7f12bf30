package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tarweej.app/models"
)

func TestValidateCampaign(t *testing.T) {
	valid := models.Campaign{Title: "Ramadan Launch", City: "Riyadh", Budget: 5000}
	assert.NoError(t, ValidateCampaign(&valid))

	noTitle := valid
	noTitle.Title = ""
	assert.ErrorIs(t, ValidateCampaign(&noTitle), ErrCampaignTitleRequired)

	noCity := valid
	noCity.City = ""
	assert.ErrorIs(t, ValidateCampaign(&noCity), ErrCampaignCityRequired)

	lowBudget := valid
	lowBudget.Budget = MinCampaignBudget - 1
	assert.ErrorIs(t, ValidateCampaign(&lowBudget), ErrCampaignBudgetTooLow)

	atMinimum := valid
	atMinimum.Budget = MinCampaignBudget
	assert.NoError(t, ValidateCampaign(&atMinimum))

	negativeDuration := valid
	negativeDuration.DurationDays = -1
	assert.ErrorIs(t, ValidateCampaign(&negativeDuration), ErrCampaignInvalidInput)
}

func TestValidateProfile(t *testing.T) {
	valid := models.InfluencerProfile{
		DisplayName: "Sara",
		Cities:      []string{"Riyadh"},
		AcceptsPaid: true,
		MinPrice:    800,
	}
	assert.NoError(t, ValidateProfile(&valid))

	noName := valid
	noName.DisplayName = ""
	assert.ErrorIs(t, ValidateProfile(&noName), ErrProfileNameRequired)

	noCities := valid
	noCities.Cities = nil
	assert.ErrorIs(t, ValidateProfile(&noCities), ErrProfileCityRequired)

	noCompensation := valid
	noCompensation.AcceptsPaid = false
	noCompensation.AcceptsHospitality = false
	assert.ErrorIs(t, ValidateProfile(&noCompensation), ErrProfileNoCompensation)

	paidWithoutPrice := valid
	paidWithoutPrice.MinPrice = 0
	assert.ErrorIs(t, ValidateProfile(&paidWithoutPrice), ErrProfileInvalidInput)

	invertedPrices := valid
	invertedPrices.MinPrice = 1000
	invertedPrices.MaxPrice = 500
	assert.ErrorIs(t, ValidateProfile(&invertedPrices), ErrProfileInvalidInput)

	hospitalityOnly := models.InfluencerProfile{
		DisplayName:        "Noor",
		Cities:             []string{"Jeddah"},
		AcceptsHospitality: true,
	}
	assert.NoError(t, ValidateProfile(&hospitalityOnly))
}

func TestValidIBAN(t *testing.T) {
	assert.True(t, validIBAN("SA0380000000608010167519"))
	assert.True(t, validIBAN("sa03 8000 0000 6080 1016 7519"), "spacing and case are tolerated")

	assert.False(t, validIBAN(""))
	assert.False(t, validIBAN("SA038000000060801016751"), "too short")
	assert.False(t, validIBAN("SA03800000006080101675190"), "too long")
	assert.False(t, validIBAN("GB0380000000608010167519"), "not a Saudi IBAN")
	assert.False(t, validIBAN("SA03800000006080101675X9"), "non-digit body")
}

func TestNormalizeCities(t *testing.T) {
	out := normalizeCities([]string{"riyadh", "الرياض", "  jeddah ", "", "Atlantis"})
	assert.Equal(t, []string{"Riyadh", "Jeddah", "Atlantis"}, out)
}
