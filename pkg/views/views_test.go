package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateOverrideWins(t *testing.T) {
	assert.Equal(t, int64(123456), Estimate(123456, "0-10k"))
	assert.Equal(t, int64(1), Estimate(1, "500k+"))
}

func TestEstimateBracketMidpoints(t *testing.T) {
	cases := map[string]int64{
		"0-10k":     5000,
		"10k-50k":   30000,
		"50k-100k":  75000,
		"100k-500k": 300000,
		"500k+":     750000,
	}
	for bracket, want := range cases {
		assert.Equal(t, want, Estimate(0, bracket), "bracket %q", bracket)
	}
}

func TestEstimateDefault(t *testing.T) {
	assert.Equal(t, int64(DefaultEstimate), Estimate(0, ""))
	assert.Equal(t, int64(DefaultEstimate), Estimate(0, "unknown-bracket"))
	assert.Equal(t, int64(DefaultEstimate), Estimate(-10, ""))
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		count int64
		want  string
	}{
		{0, "—"},
		{-5, "—"},
		{999, "999"},
		{1000, "1K"},
		{1499, "1K"},
		{1500, "2K"},
		{50000, "50K"},
		{999499, "999K"},
		{999_999, "1.0M"},
		{1_000_000, "1.0M"},
		{1_200_000, "1.2M"},
		{12_345_678, "12.3M"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCount(tc.count), "count %d", tc.count)
	}
}
