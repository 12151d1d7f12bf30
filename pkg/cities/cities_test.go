package cities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKnownVariants(t *testing.T) {
	cases := map[string]string{
		"riyadh":    "Riyadh",
		"Riyadh":    "Riyadh",
		"RIYADH":    "Riyadh",
		"الرياض":    "Riyadh",
		"  jeddah ": "Jeddah",
		"mecca":     "Makkah",
		"medina":    "Madinah",
		"al-khobar": "Khobar",
		"hofuf":     "Al Ahsa",
		"جدة":       "Jeddah",
	}
	for input, want := range cases {
		assert.Equal(t, want, Normalize(input), "input %q", input)
	}
}

func TestNormalizeFailsOpen(t *testing.T) {
	assert.Equal(t, "Atlantis", Normalize("Atlantis"))
	assert.Equal(t, "Atlantis", Normalize("  Atlantis  "))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalizeIdempotent(t *testing.T) {
	for canonical := range canonicalVariants {
		assert.Equal(t, canonical, Normalize(canonical))
		assert.Equal(t, canonical, Normalize(Normalize(canonical)))
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("riyadh", "الرياض"))
	assert.True(t, Match("الرياض", "riyadh"), "matching is symmetric")
	assert.True(t, Match("mecca", "Makkah"))
	assert.False(t, Match("riyadh", "jeddah"))

	// Unknown cities still match themselves exactly.
	assert.True(t, Match("Atlantis", "atlantis"))
	assert.False(t, Match("Atlantis", "El Dorado"))

	assert.False(t, Match("", "riyadh"))
	assert.False(t, Match("riyadh", ""))
}

func TestMatchAny(t *testing.T) {
	coverage := []string{"جدة", "Dammam"}
	assert.True(t, MatchAny(coverage, "jeddah"))
	assert.True(t, MatchAny(coverage, "الدمام"))
	assert.False(t, MatchAny(coverage, "riyadh"))
	assert.False(t, MatchAny(nil, "riyadh"))
}
