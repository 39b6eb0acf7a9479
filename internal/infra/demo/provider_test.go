package demo

import (
	"testing"

	"pulse/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(seed int64) *provider {
	cfg := &config.Config{Demo: &config.DemoConfig{RandSeed: seed}}

	return NewProvider(cfg).(*provider)
}

func TestProvider_VisitorCount_WithinRange(t *testing.T) {
	p := newTestProvider(42)

	for i := 0; i < 100; i++ {
		count := p.VisitorCount()
		assert.GreaterOrEqual(t, count, 50)
		assert.LessOrEqual(t, count, 350)
	}
}

func TestProvider_GenderSplit_SumsToHundred(t *testing.T) {
	p := newTestProvider(42)

	for i := 0; i < 100; i++ {
		male, female := p.GenderSplit()
		assert.Equal(t, 100, male+female)
		assert.GreaterOrEqual(t, male, 40)
		assert.LessOrEqual(t, male, 80)
	}
}

func TestProvider_DistanceKm_WithinRange(t *testing.T) {
	p := newTestProvider(42)

	for i := 0; i < 100; i++ {
		d := p.DistanceKm()
		assert.GreaterOrEqual(t, d, 5.0)
		assert.LessOrEqual(t, d, 55.0)
	}
}

func TestProvider_FixedSeedIsReproducible(t *testing.T) {
	a := newTestProvider(7)
	b := newTestProvider(7)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.VisitorCount(), b.VisitorCount())
	}
}

func TestProvider_FillerGuests_StablePerVenue(t *testing.T) {
	p := newTestProvider(1)
	venueID := uuid.New()

	first := p.FillerGuests(venueID)
	second := p.FillerGuests(venueID)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, len(first), 3)
	assert.LessOrEqual(t, len(first), 5)
}
