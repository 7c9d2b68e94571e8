package planextract_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/takeoff-go/internal/adapters/planextract"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

func TestBreaker_HalfOpenTrialClosesOnSuccess(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	b := planextract.NewBreaker(1, time.Minute, clock)
	boom := errors.New("boom")

	// Act
	assert.Equal(t, boom, b.Do(func() error { return boom }))
	assert.Equal(t, planextract.BreakerOpen, b.State())
	assert.ErrorIs(t, b.Do(func() error { return nil }), planextract.ErrCircuitOpen)

	clock.Advance(time.Minute)
	err := b.Do(func() error { return nil })

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, planextract.BreakerClosed, b.State())
	assert.Equal(t, 0, b.Failures())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	b := planextract.NewBreaker(3, time.Minute, clock)
	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		_ = b.Do(func() error { return boom })
	}
	assert.Equal(t, planextract.BreakerOpen, b.State())

	clock.Advance(2 * time.Minute)
	_ = b.Do(func() error { return boom })

	assert.Equal(t, planextract.BreakerOpen, b.State())
	assert.Equal(t, "open", b.State().String())
}
