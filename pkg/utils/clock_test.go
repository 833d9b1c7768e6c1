package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	clock := NewRealClock()

	before := time.Now()
	actual := clock.Now()
	after := time.Now()

	assert.True(t, !actual.Before(before))
	assert.True(t, !actual.After(after))
}

func TestMockClock_Now(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(startTime)

	assert.Equal(t, startTime, clock.Now())
}

func TestMockClock_Advance(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(startTime)

	clock.Advance(1 * time.Hour)

	assert.Equal(t, startTime.Add(1*time.Hour), clock.Now())
}

func TestMockClock_AdvanceIsCumulative(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(startTime)

	for i := 0; i < 3; i++ {
		clock.Advance(1 * time.Hour)
	}

	assert.Equal(t, startTime.Add(3*time.Hour), clock.Now())
}

func TestClockInterface(t *testing.T) {
	// Verify both implementations satisfy the Clock interface.
	var _ Clock = &RealClock{}
	var _ Clock = &MockClock{}
}
