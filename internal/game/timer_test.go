package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeBonusTruncates(t *testing.T) {
	want := map[int]time.Duration{
		1: 333 * time.Millisecond,
		2: 666 * time.Millisecond,
		3: 1000 * time.Millisecond,
	}
	for points, d := range want {
		if got := TimeBonus(points); got != d {
			t.Errorf("TimeBonus(%d) = %v, want %v", points, got, d)
		}
	}
}

func TestRemainingSeconds(t *testing.T) {
	assert.Equal(t, 0.0, RemainingSeconds(-250))
	assert.Equal(t, 0.0, RemainingSeconds(0))
	assert.Equal(t, 12.345, RemainingSeconds(12345))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "30.0", FormatSeconds(30))
	assert.Equal(t, "12.3", FormatSeconds(12.34))
	assert.Equal(t, "0.0", FormatSeconds(RemainingSeconds(-1)))
}

func TestRemainingMs(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(1500), RemainingMs(now.Add(1500*time.Millisecond), now))
	assert.Equal(t, int64(-20), RemainingMs(now.Add(-20*time.Millisecond), now))
}
