package game

import (
	"strconv"
	"time"
)

// Clock is the wall-clock source read once per frame.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads time.Now.
var SystemClock Clock = systemClock{}

// RemainingMs is the signed time left before deadline.
func RemainingMs(deadline, now time.Time) int64 {
	return deadline.Sub(now).Milliseconds()
}

// RemainingSeconds converts remaining milliseconds to seconds, floored at zero.
func RemainingSeconds(remainingMs int64) float64 {
	if remainingMs < 0 {
		remainingMs = 0
	}
	return float64(remainingMs) / 1000
}

// FormatSeconds renders seconds with one decimal place for the HUD.
func FormatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 1, 64)
}

// TimeBonus is the countdown extension for a shot worth points.
// Integer division matches the scoring table: 1 -> 333ms, 2 -> 666ms, 3 -> 1000ms.
func TimeBonus(points int) time.Duration {
	return time.Duration(points*1000/3) * time.Millisecond
}
