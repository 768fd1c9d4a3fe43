package game

import (
	"fmt"
	"time"
)

// Phase is the controller's current state.
type Phase uint8

const (
	PhaseCalibrating Phase = iota
	PhaseSelectHand
	PhaseSelectDistance
	PhasePlaying
	PhaseRoundOver
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseCalibrating:
		return "CALIBRATING"
	case PhaseSelectHand:
		return "SELECT_HAND"
	case PhaseSelectDistance:
		return "SELECT_DISTANCE"
	case PhasePlaying:
		return "PLAYING"
	case PhaseRoundOver:
		return "ROUND_OVER"
	case PhaseTerminated:
		return "TERMINATED"
	}
	return "UNKNOWN"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for candidate := PhaseCalibrating; candidate <= PhaseTerminated; candidate++ {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Handedness is the shooting hand the player picked.
type Handedness uint8

const (
	HandednessUnselected Handedness = iota
	LeftHanded
	RightHanded
)

func (h Handedness) String() string {
	switch h {
	case LeftHanded:
		return "LEFT"
	case RightHanded:
		return "RIGHT"
	}
	return "UNSELECTED"
}

// shootingHand is the joint used for shots, and the sign of the goal X offset.
func (h Handedness) shootingHand() (JointType, float64) {
	if h == LeftHanded {
		return JointHandLeft, -1
	}
	return JointHandRight, 1
}

// DistanceTier is the selected shot distance. Its value is the point value of a shot.
type DistanceTier uint8

const (
	TierUnselected DistanceTier = iota
	TierNear
	TierMid
	TierFar
)

func (t DistanceTier) String() string {
	switch t {
	case TierNear:
		return "FREE_THROW"
	case TierMid:
		return "ZONE"
	case TierFar:
		return "THREE_POINTER"
	}
	return "UNSELECTED"
}

// Points is the score awarded for a completed shot at this tier.
func (t DistanceTier) Points() int {
	if t > TierFar {
		return 0
	}
	return int(t)
}

// releaseHeight is how far above the calibrated head height the release goal sits.
func (t DistanceTier) releaseHeight() float64 {
	switch t {
	case TierNear:
		return 0.10
	case TierMid:
		return 0.15
	}
	return 0.20
}

// GameSession is the mutable state of one player's session. It is owned by a
// Controller and mutated once per frame; reset mutates fields in place.
type GameSession struct {
	Phase                Phase
	CalibratedHeadHeight float64
	Handedness           Handedness
	DistanceTier         DistanceTier
	BallInHand           bool
	ShotBeginCaptured    bool
	ShotEndCaptured      bool
	Score                int
	RemainingTimeMs      int64
	CountdownDeadline    time.Time
	ShotStartPos         Vec3
	ShotEndPos           Vec3

	countdownArmed bool
}

// NewGameSession returns a session waiting for floor calibration.
func NewGameSession() *GameSession {
	return &GameSession{
		Phase:                PhaseCalibrating,
		CalibratedHeadHeight: UncalibratedHeadHeight,
	}
}

// armCountdown starts the round clock once. It reports whether it armed.
func (s *GameSession) armCountdown(now time.Time, round time.Duration) bool {
	if s.countdownArmed {
		return false
	}
	s.CountdownDeadline = now.Add(round)
	s.RemainingTimeMs = round.Milliseconds()
	s.countdownArmed = true
	return true
}

func (s *GameSession) clearShot() {
	s.BallInHand = false
	s.ShotBeginCaptured = false
	s.ShotEndCaptured = false
}

// resetRound restarts play with the same hand and distance.
func (s *GameSession) resetRound(now time.Time, round time.Duration) {
	s.clearShot()
	s.Score = 0
	s.countdownArmed = false
	s.armCountdown(now, round)
	s.Phase = PhasePlaying
}

// SessionSnapshot is a read-only copy of a GameSession for UI binding.
type SessionSnapshot struct {
	Phase                string    `json:"phase"`
	CalibratedHeadHeight float64   `json:"calibrated_head_height"`
	Handedness           string    `json:"handedness"`
	DistanceTier         int       `json:"distance_tier"`
	DistanceName         string    `json:"distance_name"`
	BallInHand           bool      `json:"ball_in_hand"`
	ShotBeginCaptured    bool      `json:"shot_begin_captured"`
	ShotEndCaptured      bool      `json:"shot_end_captured"`
	Score                int       `json:"score"`
	RemainingTimeMs      int64     `json:"remaining_time_ms"`
	RemainingTime        string    `json:"remaining_time"`
	CountdownDeadline    time.Time `json:"countdown_deadline"`
	ShotStartPos         Vec3      `json:"shot_start_pos"`
	ShotEndPos           Vec3      `json:"shot_end_pos"`
}

// Snapshot copies the session for observers.
func (s *GameSession) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		Phase:                s.Phase.String(),
		CalibratedHeadHeight: s.CalibratedHeadHeight,
		Handedness:           s.Handedness.String(),
		DistanceTier:         int(s.DistanceTier),
		DistanceName:         s.DistanceTier.String(),
		BallInHand:           s.BallInHand,
		ShotBeginCaptured:    s.ShotBeginCaptured,
		ShotEndCaptured:      s.ShotEndCaptured,
		Score:                s.Score,
		RemainingTimeMs:      s.RemainingTimeMs,
		RemainingTime:        FormatSeconds(RemainingSeconds(s.RemainingTimeMs)),
		CountdownDeadline:    s.CountdownDeadline,
		ShotStartPos:         s.ShotStartPos,
		ShotEndPos:           s.ShotEndPos,
	}
}
