package game

import "time"

// ShotStep is the sub-step of the shot cycle evaluated on a frame.
type ShotStep uint8

const (
	StepAcquire ShotStep = iota
	StepBegin
	StepRelease
)

// ShotGoals are the two capture volumes of a shot gesture.
type ShotGoals struct {
	Start Vec3
	End   Vec3
}

// GoalsFor places the start and release goals beside the floor target, on the
// shooting-hand side, relative to the calibrated head height.
func GoalsFor(h Handedness, tier DistanceTier, headHeight float64) ShotGoals {
	_, side := h.shootingHand()
	x := FloorCenterX + side*ShotOffsetX
	return ShotGoals{
		Start: Vec3{X: x, Y: headHeight + ShotStartOffsetY, Z: FloorCenterZ + ShotStartOffsetZ},
		End:   Vec3{X: x, Y: headHeight + tier.releaseHeight(), Z: FloorCenterZ + ShotEndOffsetZ},
	}
}

// GestureScale is the depth cue for a capture-volume indicator at goal.
func GestureScale(goal Vec3) float64 {
	if goal.Z == 0 {
		return 0
	}
	return GestureScaleDepth / goal.Z
}

// ShotCommit describes a completed shot.
type ShotCommit struct {
	Points int           `json:"points"`
	Score  int           `json:"score"`
	Bonus  time.Duration `json:"bonus"`
}

// ShotOutcome is what one frame of the shot cycle did.
type ShotOutcome struct {
	Step    ShotStep
	Reached bool
	// Goal and Scale are set for StepBegin and StepRelease.
	Goal   Vec3
	Scale  float64
	Commit *ShotCommit
}

// ShotTracker runs the ball-acquisition and shot-capture cycle for the active hand.
type ShotTracker struct{}

// Advance evaluates exactly one step of the cycle in priority order and commits
// the shot when the release goal is captured. Missing joints never capture.
func (ShotTracker) Advance(s *GameSession, body *Body) ShotOutcome {
	handType, _ := s.Handedness.shootingHand()
	hand, hasHand := body.Position(handType)

	var out ShotOutcome
	switch {
	case !s.BallInHand:
		out.Step = StepAcquire
		spine, hasSpine := body.Position(JointSpineMid)
		if hasHand && hasSpine && HoldsBall(hand, spine) {
			s.BallInHand = true
			out.Reached = true
		}
	case !s.ShotBeginCaptured:
		out.Step = StepBegin
		out.Goal = s.ShotStartPos
		out.Scale = GestureScale(out.Goal)
		if hasHand && Near3D(hand, s.ShotStartPos, GestureEpsilon) {
			s.ShotBeginCaptured = true
			out.Reached = true
		}
	default:
		out.Step = StepRelease
		out.Goal = s.ShotEndPos
		out.Scale = GestureScale(out.Goal)
		if hasHand && Near3D(hand, s.ShotEndPos, GestureEpsilon) {
			s.ShotEndCaptured = true
			out.Reached = true
		}
	}

	if s.ShotEndCaptured {
		points := s.DistanceTier.Points()
		bonus := TimeBonus(points)
		s.Score += points
		s.CountdownDeadline = s.CountdownDeadline.Add(bonus)
		s.clearShot()
		out.Commit = &ShotCommit{Points: points, Score: s.Score, Bonus: bonus}
	}
	return out
}
