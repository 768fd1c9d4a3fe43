package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalibrationBothFeetInside(t *testing.T) {
	c, _ := newTestController()

	res := c.Step(frameOf(standingBody()))

	require.NotNil(t, res.Transition)
	assert.Equal(t, PhaseCalibrating, res.Transition.From)
	assert.Equal(t, PhaseSelectHand, res.Transition.To)
	assert.Equal(t, PhaseSelectHand, c.session.Phase)
	assert.Equal(t, 1.8, c.session.CalibratedHeadHeight)

	ellipses := findKind(res.Commands, KindEllipse)
	require.Len(t, ellipses, 1)
	assert.Equal(t, FloorEllipseRXPlaced, ellipses[0].RadiusX)
}

func TestCalibrationOneFootNeverTransitions(t *testing.T) {
	c, _ := newTestController()
	b := standingBody()
	setJoint(&b, JointFootRight, Vec3{X: 0.5, Y: -1, Z: 2.5})
	setJoint(&b, JointHead, Vec3{X: 0.4, Y: 1.8, Z: 2.8})

	for i := 0; i < 5; i++ {
		res := c.Step(frameOf(b))
		assert.Nil(t, res.Transition)
		assert.True(t, hasText(res.Commands, "Move left and forward"))
	}
	assert.Equal(t, PhaseCalibrating, c.session.Phase)
	assert.Equal(t, UncalibratedHeadHeight, c.session.CalibratedHeadHeight)
}

func TestCalibrationMissingFootStays(t *testing.T) {
	c, _ := newTestController()
	b := standingBody()
	removeJoint(&b, JointFootLeft)

	c.Step(frameOf(b))
	assert.Equal(t, PhaseCalibrating, c.session.Phase)
}

func TestIdleFrameChangesNothing(t *testing.T) {
	c, _ := newTestController()
	b := standingBody()
	b.IsTracked = false

	res := c.Step(frameOf(b))
	assert.True(t, res.Idle)
	assert.Len(t, res.Commands, 1)
	assert.Equal(t, KindBackgroundImage, res.Commands[0].Kind)
	assert.Equal(t, PhaseCalibrating, c.session.Phase)

	res = c.Step(&Frame{})
	assert.True(t, res.Idle)

	res = c.Step(nil)
	assert.True(t, res.Idle)
}

func TestOnlyFirstTrackedBodyPlays(t *testing.T) {
	c, _ := newTestController()
	ghost := standingBody()
	ghost.IsTracked = false
	offTarget := standingBody()
	setJoint(&offTarget, JointFootLeft, Vec3{X: 1, Y: -1, Z: 2.5})
	onTarget := standingBody()

	c.Step(frameOf(ghost, offTarget, onTarget))
	assert.Equal(t, PhaseCalibrating, c.session.Phase, "second tracked body must be ignored")
}

func TestSelectHand(t *testing.T) {
	t.Run("left", func(t *testing.T) {
		c, _ := newTestController()
		c.session.Phase = PhaseSelectHand
		b := standingBody()
		setJoint(&b, JointHandLeft, Vec3{X: 150, Y: 175, Z: 2.5})
		b.HandLeft = HandClosed

		res := c.Step(frameOf(b))
		assert.Equal(t, LeftHanded, c.session.Handedness)
		assert.Equal(t, PhaseSelectDistance, c.session.Phase)
		assert.NotNil(t, res.Transition)
	})

	t.Run("right", func(t *testing.T) {
		c, _ := newTestController()
		c.session.Phase = PhaseSelectHand
		b := standingBody()
		setJoint(&b, JointHandRight, Vec3{X: DefaultDisplayWidth - 150, Y: 175, Z: 2.5})
		b.HandRight = HandClosed

		c.Step(frameOf(b))
		assert.Equal(t, RightHanded, c.session.Handedness)
		assert.Equal(t, PhaseSelectDistance, c.session.Phase)
	})

	t.Run("open hand only hovers", func(t *testing.T) {
		c, _ := newTestController()
		c.session.Phase = PhaseSelectHand
		b := standingBody()
		setJoint(&b, JointHandLeft, Vec3{X: 150, Y: 175, Z: 2.5})

		res := c.Step(frameOf(b))
		assert.Equal(t, PhaseSelectHand, c.session.Phase)
		assert.Equal(t, HandednessUnselected, c.session.Handedness)
		assert.True(t, hasImage(res.Commands, "hand_left_pressed"))
		assert.True(t, hasImage(res.Commands, "hand_right"))
	})

	t.Run("wrong hand does not select", func(t *testing.T) {
		c, _ := newTestController()
		c.session.Phase = PhaseSelectHand
		b := standingBody()
		setJoint(&b, JointHandRight, Vec3{X: 150, Y: 175, Z: 2.5})
		b.HandRight = HandClosed

		c.Step(frameOf(b))
		assert.Equal(t, PhaseSelectHand, c.session.Phase)
	})
}

func TestSelectDistanceFarArmsCountdown(t *testing.T) {
	c, clock := newTestController()
	c.session.Phase = PhaseSelectDistance
	c.session.CalibratedHeadHeight = 1.8
	c.session.Handedness = RightHanded
	b := standingBody()
	setJoint(&b, JointHandRight, Vec3{X: 400, Y: 200, Z: 2.5})
	b.HandRight = HandClosed

	c.Step(frameOf(b))

	assert.Equal(t, TierFar, c.session.DistanceTier)
	assert.Equal(t, PhasePlaying, c.session.Phase)
	assert.Equal(t, clock.Now().Add(30*time.Second), c.session.CountdownDeadline)
	assert.Equal(t, int64(30000), c.session.RemainingTimeMs)
}

func TestSelectDistanceEitherHand(t *testing.T) {
	c, _ := newTestController()
	c.session.Phase = PhaseSelectDistance
	c.session.Handedness = RightHanded
	b := standingBody()
	setJoint(&b, JointHandLeft, Vec3{X: 250, Y: 100, Z: 2.5})
	b.HandLeft = HandClosed

	c.Step(frameOf(b))
	assert.Equal(t, TierMid, c.session.DistanceTier)
}

func TestCountdownArmsOnce(t *testing.T) {
	c, clock := newTestController()
	c.session.Phase = PhaseSelectDistance
	b := standingBody()
	setJoint(&b, JointHandRight, Vec3{X: 100, Y: 200, Z: 2.5})
	b.HandRight = HandClosed

	c.Step(frameOf(b))
	deadline := c.session.CountdownDeadline

	// Re-entering selection while the latch is held must not extend the clock.
	clock.Advance(5 * time.Second)
	c.session.Phase = PhaseSelectDistance
	c.Step(frameOf(b))
	assert.Equal(t, deadline, c.session.CountdownDeadline)
	assert.False(t, c.session.armCountdown(clock.Now(), c.round))
}

func TestPlayingAcquiresBall(t *testing.T) {
	c, _ := playingController(TierNear)
	b := standingBody()
	spine, _ := b.Position(JointSpineMid)
	setJoint(&b, JointHandRight, Vec3{X: 0.3, Y: spine.Y - 0.2, Z: spine.Z - 0.1})

	res := c.Step(frameOf(b))

	assert.True(t, c.session.BallInHand)
	assert.Equal(t, PhasePlaying, c.session.Phase)
	assert.True(t, hasImage(res.Commands, ImageCourt))
	assert.True(t, hasText(res.Commands, "Points: 0    Time: 30.0"))
}

func TestPlayingFullShot(t *testing.T) {
	c, clock := playingController(TierMid)
	deadline := c.session.CountdownDeadline
	goals := GoalsFor(RightHanded, TierMid, 1.8)

	b := standingBody()
	setJoint(&b, JointHandRight, Vec3{X: 0.3, Y: 0.7, Z: 2.3})
	c.Step(frameOf(b))
	require.True(t, c.session.BallInHand)

	clock.Advance(time.Second)
	setJoint(&b, JointHandRight, goals.Start)
	res := c.Step(frameOf(b))
	require.True(t, c.session.ShotBeginCaptured)
	assert.Len(t, findKind(res.Commands, KindEllipse), 1)

	clock.Advance(time.Second)
	setJoint(&b, JointHandRight, goals.End)
	res = c.Step(frameOf(b))

	require.NotNil(t, res.Shot)
	assert.Equal(t, 2, c.session.Score)
	assert.Equal(t, deadline.Add(666*time.Millisecond), c.session.CountdownDeadline)
	assert.Equal(t, int64(28666), c.session.RemainingTimeMs)
	assert.False(t, c.session.BallInHand)
	assert.False(t, c.session.ShotBeginCaptured)
	assert.False(t, c.session.ShotEndCaptured)
	assert.Equal(t, goals.Start, c.session.ShotStartPos)
	assert.Equal(t, goals.End, c.session.ShotEndPos)
}

func TestRoundOverAndRetry(t *testing.T) {
	c, clock := playingController(TierFar)
	c.session.Score = 7
	b := standingBody()

	clock.Advance(30 * time.Second)
	res := c.Step(frameOf(b))
	require.NotNil(t, res.Transition)
	assert.Equal(t, PhaseRoundOver, c.session.Phase)
	assert.True(t, hasImage(res.Commands, ImageGameOver))
	assert.True(t, hasText(res.Commands, "Final score: 7"))
	assert.Equal(t, "0.0", res.Session.RemainingTime)

	clock.Advance(2 * time.Second)
	setJoint(&b, JointHandRight, Vec3{X: 150, Y: 80, Z: 2.5})
	b.HandRight = HandClosed
	c.Step(frameOf(b))

	assert.Equal(t, PhasePlaying, c.session.Phase)
	assert.Equal(t, 0, c.session.Score)
	assert.Equal(t, clock.Now().Add(30*time.Second), c.session.CountdownDeadline)
	assert.Equal(t, RightHanded, c.session.Handedness)
	assert.Equal(t, TierFar, c.session.DistanceTier)
	assert.Equal(t, 1.8, c.session.CalibratedHeadHeight)
}

func TestRetryWithLeftHand(t *testing.T) {
	c, _ := playingController(TierNear)
	c.session.Phase = PhaseRoundOver
	b := standingBody()
	setJoint(&b, JointHandLeft, Vec3{X: 120, Y: 40, Z: 2.5})
	b.HandLeft = HandClosed

	c.Step(frameOf(b))
	assert.Equal(t, PhasePlaying, c.session.Phase)
}

func TestExitTerminates(t *testing.T) {
	c, _ := playingController(TierNear)
	c.session.Phase = PhaseRoundOver
	b := standingBody()
	// Both buttons engaged: exit wins.
	setJoint(&b, JointHandLeft, Vec3{X: 150, Y: 80, Z: 2.5})
	setJoint(&b, JointHandRight, Vec3{X: DefaultDisplayWidth - 150, Y: 80, Z: 2.5})
	b.HandLeft = HandClosed
	b.HandRight = HandClosed

	res := c.Step(frameOf(b))
	assert.Equal(t, PhaseTerminated, c.session.Phase)
	assert.Equal(t, PhaseTerminated, res.Transition.To)

	res = c.Step(frameOf(b))
	assert.True(t, res.Idle)
	assert.Equal(t, PhaseTerminated, c.session.Phase)
}

func TestSensorStatus(t *testing.T) {
	c, _ := newTestController()
	assert.Equal(t, StatusNoSensor, c.StatusText())

	status, changed := c.SetSensorAvailable(false)
	assert.Equal(t, StatusNotAvailable, status)
	assert.True(t, changed)
	res := c.Step(frameOf(standingBody()))
	assert.Equal(t, StatusNotAvailable, res.Status)

	_, changed = c.SetSensorAvailable(false)
	assert.False(t, changed, "repeating the same availability is not a change")

	status, changed = c.SetSensorAvailable(true)
	assert.True(t, changed)
	assert.Equal(t, StatusRunning, status)
	assert.Equal(t, StatusRunning, c.StatusText())
	assert.Equal(t, PhaseSelectHand, c.Phase(), "status changes do not touch the session")
}

func TestWithDisplayMovesRightAnchoredButtons(t *testing.T) {
	c := NewController(nil, WithDisplay(640, 480), WithRoundLength(10*time.Second))
	l := c.Layout()
	assert.Equal(t, 440.0, l.HandRight.Hit.Left)
	assert.Equal(t, 440.0, l.Exit.Hit.Left)
	assert.Equal(t, 10*time.Second, c.round)
}
