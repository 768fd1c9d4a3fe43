package game

import (
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

// identityMapper drops z so tests can place hands directly in display pixels.
var identityMapper = CameraMapperFunc(func(p Vec3) Point2D {
	return Point2D{X: p.X, Y: p.Y}
})

// standingBody is a fully tracked player standing on the floor target with
// head height 1.8, both hands open and resting at their sides.
func standingBody() Body {
	pos := map[JointType]Vec3{
		JointHead:          {X: 0, Y: 1.8, Z: 2.5},
		JointNeck:          {X: 0, Y: 1.6, Z: 2.5},
		JointSpineShoulder: {X: 0, Y: 1.5, Z: 2.5},
		JointSpineMid:      {X: 0, Y: 1.0, Z: 2.5},
		JointSpineBase:     {X: 0, Y: 0.8, Z: 2.5},
		JointFootLeft:      {X: -0.1, Y: -1.0, Z: 2.5},
		JointFootRight:     {X: 0.1, Y: -1.0, Z: 2.5},
		JointHandLeft:      {X: 0, Y: 0, Z: 2.5},
		JointHandRight:     {X: 0, Y: 0, Z: 2.5},
	}
	b := Body{TrackingID: 72057594037928000, IsTracked: true, HandLeft: HandOpen, HandRight: HandOpen}
	for i := 0; i < JointCount; i++ {
		t := JointType(i)
		p, ok := pos[t]
		if !ok {
			p = Vec3{X: 0, Y: 0.5, Z: 2.5}
		}
		b.Joints = append(b.Joints, Joint{Type: t, Position: p, TrackingState: Tracked})
	}
	return b
}

func setJoint(b *Body, t JointType, p Vec3) {
	for i := range b.Joints {
		if b.Joints[i].Type == t {
			b.Joints[i].Position = p
			return
		}
	}
	b.Joints = append(b.Joints, Joint{Type: t, Position: p, TrackingState: Tracked})
}

func removeJoint(b *Body, t JointType) {
	out := b.Joints[:0]
	for _, j := range b.Joints {
		if j.Type != t {
			out = append(out, j)
		}
	}
	b.Joints = out
}

func frameOf(bodies ...Body) *Frame {
	return &Frame{Sequence: 1, Bodies: bodies}
}

// newTestController returns a controller on a fake clock with identity projection.
func newTestController() (*Controller, *fakeClock) {
	clock := newFakeClock()
	return NewController(identityMapper, WithClock(clock)), clock
}

// playingController skips the menus: calibrated at 1.8, right-handed, given tier.
func playingController(tier DistanceTier) (*Controller, *fakeClock) {
	c, clock := newTestController()
	s := c.session
	s.CalibratedHeadHeight = 1.8
	s.Handedness = RightHanded
	s.DistanceTier = tier
	s.armCountdown(clock.Now(), c.round)
	s.Phase = PhasePlaying
	return c, clock
}

func findKind(cmds []DrawCommand, kind DrawKind) []DrawCommand {
	var out []DrawCommand
	for _, c := range cmds {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func hasText(cmds []DrawCommand, text string) bool {
	for _, c := range findKind(cmds, KindText) {
		if c.Text == text {
			return true
		}
	}
	return false
}

func hasImage(cmds []DrawCommand, id string) bool {
	for _, c := range cmds {
		if (c.Kind == KindImage || c.Kind == KindBackgroundImage) && c.ImageID == id {
			return true
		}
	}
	return false
}
