package arcade

import (
	"time"

	"github.com/shotclock/backend/internal/game"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

var identityMapper = game.CameraMapperFunc(func(p game.Vec3) game.Point2D {
	return game.Point2D{X: p.X, Y: p.Y}
})

// player is a tracked body standing on the floor target with head height 1.8.
// Hands are placed in display pixels through the identity mapper.
type player struct {
	body game.Body
}

func newPlayer() *player {
	pos := map[game.JointType]game.Vec3{
		game.JointHead:      {X: 0, Y: 1.8, Z: 2.5},
		game.JointSpineMid:  {X: 0, Y: 1.0, Z: 2.5},
		game.JointFootLeft:  {X: -0.1, Y: -1.0, Z: 2.5},
		game.JointFootRight: {X: 0.1, Y: -1.0, Z: 2.5},
		game.JointHandLeft:  {X: 0, Y: 0, Z: 2.5},
		game.JointHandRight: {X: 0, Y: 0, Z: 2.5},
	}
	b := game.Body{TrackingID: 1, IsTracked: true, HandLeft: game.HandOpen, HandRight: game.HandOpen}
	for t, p := range pos {
		b.Joints = append(b.Joints, game.Joint{Type: t, Position: p, TrackingState: game.Tracked})
	}
	return &player{body: b}
}

func (p *player) rightHand(pos game.Vec3, state game.HandState) *player {
	for i := range p.body.Joints {
		if p.body.Joints[i].Type == game.JointHandRight {
			p.body.Joints[i].Position = pos
		}
	}
	p.body.HandRight = state
	return p
}

func (p *player) frame() *game.Frame {
	return &game.Frame{Sequence: 1, Bodies: []game.Body{p.body}}
}

func emptyFrame() *game.Frame {
	return &game.Frame{Sequence: 1}
}

func newTestHost(opts ...HostOption) (*Host, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	ctrl := game.NewController(identityMapper, game.WithClock(clock))
	opts = append([]HostOption{WithHostClock(clock)}, opts...)
	return NewHost(ctrl, opts...), clock
}

// driveToPlaying calibrates, picks the right hand and the near distance.
func driveToPlaying(h *Host, p *player) {
	h.Process(p.frame())
	h.Process(p.rightHand(game.Vec3{X: 350, Y: 175, Z: 2.5}, game.HandClosed).frame())
	h.Process(p.rightHand(game.Vec3{X: 100, Y: 200, Z: 2.5}, game.HandClosed).frame())
	p.rightHand(game.Vec3{X: 0, Y: 0, Z: 2.5}, game.HandOpen)
}
