package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInRectIsHalfOpen(t *testing.T) {
	r := Rect{Left: 100, Top: 150, Right: 200, Bottom: 200}

	cases := []struct {
		name string
		p    Point2D
		want bool
	}{
		{"inside", Point2D{X: 150, Y: 175}, true},
		{"top-left corner", Point2D{X: 100, Y: 150}, true},
		{"right edge", Point2D{X: 200, Y: 175}, false},
		{"bottom edge", Point2D{X: 150, Y: 200}, false},
		{"left of rect", Point2D{X: 99.9, Y: 175}, false},
		{"above rect", Point2D{X: 150, Y: 149.9}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InRect(tc.p, r))
		})
	}
}

func TestHandEngagedRequiresClosedHand(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	inside := Point2D{X: 5, Y: 5}
	outside := Point2D{X: 50, Y: 5}

	assert.True(t, HandEngaged(inside, r, HandClosed))
	for _, s := range []HandState{HandOpen, HandLasso, HandUnknown} {
		assert.False(t, HandEngaged(inside, r, s), "hand %s inside the rect must not engage", s)
	}
	assert.False(t, HandEngaged(outside, r, HandClosed))
}

func TestNear3DIsAxisWise(t *testing.T) {
	a := Vec3{X: 1, Y: 1, Z: 1}

	// 0.045 on every axis is ~0.078 away in a straight line, still near.
	diag := Vec3{X: 1.045, Y: 0.955, Z: 1.045}
	assert.True(t, Near3D(a, diag, 0.05))

	assert.False(t, Near3D(a, Vec3{X: 1, Y: 1, Z: 1.06}, 0.05))
	assert.False(t, Near3D(a, Vec3{X: 1.05, Y: 1, Z: 1}, 0.05), "bound is strict")
}

func TestWithinFloorTolerance(t *testing.T) {
	center := Vec3{X: FloorCenterX, Y: FloorCenterY, Z: FloorCenterZ}

	assert.True(t, WithinFloorTolerance(Vec3{X: 0.29, Y: -1.29, Z: 2.21}, center, FloorTolerance))
	assert.False(t, WithinFloorTolerance(Vec3{X: 0.31, Y: -1, Z: 2.5}, center, FloorTolerance))
	assert.False(t, WithinFloorTolerance(Vec3{X: 0, Y: -1, Z: 2.9}, center, FloorTolerance))
	assert.False(t, WithinFloorTolerance(Vec3{X: 0, Y: -0.5, Z: 2.5}, center, FloorTolerance))
}

func TestHoldsBall(t *testing.T) {
	spine := Vec3{X: 0, Y: 1.0, Z: 2.5}

	assert.True(t, HoldsBall(Vec3{X: 0.2, Y: 0.8, Z: 2.4}, spine))
	assert.False(t, HoldsBall(Vec3{X: 0.2, Y: 0.95, Z: 2.4}, spine), "not low enough")
	assert.False(t, HoldsBall(Vec3{X: 0.2, Y: 0.8, Z: 2.5}, spine), "not in front")
}
