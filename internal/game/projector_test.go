package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectClampsNegativeDepth(t *testing.T) {
	var got Vec3
	p := NewProjector(CameraMapperFunc(func(v Vec3) Point2D {
		got = v
		return Point2D{X: v.X / v.Z, Y: v.Y / v.Z}
	}))

	pt := p.Project(Vec3{X: 0.5, Y: 0.2, Z: -1.3})

	assert.Equal(t, InferredZPositionClamp, got.Z)
	assert.Equal(t, 0.5, got.X)
	assert.True(t, pt.IsFinite(), "projected point should be finite, got %+v", pt)
}

func TestProjectPassesPositiveDepthThrough(t *testing.T) {
	var got Vec3
	p := NewProjector(CameraMapperFunc(func(v Vec3) Point2D {
		got = v
		return Point2D{}
	}))
	p.Project(Vec3{X: 1, Y: 2, Z: 3})
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, got)
}

func TestProjectNilMapper(t *testing.T) {
	assert.Equal(t, Point2D{}, NewProjector(nil).Project(Vec3{Z: 2}))
}

func TestPinholeMapper(t *testing.T) {
	m := NewPinholeMapper(365.5, 365.5, 256, 212)

	center := m.MapCameraPointToDisplay(Vec3{X: 0, Y: 0, Z: 2})
	assert.InDelta(t, 256, center.X, 1e-9)
	assert.InDelta(t, 212, center.Y, 1e-9)

	// Sensor y is up, display y is down.
	up := m.MapCameraPointToDisplay(Vec3{X: 1, Y: 1, Z: 2})
	assert.InDelta(t, 256+365.5*0.5, up.X, 1e-9)
	assert.InDelta(t, 212-365.5*0.5, up.Y, 1e-9)

	zero := m.MapCameraPointToDisplay(Vec3{X: 1, Y: 1, Z: 0})
	assert.Equal(t, Point2D{X: 256, Y: 212}, zero)
}

func TestProjectedClampedPointsAreFinite(t *testing.T) {
	p := NewProjector(DefaultMapper())
	for _, z := range []float64{-5, -0.0001, 0, 0.1, 4.5} {
		pt := p.Project(Vec3{X: 0.3, Y: -0.7, Z: z})
		if math.IsNaN(pt.X) || math.IsInf(pt.Y, 0) {
			t.Errorf("z=%.4f projected to non-finite point %+v", z, pt)
		}
	}
}

func TestProjectBody(t *testing.T) {
	b := standingBody()
	points := NewProjector(identityMapper).ProjectBody(&b)
	assert.Len(t, points, JointCount)
	assert.Equal(t, Point2D{X: 0, Y: 1.8}, points[JointHead])
}
