package game

import "github.com/go-gl/mathgl/mgl64"

// CameraMapper converts a sensor-space point into display coordinates.
// The sensor SDK's coordinate mapper satisfies this on the bridge side.
type CameraMapper interface {
	MapCameraPointToDisplay(p Vec3) Point2D
}

// CameraMapperFunc adapts a plain function to CameraMapper.
type CameraMapperFunc func(p Vec3) Point2D

func (f CameraMapperFunc) MapCameraPointToDisplay(p Vec3) Point2D { return f(p) }

// Projector clamps negative depth and delegates to a CameraMapper.
type Projector struct {
	mapper CameraMapper
}

func NewProjector(mapper CameraMapper) Projector {
	return Projector{mapper: mapper}
}

// Project maps p to display space. Inferred joints sometimes report a negative
// depth; those are pulled in front of the sensor so the mapper stays finite.
func (p Projector) Project(pt Vec3) Point2D {
	if pt.Z < 0 {
		pt.Z = InferredZPositionClamp
	}
	if p.mapper == nil {
		return Point2D{}
	}
	return p.mapper.MapCameraPointToDisplay(pt)
}

// ProjectBody projects every joint of b, indexed by joint type.
func (p Projector) ProjectBody(b *Body) map[JointType]Point2D {
	points := make(map[JointType]Point2D, len(b.Joints))
	for _, j := range b.Joints {
		points[j.Type] = p.Project(j.Position)
	}
	return points
}

// Default depth-camera intrinsics for a 512x424 depth image.
const (
	DefaultFocalLength = 365.5
	DefaultPrincipalX  = 256.0
	DefaultPrincipalY  = 212.0
)

// DefaultMapper is the pinhole mapping with the default intrinsics.
func DefaultMapper() PinholeMapper {
	return NewPinholeMapper(DefaultFocalLength, DefaultFocalLength, DefaultPrincipalX, DefaultPrincipalY)
}

// PinholeMapper is a CameraMapper built from depth-camera intrinsics. It is the
// default mapping when the sensor bridge does not ship pre-projected points.
type PinholeMapper struct {
	K mgl64.Mat3
}

// NewPinholeMapper builds the intrinsic matrix for focal lengths fx, fy and
// principal point (cx, cy). Display y grows downward, sensor y grows upward.
func NewPinholeMapper(fx, fy, cx, cy float64) PinholeMapper {
	return PinholeMapper{K: mgl64.Mat3{
		fx, 0, 0,
		0, fy, 0,
		cx, cy, 1,
	}}
}

func (m PinholeMapper) MapCameraPointToDisplay(p Vec3) Point2D {
	if p.Z == 0 {
		c := m.K.Col(2)
		return Point2D{X: c.X(), Y: c.Y()}
	}
	v := p.mgl()
	uv := m.K.Mul3x1(mgl64.Vec3{v.X() / v.Z(), -v.Y() / v.Z(), 1})
	return Point2D{X: uv.X(), Y: uv.Y()}
}
