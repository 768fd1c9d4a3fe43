package game

// Gameplay constants. Distances are meters in sensor space, sizes are display pixels.
const (
	// Floor target the player must stand on to calibrate.
	FloorCenterX   = 0.0
	FloorCenterY   = -1.0
	FloorCenterZ   = 2.5
	FloorTolerance = 0.3

	// UncalibratedHeadHeight marks a session whose floor calibration has not happened.
	UncalibratedHeadHeight = -10.0

	// Capture volume half-size for shot start/end goals.
	GestureEpsilon = 0.05

	// Ball pickup: hand below spine-mid by this much and in front of it.
	BallPickupDrop = 0.1

	ShotOffsetX      = 0.3
	ShotStartOffsetY = -0.2
	ShotStartOffsetZ = 0.1
	ShotEndOffsetZ   = -0.15

	// Projection clamp for inferred joints reported behind the sensor.
	InferredZPositionClamp = 0.1

	RoundMillis = 30000

	HandSize            = 30.0
	JointThickness      = 3.0
	ClipBoundsThickness = 10.0
	GestureScaleDepth   = 2.0

	FloorEllipseRY        = 8.0
	FloorEllipseRXPlaced  = 24.0
	FloorEllipseRXSeeking = 50.0

	DefaultDisplayWidth  = 512
	DefaultDisplayHeight = 424
)
