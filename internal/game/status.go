package game

// Status texts shown alongside the game view.
const (
	StatusRunning      = "Running"
	StatusNotAvailable = "Sensor not available"
	StatusNoSensor     = "No sensor"
)

// StatusFor maps a sensor availability report to its status text.
func StatusFor(available bool) string {
	if available {
		return StatusRunning
	}
	return StatusNotAvailable
}

// Player-facing texts.
const (
	textSelectHand     = "Pick right-handed to shoot with your right hand.\nPick left-handed to shoot with your left hand."
	textSelectDistance = "Choose your shot distance"
	textGrabBall       = "Grab the ball: reach forward and down"
	textGetReady       = "Get ready to shoot!"
	textShoot          = "Shoot!"
)

// CalibrationHint tells the player which way to step toward the floor target.
// An exact tie on either axis yields no hint.
func CalibrationHint(head Vec3) string {
	switch {
	case head.X < FloorCenterX && head.Z < FloorCenterZ:
		return "Move right and back"
	case head.X < FloorCenterX && head.Z > FloorCenterZ:
		return "Move right and forward"
	case head.X > FloorCenterX && head.Z < FloorCenterZ:
		return "Move left and back"
	case head.X > FloorCenterX && head.Z > FloorCenterZ:
		return "Move left and forward"
	}
	return ""
}
