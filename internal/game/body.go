package game

// JointType identifies a tracked body landmark. Values follow the sensor SDK order.
type JointType int

const (
	JointSpineBase JointType = iota
	JointSpineMid
	JointNeck
	JointHead
	JointShoulderLeft
	JointElbowLeft
	JointWristLeft
	JointHandLeft
	JointShoulderRight
	JointElbowRight
	JointWristRight
	JointHandRight
	JointHipLeft
	JointKneeLeft
	JointAnkleLeft
	JointFootLeft
	JointHipRight
	JointKneeRight
	JointAnkleRight
	JointFootRight
	JointSpineShoulder
	JointHandTipLeft
	JointThumbLeft
	JointHandTipRight
	JointThumbRight

	JointCount = int(JointThumbRight) + 1
)

var jointNames = [JointCount]string{
	"SpineBase", "SpineMid", "Neck", "Head",
	"ShoulderLeft", "ElbowLeft", "WristLeft", "HandLeft",
	"ShoulderRight", "ElbowRight", "WristRight", "HandRight",
	"HipLeft", "KneeLeft", "AnkleLeft", "FootLeft",
	"HipRight", "KneeRight", "AnkleRight", "FootRight",
	"SpineShoulder", "HandTipLeft", "ThumbLeft", "HandTipRight", "ThumbRight",
}

func (j JointType) String() string {
	if j < 0 || int(j) >= JointCount {
		return "Unknown"
	}
	return jointNames[j]
}

// TrackingState is the sensor's confidence in a joint position.
type TrackingState uint8

const (
	NotTracked TrackingState = iota
	Inferred
	Tracked
)

// HandState is the sensor's classification of a hand pose.
type HandState uint8

const (
	HandUnknown HandState = iota
	HandOpen
	HandClosed
	HandLasso
)

func (h HandState) String() string {
	switch h {
	case HandOpen:
		return "open"
	case HandClosed:
		return "closed"
	case HandLasso:
		return "lasso"
	}
	return "unknown"
}

// FrameEdges is a bit set of display edges a body is clipped by.
type FrameEdges uint8

const (
	EdgeRight FrameEdges = 1 << iota
	EdgeLeft
	EdgeTop
	EdgeBottom

	EdgeNone FrameEdges = 0
)

func (e FrameEdges) Has(edge FrameEdges) bool {
	return e&edge != 0
}

// Joint is one landmark of a body.
type Joint struct {
	Type          JointType     `json:"type"`
	Position      Vec3          `json:"position"`
	TrackingState TrackingState `json:"tracking_state"`
}

// Body is one tracked skeleton in a frame.
type Body struct {
	TrackingID   uint64     `json:"tracking_id"`
	IsTracked    bool       `json:"is_tracked"`
	Joints       []Joint    `json:"joints"`
	HandLeft     HandState  `json:"hand_left"`
	HandRight    HandState  `json:"hand_right"`
	ClippedEdges FrameEdges `json:"clipped_edges"`
}

// Joint returns the joint of the given type, if the body carries it.
func (b *Body) Joint(t JointType) (Joint, bool) {
	if b == nil {
		return Joint{}, false
	}
	for _, j := range b.Joints {
		if j.Type == t {
			return j, true
		}
	}
	return Joint{}, false
}

// Position is Joint without the tracking state.
func (b *Body) Position(t JointType) (Vec3, bool) {
	j, ok := b.Joint(t)
	return j.Position, ok
}

// Frame is one tick of body-tracking output.
type Frame struct {
	Sequence uint64 `json:"seq"`
	Bodies   []Body `json:"bodies"`
}

// Player returns the first tracked body in enumeration order.
// Every other body is ignored for gameplay.
func (f *Frame) Player() (*Body, bool) {
	if f == nil {
		return nil, false
	}
	for i := range f.Bodies {
		if f.Bodies[i].IsTracked {
			return &f.Bodies[i], true
		}
	}
	return nil, false
}
