package game

// Bone connects two joints of a skeleton.
type Bone struct {
	From JointType
	To   JointType
}

// Bones is the drawable skeleton: torso, right arm, left arm, right leg, left leg.
var Bones = [...]Bone{
	{JointHead, JointNeck},
	{JointNeck, JointSpineShoulder},
	{JointSpineShoulder, JointSpineMid},
	{JointSpineMid, JointSpineBase},
	{JointSpineShoulder, JointShoulderRight},
	{JointSpineShoulder, JointShoulderLeft},
	{JointSpineBase, JointHipRight},
	{JointSpineBase, JointHipLeft},

	{JointShoulderRight, JointElbowRight},
	{JointElbowRight, JointWristRight},
	{JointWristRight, JointHandRight},
	{JointHandRight, JointHandTipRight},
	{JointWristRight, JointThumbRight},

	{JointShoulderLeft, JointElbowLeft},
	{JointElbowLeft, JointWristLeft},
	{JointWristLeft, JointHandLeft},
	{JointHandLeft, JointHandTipLeft},
	{JointWristLeft, JointThumbLeft},

	{JointHipRight, JointKneeRight},
	{JointKneeRight, JointAnkleRight},
	{JointAnkleRight, JointFootRight},

	{JointHipLeft, JointKneeLeft},
	{JointKneeLeft, JointAnkleLeft},
	{JointAnkleLeft, JointFootLeft},
}

// BuildSkeleton turns a body into drawable bones and joints. A bone is dropped
// when either end is untracked or absent, and drawn with the inferred style
// unless both ends are tracked.
func BuildSkeleton(b *Body, points map[JointType]Point2D) SkeletonShape {
	var shape SkeletonShape
	for _, bone := range Bones {
		j0, ok0 := b.Joint(bone.From)
		j1, ok1 := b.Joint(bone.To)
		if !ok0 || !ok1 {
			continue
		}
		if j0.TrackingState == NotTracked || j1.TrackingState == NotTracked {
			continue
		}
		style := StyleInferred
		if j0.TrackingState == Tracked && j1.TrackingState == Tracked {
			style = StyleTracked
		}
		shape.Bones = append(shape.Bones, BoneLine{
			From:  points[bone.From],
			To:    points[bone.To],
			Style: style,
		})
	}

	for _, j := range b.Joints {
		var style Style
		switch j.TrackingState {
		case Tracked:
			style = StyleTracked
		case Inferred:
			style = StyleInferred
		default:
			continue
		}
		shape.Joints = append(shape.Joints, JointDot{
			At:     points[j.Type],
			Radius: JointThickness,
			Style:  style,
		})
	}
	return shape
}

// ClippedEdgeBars returns one bar per edge the body is clipped by.
func ClippedEdgeBars(edges FrameEdges, width, height float64) []DrawCommand {
	var cmds []DrawCommand
	if edges.Has(EdgeBottom) {
		cmds = append(cmds, DrawRect(RectXYWH(0, height-ClipBoundsThickness, width, ClipBoundsThickness), StyleClipEdge))
	}
	if edges.Has(EdgeTop) {
		cmds = append(cmds, DrawRect(RectXYWH(0, 0, width, ClipBoundsThickness), StyleClipEdge))
	}
	if edges.Has(EdgeLeft) {
		cmds = append(cmds, DrawRect(RectXYWH(0, 0, ClipBoundsThickness, height), StyleClipEdge))
	}
	if edges.Has(EdgeRight) {
		cmds = append(cmds, DrawRect(RectXYWH(width-ClipBoundsThickness, 0, ClipBoundsThickness, height), StyleClipEdge))
	}
	return cmds
}
