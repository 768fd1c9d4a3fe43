package game

// InRect reports whether p lies in r, with x in [Left, Right) and y in [Top, Bottom).
func InRect(p Point2D, r Rect) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// HandEngaged is the activation predicate: the hand is over r and closed.
// Hover highlighting uses InRect alone.
func HandEngaged(p Point2D, r Rect, state HandState) bool {
	return InRect(p, r) && state == HandClosed
}

// Near3D is an axis-wise box test: every axis must differ by less than eps.
// It is not a Euclidean distance check.
func Near3D(a, b Vec3, eps float64) bool {
	return absDiff(a.X, b.X) < eps &&
		absDiff(a.Y, b.Y) < eps &&
		absDiff(a.Z, b.Z) < eps
}

// WithinFloorTolerance reports whether point is inside the open box of
// half-size tol around center.
func WithinFloorTolerance(point, center Vec3, tol float64) bool {
	return point.X > center.X-tol && point.X < center.X+tol &&
		point.Y > center.Y-tol && point.Y < center.Y+tol &&
		point.Z > center.Z-tol && point.Z < center.Z+tol
}

// HoldsBall reports whether the hand is reaching forward and down from spine-mid.
func HoldsBall(hand, spineMid Vec3) bool {
	return hand.Y < spineMid.Y-BallPickupDrop && hand.Z < spineMid.Z
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
