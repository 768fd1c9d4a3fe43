package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod = "method"
	AttrPath   = "path"
	AttrStatus = "status"
	AttrPhase  = "phase"
	AttrIdle   = "idle"
	AttrFrom   = "from"
	AttrTo     = "to"
	AttrTier   = "tier"
	AttrPoints = "points"
	AttrRole   = "role"
)
