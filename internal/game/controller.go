package game

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Transition records a phase change made by one frame.
type Transition struct {
	From Phase `json:"from"`
	To   Phase `json:"to"`
}

// StepResult is everything one frame produced.
type StepResult struct {
	Commands   []DrawCommand   `json:"commands"`
	Session    SessionSnapshot `json:"session"`
	Status     string          `json:"status"`
	Transition *Transition     `json:"transition,omitempty"`
	Shot       *ShotCommit     `json:"shot,omitempty"`
	// Idle is set when the frame had no tracked body and changed nothing.
	Idle bool `json:"idle"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(ctrl *Controller) {
		if c != nil {
			ctrl.clock = c
		}
	}
}

// WithDisplay sets the display size the layout is built for.
func WithDisplay(width, height float64) Option {
	return func(ctrl *Controller) {
		if width > 0 && height > 0 {
			ctrl.layout = NewLayout(width, height)
		}
	}
}

// WithRoundLength overrides the round countdown.
func WithRoundLength(d time.Duration) Option {
	return func(ctrl *Controller) {
		if d > 0 {
			ctrl.round = d
		}
	}
}

// Controller is the game phase state machine. It owns the GameSession and
// evaluates one frame at a time; Step holds the lock for the whole frame.
type Controller struct {
	mu        sync.Mutex
	session   *GameSession
	projector Projector
	layout    Layout
	clock     Clock
	round     time.Duration
	tracker   ShotTracker
	status    string
}

// NewController builds a controller in the Calibrating phase. A nil mapper
// falls back to the default pinhole intrinsics.
func NewController(mapper CameraMapper, opts ...Option) *Controller {
	if mapper == nil {
		mapper = DefaultMapper()
	}
	c := &Controller{
		session:   NewGameSession(),
		projector: NewProjector(mapper),
		layout:    DefaultLayout(),
		clock:     SystemClock,
		round:     RoundMillis * time.Millisecond,
		status:    StatusNoSensor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current session for observers.
func (c *Controller) Snapshot() SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Snapshot()
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Phase
}

func (c *Controller) Layout() Layout { return c.layout }

// StatusText is the current sensor status message.
func (c *Controller) StatusText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SetSensorAvailable updates the status text and reports whether it
// changed. The session is untouched.
func (c *Controller) SetSensorAvailable(available bool) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := StatusFor(available)
	changed := status != c.status
	c.status = status
	return status, changed
}

// frameInput is the per-frame view the phase handlers decide on.
type frameInput struct {
	body   *Body
	points map[JointType]Point2D
	now    time.Time
}

func (in *frameInput) handState(hand JointType) HandState {
	if hand == JointHandLeft {
		return in.body.HandLeft
	}
	return in.body.HandRight
}

// hovering is the highlight test: containment only.
func (in *frameInput) hovering(hand JointType, r Rect) bool {
	p, ok := in.points[hand]
	return ok && InRect(p, r)
}

// engaged is the activation test: containment and a closed hand.
func (in *frameInput) engaged(hand JointType, r Rect) bool {
	p, ok := in.points[hand]
	return ok && HandEngaged(p, r, in.handState(hand))
}

func (in *frameInput) eitherHovering(r Rect) bool {
	return in.hovering(JointHandLeft, r) || in.hovering(JointHandRight, r)
}

func (in *frameInput) eitherEngaged(r Rect) bool {
	return in.engaged(JointHandLeft, r) || in.engaged(JointHandRight, r)
}

// phaseOutcome is what a phase handler returns.
type phaseOutcome struct {
	next Phase
	cmds []DrawCommand
	shot *ShotCommit
}

// Step evaluates one frame. It never fails: missing joints read as disengaged
// and a frame without a tracked body leaves the session untouched.
func (c *Controller) Step(f *Frame) StepResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	cmds := []DrawCommand{DrawBackgroundImage(ImageMenu)}

	body, ok := f.Player()
	if !ok || c.session.Phase == PhaseTerminated {
		return StepResult{
			Commands: cmds,
			Session:  c.session.Snapshot(),
			Status:   c.status,
			Idle:     true,
		}
	}

	in := &frameInput{
		body:   body,
		points: c.projector.ProjectBody(body),
		now:    c.clock.Now(),
	}
	cmds = append(cmds, ClippedEdgeBars(body.ClippedEdges, c.layout.Width, c.layout.Height)...)

	from := c.session.Phase
	var out phaseOutcome
	switch from {
	case PhaseCalibrating:
		out = c.stepCalibrating(in)
	case PhaseSelectHand:
		out = c.stepSelectHand(in)
	case PhaseSelectDistance:
		out = c.stepSelectDistance(in)
	case PhasePlaying:
		out = c.stepPlaying(in)
	case PhaseRoundOver:
		out = c.stepRoundOver(in)
	}
	c.session.Phase = out.next

	res := StepResult{
		Commands: append(cmds, out.cmds...),
		Session:  c.session.Snapshot(),
		Status:   c.status,
		Shot:     out.shot,
	}
	if out.next != from {
		res.Transition = &Transition{From: from, To: out.next}
		log.Printf("[PHASE] %s -> %s (score=%d)", from, out.next, c.session.Score)
	}
	return res
}

func (c *Controller) skeleton(in *frameInput) DrawCommand {
	return DrawSkeleton(BuildSkeleton(in.body, in.points))
}

func (c *Controller) stepCalibrating(in *frameInput) phaseOutcome {
	s := c.session
	cmds := []DrawCommand{c.skeleton(in)}

	center := Vec3{X: FloorCenterX, Y: FloorCenterY, Z: FloorCenterZ}
	target := c.projector.Project(center)

	footL, okL := in.body.Position(JointFootLeft)
	footR, okR := in.body.Position(JointFootRight)
	head, okH := in.body.Position(JointHead)

	placed := okL && okR && okH &&
		WithinFloorTolerance(footL, center, FloorTolerance) &&
		WithinFloorTolerance(footR, center, FloorTolerance)
	if placed {
		s.CalibratedHeadHeight = head.Y
		cmds = append(cmds, DrawEllipse(target, FloorEllipseRXPlaced, FloorEllipseRY, StyleFloorPlaced))
		return phaseOutcome{next: PhaseSelectHand, cmds: cmds}
	}

	if okH {
		if hint := CalibrationHint(head); hint != "" {
			cmds = append(cmds, DrawText(hint, hintAt, hintFontSize, StyleHint))
		}
	}
	cmds = append(cmds, DrawEllipse(target, FloorEllipseRXSeeking, FloorEllipseRY, StyleFloorSeeking))
	return phaseOutcome{next: PhaseCalibrating, cmds: cmds}
}

func (c *Controller) stepSelectHand(in *frameInput) phaseOutcome {
	s := c.session
	l := c.layout
	cmds := []DrawCommand{
		DrawText(textSelectHand, selectHandAt, selectHandFontSize, StyleHint),
		c.skeleton(in),
		l.HandLeft.imageFor(in.hovering(JointHandLeft, l.HandLeft.Hit)),
		l.HandRight.imageFor(in.hovering(JointHandRight, l.HandRight.Hit)),
	}

	switch {
	case in.engaged(JointHandLeft, l.HandLeft.Hit):
		s.Handedness = LeftHanded
	case in.engaged(JointHandRight, l.HandRight.Hit):
		s.Handedness = RightHanded
	default:
		return phaseOutcome{next: PhaseSelectHand, cmds: cmds}
	}
	return phaseOutcome{next: PhaseSelectDistance, cmds: cmds}
}

func (c *Controller) stepSelectDistance(in *frameInput) phaseOutcome {
	s := c.session
	l := c.layout
	cmds := []DrawCommand{
		DrawText(textSelectDistance, selectHandAt, selectHandFontSize, StyleHint),
		c.skeleton(in),
		l.Near.imageFor(in.eitherHovering(l.Near.Hit)),
		l.Mid.imageFor(in.eitherHovering(l.Mid.Hit)),
		l.Far.imageFor(in.eitherHovering(l.Far.Hit)),
	}

	switch {
	case in.eitherEngaged(l.Near.Hit):
		s.DistanceTier = TierNear
	case in.eitherEngaged(l.Mid.Hit):
		s.DistanceTier = TierMid
	case in.eitherEngaged(l.Far.Hit):
		s.DistanceTier = TierFar
	default:
		return phaseOutcome{next: PhaseSelectDistance, cmds: cmds}
	}
	s.armCountdown(in.now, c.round)
	return phaseOutcome{next: PhasePlaying, cmds: cmds}
}

func (c *Controller) stepPlaying(in *frameInput) phaseOutcome {
	s := c.session
	l := c.layout

	s.RemainingTimeMs = RemainingMs(s.CountdownDeadline, in.now)
	if s.RemainingTimeMs <= 0 {
		return phaseOutcome{next: PhaseRoundOver, cmds: c.roundOverCommands(in)}
	}

	goals := GoalsFor(s.Handedness, s.DistanceTier, s.CalibratedHeadHeight)
	s.ShotStartPos = goals.Start
	s.ShotEndPos = goals.End

	out := c.tracker.Advance(s, in.body)
	if out.Commit != nil {
		s.RemainingTimeMs = RemainingMs(s.CountdownDeadline, in.now)
	}

	cmds := []DrawCommand{
		DrawBackgroundImage(ImageCourt),
		c.skeleton(in),
		DrawText(scoreLine(s.Score, s.RemainingTimeMs), scoreLineAt, scoreLineFontSize, StyleScore),
	}
	switch out.Step {
	case StepAcquire:
		cmds = append(cmds,
			DrawText(textGrabBall, l.adviceAt(), adviceFontSize, StyleAdvice),
			DrawImage(ImageNoBall, l.ballIcon()),
		)
	case StepBegin:
		cmds = append(cmds,
			DrawImage(ImageBall, l.ballIcon()),
			DrawText(textGetReady, l.subAdviceAt(), subAdviceFontSize, StyleAdvice),
			c.goalMarker(out),
		)
	case StepRelease:
		cmds = append(cmds,
			DrawText(textShoot, l.subAdviceAt(), subAdviceFontSize, StyleAdvice),
			c.goalMarker(out),
		)
	}
	return phaseOutcome{next: PhasePlaying, cmds: cmds, shot: out.Commit}
}

func (c *Controller) goalMarker(out ShotOutcome) DrawCommand {
	r := out.Scale * HandSize
	return DrawEllipse(c.projector.Project(out.Goal), r, r, StyleGestureGoal)
}

func (c *Controller) stepRoundOver(in *frameInput) phaseOutcome {
	s := c.session
	l := c.layout
	cmds := c.roundOverCommands(in)

	switch {
	case in.eitherEngaged(l.Exit.Hit):
		return phaseOutcome{next: PhaseTerminated, cmds: cmds}
	case in.eitherEngaged(l.Retry.Hit):
		s.resetRound(in.now, c.round)
		return phaseOutcome{next: PhasePlaying, cmds: cmds}
	}
	return phaseOutcome{next: PhaseRoundOver, cmds: cmds}
}

func (c *Controller) roundOverCommands(in *frameInput) []DrawCommand {
	l := c.layout
	return []DrawCommand{
		DrawBackgroundImage(ImageGameOver),
		DrawText(fmt.Sprintf("Final score: %d", c.session.Score), finalScoreAt, finalScoreFontSize, StyleScore),
		c.skeleton(in),
		l.Retry.imageFor(in.eitherHovering(l.Retry.Hit)),
		l.Exit.imageFor(in.eitherHovering(l.Exit.Hit)),
	}
}

func scoreLine(score int, remainingMs int64) string {
	return fmt.Sprintf("Points: %d    Time: %s", score, FormatSeconds(RemainingSeconds(remainingMs)))
}
