package arcade

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/shotclock/backend/internal/game"
	"github.com/shotclock/backend/internal/metrics"
	"github.com/shotclock/backend/internal/models"
)

// ErrTerminated is returned for frames submitted after the player exited.
var ErrTerminated = errors.New("arcade: session terminated")

const (
	defaultFrameRate = 30
	infraTimeout     = 2 * time.Second
	outboxSize       = 64
)

// HostOption configures a Host.
type HostOption func(*Host)

func WithStore(s *RoundStore) HostOption {
	return func(h *Host) { h.store = s }
}

func WithMirror(m *Mirror) HostOption {
	return func(h *Host) { h.mirror = m }
}

func WithRecorder(r *metrics.Recorder) HostOption {
	return func(h *Host) { h.rec = r }
}

// WithFrameRate sets how often Run evaluates the pending frame.
func WithFrameRate(hz int) HostOption {
	return func(h *Host) {
		if hz > 0 {
			h.interval = time.Second / time.Duration(hz)
		}
	}
}

// WithHostClock sets the clock used to timestamp rounds and events.
func WithHostClock(c game.Clock) HostOption {
	return func(h *Host) {
		if c != nil {
			h.clock = c
		}
	}
}

// View is the session as exposed to HTTP and socket clients.
type View struct {
	Session game.SessionSnapshot `json:"session"`
	Status  string               `json:"status"`
}

// Host owns the single game session. Frames arrive through Submit (latest
// wins) or Process (synchronous); evaluation is serialised so the session is
// never stepped concurrently.
type Host struct {
	ctrl     *game.Controller
	store    *RoundStore
	mirror   *Mirror
	rec      *metrics.Recorder
	clock    game.Clock
	interval time.Duration

	slot   frameSlot
	stepMu sync.Mutex
	round  *openRound

	subMu   sync.RWMutex
	subs    map[int]chan game.StepResult
	nextSub int

	outbox chan mirrorJob

	done     chan struct{}
	doneOnce sync.Once
	persist  sync.WaitGroup
}

// mirrorJob is one Redis write queued off the frame path.
type mirrorJob func(ctx context.Context, m *Mirror)

// openRound accumulates the shots of the round being played.
type openRound struct {
	round models.Round
	shots []models.RoundShot
}

func NewHost(ctrl *game.Controller, opts ...HostOption) *Host {
	h := &Host{
		ctrl:     ctrl,
		clock:    game.SystemClock,
		interval: time.Second / defaultFrameRate,
		subs:     make(map[int]chan game.StepResult),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.mirror != nil {
		h.outbox = make(chan mirrorJob, outboxSize)
		go h.writeMirror()
	}
	return h
}

// writeMirror is the single writer for Redis. Jobs run in submission order
// so subscribers see events in the order frames produced them.
func (h *Host) writeMirror() {
	for job := range h.outbox {
		ctx, cancel := context.WithTimeout(context.Background(), infraTimeout)
		job(ctx, h.mirror)
		cancel()
		h.persist.Done()
	}
}

// enqueue hands job to the mirror writer. A full queue drops the job.
func (h *Host) enqueue(what string, job mirrorJob) {
	if h.outbox == nil {
		return
	}
	h.persist.Add(1)
	select {
	case h.outbox <- job:
	default:
		h.persist.Done()
		log.Printf("[REDIS] mirror queue full; dropped %s", what)
	}
}

// Done is closed once the player exits from the round-over screen.
func (h *Host) Done() <-chan struct{} { return h.done }

func (h *Host) terminated() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Submit hands a frame to Run without blocking. An unconsumed earlier frame
// is discarded and counted as dropped.
func (h *Host) Submit(f *game.Frame) error {
	if h.terminated() {
		return ErrTerminated
	}
	if h.slot.Put(f) {
		h.rec.RecordDropped(1)
	}
	return nil
}

// Run evaluates the latest submitted frame on every tick until ctx is
// cancelled or the session terminates.
func (h *Host) Run(ctx context.Context) {
	log.Printf("[FRAME] frame pump started (interval=%s)", h.interval)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[FRAME] frame pump stopping")
			return
		case <-h.done:
			log.Println("[FRAME] session terminated; frame pump stopping")
			return
		case <-ticker.C:
			f := h.slot.Take()
			if f == nil {
				continue
			}
			if _, err := h.Process(f); errors.Is(err, ErrTerminated) {
				return
			}
		}
	}
}

// Process evaluates one frame synchronously and fans the result out to
// subscribers.
func (h *Host) Process(f *game.Frame) (game.StepResult, error) {
	h.stepMu.Lock()
	defer h.stepMu.Unlock()

	if h.terminated() {
		return game.StepResult{}, ErrTerminated
	}

	start := time.Now()
	res := h.ctrl.Step(f)
	h.rec.RecordFrame(res.Session.Phase, res.Idle, time.Since(start))

	h.observe(res)
	h.broadcast(res)
	return res, nil
}

// observe runs the side effects of one result. Called with stepMu held.
func (h *Host) observe(res game.StepResult) {
	now := h.clock.Now()
	snap := res.Session

	if res.Shot != nil {
		h.rec.RecordShot(snap.DistanceName, res.Shot.Points)
		if h.round != nil {
			h.round.shots = append(h.round.shots, models.RoundShot{
				ShotNo:  len(h.round.shots) + 1,
				Points:  res.Shot.Points,
				BonusMs: int(res.Shot.Bonus.Milliseconds()),
				Score:   res.Shot.Score,
				MadeAt:  now,
			})
		}
		h.publish(shotEvent(res.Shot, snap, now))
		h.saveMirror(snap)
	}

	tr := res.Transition
	if tr == nil {
		return
	}
	h.rec.RecordTransition(tr.From.String(), tr.To.String())
	h.publish(phaseEvent(tr, snap, now))
	h.saveMirror(snap)

	switch tr.To {
	case game.PhasePlaying:
		h.round = &openRound{round: models.Round{
			Handedness:   snap.Handedness,
			DistanceTier: snap.DistanceTier,
			HeadHeight:   snap.CalibratedHeadHeight,
			StartedAt:    now,
		}}
	case game.PhaseRoundOver:
		h.closeRound(snap, now)
	case game.PhaseTerminated:
		h.doneOnce.Do(func() { close(h.done) })
	}
}

func (h *Host) closeRound(snap game.SessionSnapshot, now time.Time) {
	h.rec.RecordRound(snap.DistanceName, snap.Score)
	h.publish(Event{Type: EventRoundCompleted, Phase: snap.Phase, Score: snap.Score, At: now})
	log.Printf("[PHASE] round completed: tier=%s score=%d", snap.DistanceName, snap.Score)

	open := h.round
	h.round = nil
	if open == nil {
		return
	}
	open.round.Score = snap.Score
	open.round.Shots = len(open.shots)
	open.round.EndedAt = now
	open.round.DurationMs = now.Sub(open.round.StartedAt).Milliseconds()

	if h.store == nil {
		return
	}
	h.persist.Add(1)
	go func(o *openRound) {
		defer h.persist.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := h.store.SaveRound(ctx, &o.round, o.shots); err != nil {
			log.Printf("[DB] failed to save round (score=%d): %v", o.round.Score, err)
		}
	}(open)
}

func (h *Host) publish(ev Event) {
	h.enqueue(string(ev.Type)+" event", func(ctx context.Context, m *Mirror) {
		if err := m.Publish(ctx, ev); err != nil {
			log.Printf("[REDIS] failed to publish %s event: %v", ev.Type, err)
		}
	})
}

func (h *Host) saveMirror(snap game.SessionSnapshot) {
	h.enqueue("session mirror", func(ctx context.Context, m *Mirror) {
		if err := m.Save(ctx, snap); err != nil {
			log.Printf("[REDIS] failed to mirror session: %v", err)
		}
	})
}

// Subscribe registers for every evaluated result. Slow subscribers miss
// results rather than stall evaluation. Call cancel to unsubscribe.
func (h *Host) Subscribe(buffer int) (<-chan game.StepResult, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan game.StepResult, buffer)

	h.subMu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = ch
	h.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.subMu.Lock()
			delete(h.subs, id)
			h.subMu.Unlock()
			close(ch)
		})
	}
}

func (h *Host) broadcast(res game.StepResult) {
	h.subMu.RLock()
	defer h.subMu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- res:
		default:
		}
	}
}

// SetSensorAvailable updates the status text and publishes a change.
func (h *Host) SetSensorAvailable(available bool) string {
	status, changed := h.ctrl.SetSensorAvailable(available)
	if changed {
		log.Printf("[FRAME] sensor status: %s", status)
		h.rec.RecordStatusChange()
		h.publish(Event{
			Type:   EventStatusChanged,
			Phase:  h.ctrl.Phase().String(),
			Status: status,
			At:     h.clock.Now(),
		})
	}
	return status
}

// View returns the current session and status.
func (h *Host) View() View {
	return View{Session: h.ctrl.Snapshot(), Status: h.ctrl.StatusText()}
}

// Wait blocks until pending round writes and queued Redis writes finish.
func (h *Host) Wait() { h.persist.Wait() }
