package metrics

import (
	"sync"
	"time"
)

// Recorder keeps in-memory counters for the session host and forwards to
// OpenTelemetry instruments when they are configured.
type Recorder struct {
	mu    sync.Mutex
	stats Snapshot
	otel  *otelInstruments
}

// Snapshot is a copy of the in-memory counters.
type Snapshot struct {
	Frames           int
	IdleFrames       int
	DroppedFrames    int64
	Transitions      int
	Shots            int
	Rounds           int
	StatusChanges    int
	BestScore        int
	LastFrameLatency time.Duration
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{otel: otel}
}

// RecordFrame counts one evaluated frame.
func (r *Recorder) RecordFrame(phase string, idle bool, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.Frames++
	if idle {
		r.stats.IdleFrames++
	}
	r.stats.LastFrameLatency = duration
	r.mu.Unlock()

	r.otel.recordFrame(phase, idle, duration)
}

// RecordDropped counts frames replaced before they were evaluated.
func (r *Recorder) RecordDropped(n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.mu.Lock()
	r.stats.DroppedFrames += n
	r.mu.Unlock()

	r.otel.recordDropped(n)
}

func (r *Recorder) RecordTransition(from, to string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.Transitions++
	r.mu.Unlock()

	r.otel.recordTransition(from, to)
}

func (r *Recorder) RecordShot(tier string, points int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.Shots++
	r.mu.Unlock()

	r.otel.recordShot(tier, points)
}

// RecordRound counts a finished round and tracks the best score seen.
func (r *Recorder) RecordRound(tier string, score int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.Rounds++
	if score > r.stats.BestScore {
		r.stats.BestScore = score
	}
	r.mu.Unlock()

	r.otel.recordRound(tier, score)
}

// RecordStatusChange counts a change of the sensor status text.
func (r *Recorder) RecordStatusChange() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.StatusChanges++
	r.mu.Unlock()
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordSocketClients adjusts the connected websocket gauge for role.
func (r *Recorder) RecordSocketClients(role string, delta int64) {
	if r == nil {
		return
	}
	r.otel.recordSocketClients(role, delta)
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
