package arcade

import (
	"time"

	"github.com/shotclock/backend/internal/game"
)

// EventType names a session event published to observers.
type EventType string

const (
	EventPhaseChanged   EventType = "phase_changed"
	EventShotMade       EventType = "shot_made"
	EventRoundCompleted EventType = "round_completed"
	EventStatusChanged  EventType = "status_changed"
)

// Event is published on EventsChannel whenever the session changes in a way
// a renderer or operator console cares about.
type Event struct {
	Type   EventType `json:"type"`
	Phase  string    `json:"phase"`
	From   string    `json:"from,omitempty"`
	To     string    `json:"to,omitempty"`
	Score  int       `json:"score"`
	Points int       `json:"points,omitempty"`
	Status string    `json:"status,omitempty"`
	At     time.Time `json:"at"`
}

func phaseEvent(tr *game.Transition, snap game.SessionSnapshot, at time.Time) Event {
	return Event{
		Type:  EventPhaseChanged,
		Phase: snap.Phase,
		From:  tr.From.String(),
		To:    tr.To.String(),
		Score: snap.Score,
		At:    at,
	}
}

func shotEvent(shot *game.ShotCommit, snap game.SessionSnapshot, at time.Time) Event {
	return Event{
		Type:   EventShotMade,
		Phase:  snap.Phase,
		Score:  shot.Score,
		Points: shot.Points,
		At:     at,
	}
}
