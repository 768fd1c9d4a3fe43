package arcade

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shotclock/backend/internal/game"
)

const (
	// SessionKey holds the JSON session snapshot.
	SessionKey = "arcade:session"
	// EventsChannel carries Event payloads.
	EventsChannel = "arcade_events"
)

// Mirror copies the live session into Redis so other processes can read it
// and publishes session events. A Mirror without a client does nothing.
type Mirror struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewMirror(rdb *redis.Client, ttl time.Duration) *Mirror {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Mirror{rdb: rdb, ttl: ttl}
}

// Save stores the snapshot under SessionKey with the mirror TTL.
func (m *Mirror) Save(ctx context.Context, snap game.SessionSnapshot) error {
	if m == nil || m.rdb == nil {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return m.rdb.SetEx(ctx, SessionKey, data, m.ttl).Err()
}

// Load reads the mirrored snapshot. It returns nil when nothing is stored.
func (m *Mirror) Load(ctx context.Context) (*game.SessionSnapshot, error) {
	if m == nil || m.rdb == nil {
		return nil, nil
	}
	data, err := m.rdb.Get(ctx, SessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap game.SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &snap, nil
}

// Publish sends ev on EventsChannel.
func (m *Mirror) Publish(ctx context.Context, ev Event) error {
	if m == nil || m.rdb == nil {
		return nil
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return m.rdb.Publish(ctx, EventsChannel, data).Err()
}
