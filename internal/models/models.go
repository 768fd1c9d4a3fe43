package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Round is one completed timed round.
type Round struct {
	ID           int64     `db:"id" json:"id"`
	Handedness   string    `db:"handedness" json:"handedness"`
	DistanceTier int       `db:"distance_tier" json:"distance_tier"`
	Score        int       `db:"score" json:"score"`
	Shots        int       `db:"shots" json:"shots"`
	HeadHeight   float64   `db:"head_height" json:"head_height"`
	StartedAt    time.Time `db:"started_at" json:"started_at"`
	EndedAt      time.Time `db:"ended_at" json:"ended_at"`
	DurationMs   int64     `db:"duration_ms" json:"duration_ms"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// RoundShot is one scored shot inside a round
type RoundShot struct {
	ID      int64     `db:"id" json:"id"`
	RoundID int64     `db:"round_id" json:"round_id"`
	ShotNo  int       `db:"shot_no" json:"shot_no"`
	Points  int       `db:"points" json:"points"`
	BonusMs int       `db:"bonus_ms" json:"bonus_ms"`
	Score   int       `db:"score" json:"score"`
	MadeAt  time.Time `db:"made_at" json:"made_at"`
}

// OperatorAccount can drive the session over HTTP and authenticate sensor bridges.
type OperatorAccount struct {
	Username    string         `db:"username" json:"username"`
	DisplayName string         `db:"display_name" json:"display_name"`
	TokenHash   string         `db:"token_hash" json:"-"`
	Roles       pq.StringArray `db:"roles" json:"roles"`
	AllowedIPs  pq.StringArray `db:"allowed_ips" json:"allowed_ips"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// OperatorAudit represents an audit log entry
type OperatorAudit struct {
	ID        int64           `db:"id" json:"id"`
	Username  string          `db:"username" json:"username"`
	IP        sql.NullString  `db:"ip" json:"ip,omitempty"`
	Route     string          `db:"route" json:"route"`
	Action    string          `db:"action" json:"action"`
	Details   json.RawMessage `db:"details" json:"details"`
	Success   bool            `db:"success" json:"success"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
