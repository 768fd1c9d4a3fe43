package arcade

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shotclock/backend/internal/models"
)

// RoundStore persists completed rounds. A store without a database is a no-op.
type RoundStore struct {
	db *sqlx.DB
}

func NewRoundStore(db *sqlx.DB) *RoundStore {
	return &RoundStore{db: db}
}

// SaveRound inserts the round and its shots in one transaction and returns
// the new round id.
func (s *RoundStore) SaveRound(ctx context.Context, round *models.Round, shots []models.RoundShot) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin round tx: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO rounds (handedness, distance_tier, score, shots, head_height, started_at, ended_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		round.Handedness, round.DistanceTier, round.Score, round.Shots,
		round.HeadHeight, round.StartedAt, round.EndedAt, round.DurationMs,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert round: %w", err)
	}

	for _, shot := range shots {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO round_shots (round_id, shot_no, points, bonus_ms, score, made_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, shot.ShotNo, shot.Points, shot.BonusMs, shot.Score, shot.MadeAt,
		)
		if err != nil {
			return 0, fmt.Errorf("insert shot %d: %w", shot.ShotNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit round: %w", err)
	}
	round.ID = id
	return id, nil
}

// RecentRounds lists the newest rounds first.
func (s *RoundStore) RecentRounds(ctx context.Context, limit int) ([]models.Round, error) {
	rounds := []models.Round{}
	if s == nil || s.db == nil {
		return rounds, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	err := s.db.SelectContext(ctx, &rounds, `
		SELECT id, handedness, distance_tier, score, shots, head_height, started_at, ended_at, duration_ms, created_at
		FROM rounds
		ORDER BY ended_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return rounds, nil
}

// RoundShots lists the shots of one round in order.
func (s *RoundStore) RoundShots(ctx context.Context, roundID int64) ([]models.RoundShot, error) {
	shots := []models.RoundShot{}
	if s == nil || s.db == nil {
		return shots, nil
	}
	err := s.db.SelectContext(ctx, &shots, `
		SELECT id, round_id, shot_no, points, bonus_ms, score, made_at
		FROM round_shots
		WHERE round_id = $1
		ORDER BY shot_no`, roundID)
	if err != nil {
		return nil, fmt.Errorf("list shots for round %d: %w", roundID, err)
	}
	return shots, nil
}
