// internal/results/store.go
//
// Finished-round history backed by SQL (SQLite in production).
// Only summaries of completed rounds are written here; live game state
// stays in memory and is never restored from this table.

package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Result is one completed round.
type Result struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Correct   int       `json:"correct"`
	Total     int       `json:"total"`
	Perfect   bool      `json:"perfect"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store reads and writes round_results.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records a completed round and returns its row id.
func (s *Store) Insert(ctx context.Context, r Result) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO round_results (session_id, player, score, correct, total, perfect, elapsed_ms)
		 VALUES (?,?,?,?,?,?,?)`,
		r.SessionID, r.Player, r.Score, r.Correct, r.Total, r.Perfect, r.ElapsedMs,
	)
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	return res.LastInsertId()
}

// Leaderboard returns the best rounds: highest score, then fastest, then earliest.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, player, score, correct, total, perfect, elapsed_ms, created_at
		 FROM round_results
		 ORDER BY score DESC, elapsed_ms ASC, created_at ASC, id ASC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return scanResults(rows)
}

// BySession lists the rounds completed in one session, oldest first.
func (s *Store) BySession(ctx context.Context, sessionID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, player, score, correct, total, perfect, elapsed_ms, created_at
		 FROM round_results WHERE session_id=? ORDER BY id ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("session results: %w", err)
	}
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var (
			r       Result
			created string
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Player, &r.Score, &r.Correct, &r.Total,
			&r.Perfect, &r.ElapsedMs, &created); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		r.CreatedAt = t
		out = append(out, r)
	}
	return out, rows.Err()
}
