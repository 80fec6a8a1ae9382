// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Sessions are ephemeral: they live only as long as the process and are
// never resumed after a restart.
//
// Characteristics:
//   - Bounded by an LRU cache; the least recently used session is evicted
//     once capacity is reached.
//   - Each transition is applied to a cloned game which then replaces the
//     stored snapshot in one step. A rejected transition replaces nothing.
//   - Stored sessions are never mutated, so returned pointers are safe to
//     read without locking.

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pillgame/apps/go-server/internal/game"
)

// ErrNotFound is returned for unknown or evicted session ids.
var ErrNotFound = errors.New("session not found")

// Session is a read-only snapshot of one player's game.
type Session struct {
	ID        string     `json:"id"`
	Player    string     `json:"player"`
	Game      *game.Game `json:"game"`
	CreatedAt time.Time  `json:"createdAt"`
	StartedAt time.Time  `json:"startedAt"` // start of the current round; moved by reset
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Elapsed is the time spent on the current round as of t.
func (s *Session) Elapsed(t time.Time) time.Duration { return t.Sub(s.StartedAt) }

// Store defines the persistence interface for game sessions.
type Store interface {
	// Create registers a new session for g and returns its snapshot.
	Create(ctx context.Context, player string, g *game.Game) (*Session, error)

	// Get retrieves a session by id.
	Get(ctx context.Context, id string) (*Session, error)

	// Apply runs one intent against a session. The returned session is the
	// snapshot after the transition (unchanged when err is a rejection).
	Apply(ctx context.Context, id string, in game.Intent) (*Session, game.Result, error)

	// Delete drops a session.
	Delete(ctx context.Context, id string) error

	// SweepIdle removes sessions not updated within ttl and reports how many.
	SweepIdle(ctx context.Context, ttl time.Duration) int

	// Len reports the number of live sessions.
	Len() int
}

// memory is an LRU-backed Store implementation.
type memory struct {
	mu    sync.Mutex // serializes read-modify-replace on the cache
	cache *lru.Cache // id -> *Session
	now   func() time.Time
}

// NewMemoryStore constructs an in-memory Store holding at most capacity sessions.
func NewMemoryStore(capacity int) (Store, error) {
	return newMemory(capacity, time.Now)
}

func newMemory(capacity int, now func() time.Time) (*memory, error) {
	cache, err := lru.NewWithEvict(capacity, func(key, _ interface{}) {
		log.Debug().Interface("session", key).Msg("session evicted")
	})
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	return &memory{cache: cache, now: now}, nil
}

func (m *memory) Create(ctx context.Context, player string, g *game.Game) (*Session, error) {
	t := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Player:    player,
		Game:      g.Clone(),
		CreatedAt: t,
		StartedAt: t,
		UpdatedAt: t,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Add(s.ID, s)
	return s, nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.cache.Get(id); ok {
		return v.(*Session), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Apply(ctx context.Context, id string, in game.Intent) (*Session, game.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.cache.Get(id)
	if !ok {
		return nil, game.Result{}, ErrNotFound
	}
	cur := v.(*Session)

	g := cur.Game.Clone()
	res, err := g.Apply(in)
	if err != nil {
		return cur, res, err
	}
	if err := g.Check(); err != nil {
		log.Error().Err(err).Str("session", id).Msg("invariant violated; transition discarded")
		return cur, game.Result{}, fmt.Errorf("apply %T: %w", in, err)
	}

	t := m.now()
	next := *cur
	next.Game = g
	next.UpdatedAt = t
	if res.Outcome == game.OutcomeReset {
		next.StartedAt = t
	}
	m.cache.Add(id, &next)
	return &next, res, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.cache.Contains(id) {
		return ErrNotFound
	}
	m.cache.Remove(id)
	return nil
}

func (m *memory) SweepIdle(ctx context.Context, ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	removed := 0
	for _, k := range m.cache.Keys() {
		v, ok := m.cache.Peek(k)
		if !ok {
			continue
		}
		if v.(*Session).UpdatedAt.Before(cutoff) {
			m.cache.Remove(k)
			removed++
		}
	}
	return removed
}

func (m *memory) Len() int { return m.cache.Len() }
