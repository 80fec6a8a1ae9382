package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pillgame/apps/go-server/internal/catalog"
	"github.com/robalobadob/pillgame/apps/go-server/internal/game"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, capacity int) (*memory, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	m, err := newMemory(capacity, clk.Now)
	require.NoError(t, err)
	return m, clk
}

func TestCreateGet(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestStore(t, 10)

	s, err := m.Create(ctx, "ana", game.New(catalog.Default()))
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "ana", s.Player)

	got, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApply_ReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	m, clk := newTestStore(t, 10)
	s, _ := m.Create(ctx, "", game.New(catalog.Default()))

	clk.Advance(time.Minute)
	next, res, err := m.Apply(ctx, s.ID, game.PlaceIntent{TokenID: 1, ContainerID: 1, SlotID: 1})
	require.NoError(t, err)
	assert.Equal(t, game.OutcomeCorrect, res.Outcome)
	assert.Equal(t, 50, next.Game.Score)
	assert.Equal(t, clk.Now(), next.UpdatedAt)

	// The earlier snapshot is untouched.
	assert.Equal(t, 0, s.Game.Score)
	assert.Len(t, s.Game.Pool, 10)

	got, _ := m.Get(ctx, s.ID)
	assert.Same(t, next, got)
}

func TestApply_RejectionKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestStore(t, 10)
	s, _ := m.Create(ctx, "", game.New(catalog.Default()))
	after, _, err := m.Apply(ctx, s.ID, game.PlaceIntent{TokenID: 1, ContainerID: 1, SlotID: 1})
	require.NoError(t, err)

	cur, res, err := m.Apply(ctx, s.ID, game.PlaceIntent{TokenID: 2, ContainerID: 1, SlotID: 1})
	assert.ErrorIs(t, err, game.ErrSlotOccupied)
	assert.Equal(t, game.OutcomeOccupied, res.Outcome)
	assert.Same(t, after, cur)
}

func TestApply_ResetMovesRoundStart(t *testing.T) {
	ctx := context.Background()
	m, clk := newTestStore(t, 10)
	s, _ := m.Create(ctx, "", game.New(catalog.Default()))

	clk.Advance(5 * time.Minute)
	next, _, err := m.Apply(ctx, s.ID, game.ResetIntent{})
	require.NoError(t, err)
	assert.Equal(t, clk.Now(), next.StartedAt)
	assert.Equal(t, s.CreatedAt, next.CreatedAt)
	assert.Zero(t, next.Elapsed(clk.Now()))
}

func TestApply_Unknown(t *testing.T) {
	m, _ := newTestStore(t, 10)
	_, _, err := m.Apply(context.Background(), "nope", game.ResetIntent{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCapacityEvictsLeastRecent(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestStore(t, 2)
	cat := catalog.Default()

	a, _ := m.Create(ctx, "a", game.New(cat))
	b, _ := m.Create(ctx, "b", game.New(cat))
	_, _ = m.Get(ctx, a.ID) // a is now most recent
	_, _ = m.Create(ctx, "c", game.New(cat))

	assert.Equal(t, 2, m.Len())
	_, err := m.Get(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, a.ID)
	assert.NoError(t, err)
}

func TestSweepIdle(t *testing.T) {
	ctx := context.Background()
	m, clk := newTestStore(t, 10)
	cat := catalog.Default()

	old, _ := m.Create(ctx, "old", game.New(cat))
	clk.Advance(90 * time.Minute)
	fresh, _ := m.Create(ctx, "fresh", game.New(cat))
	clk.Advance(40 * time.Minute)

	assert.Equal(t, 1, m.SweepIdle(ctx, time.Hour))
	_, err := m.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestStore(t, 10)
	s, _ := m.Create(ctx, "", game.New(catalog.Default()))

	require.NoError(t, m.Delete(ctx, s.ID))
	assert.ErrorIs(t, m.Delete(ctx, s.ID), ErrNotFound)
}

func TestApply_Concurrent(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestStore(t, 10)
	s, _ := m.Create(ctx, "", game.New(catalog.Default()))

	// Every goroutine races for slot 1; exactly one must win.
	var wg sync.WaitGroup
	wins := make(chan int, 10)
	for tok := 1; tok <= 10; tok++ {
		wg.Add(1)
		go func(tok int) {
			defer wg.Done()
			if _, _, err := m.Apply(ctx, s.ID, game.PlaceIntent{TokenID: tok, ContainerID: 1, SlotID: 1}); err == nil {
				wins <- tok
			}
		}(tok)
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)
	got, _ := m.Get(ctx, s.ID)
	require.NoError(t, got.Game.Check())
	assert.Len(t, got.Game.Pool, 9)
}
