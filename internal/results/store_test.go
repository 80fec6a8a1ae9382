package results

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pillgame/apps/go-server/assets"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sub", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrations, err := assets.Migrations()
	require.NoError(t, err)
	require.NoError(t, Migrate(db, migrations))
	return NewStore(db)
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte(`CREATE TABLE a (x INTEGER);`)},
		"002_b.sql": {Data: []byte(`INSERT INTO a (x) VALUES (1);`)},
	}
	require.NoError(t, Migrate(db, fsys))
	require.NoError(t, Migrate(db, fsys))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM a`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrate_BadSQL(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "bad.db"))
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, fstest.MapFS{"001.sql": {Data: []byte(`CREATE TABLE (`)}})
	assert.Error(t, err)
}

func TestInsertAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rows := []Result{
		{SessionID: "s1", Player: "ana", Score: 250, Correct: 6, Total: 8, ElapsedMs: 9000},
		{SessionID: "s2", Player: "ben", Score: 400, Correct: 8, Total: 8, Perfect: true, ElapsedMs: 12000},
		{SessionID: "s3", Player: "cy", Score: 400, Correct: 8, Total: 8, Perfect: true, ElapsedMs: 8000},
		{SessionID: "s1", Player: "ana", Score: 390, Correct: 8, Total: 8, Perfect: true, ElapsedMs: 1000},
	}
	for _, r := range rows {
		id, err := s.Insert(ctx, r)
		require.NoError(t, err)
		assert.Positive(t, id)
	}

	top, err := s.Leaderboard(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "cy", top[0].Player)
	assert.Equal(t, "ben", top[1].Player)
	assert.Equal(t, 390, top[2].Score)
	assert.True(t, top[0].Perfect)
	assert.False(t, top[0].CreatedAt.IsZero())

	mine, err := s.BySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, 250, mine[0].Score)
	assert.False(t, mine[0].Perfect)
}

func TestLeaderboard_Empty(t *testing.T) {
	top, err := openTestStore(t).Leaderboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestLeaderboard_BadTimestamp(t *testing.T) {
	s := openTestStore(t)
	_, err := s.db.Exec(`INSERT INTO round_results (session_id, score, correct, total, created_at)
	                     VALUES ('s1', 100, 2, 8, 'yesterday')`)
	require.NoError(t, err)

	_, err = s.Leaderboard(context.Background(), 10)
	assert.ErrorContains(t, err, "created_at")
}
