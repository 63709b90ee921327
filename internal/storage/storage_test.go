package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStorage runs the behaviour every driver must share
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, KeyToken, KeyUser))

	_, err := s.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyToken, "abc"))
	v, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Set(ctx, KeyToken, "def"))
	v, err = s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	require.NoError(t, s.Set(ctx, KeyUser, `{"id":1}`))
	require.NoError(t, s.Delete(ctx, KeyToken, KeyUser))

	_, err = s.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting missing keys is not an error
	assert.NoError(t, s.Delete(ctx, KeyToken))
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()
	exerciseStorage(t, s)
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewFileStorage(path)
	exerciseStorage(t, s)
}

func TestFileStorage_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	require.NoError(t, NewFileStorage(path).Set(ctx, KeyToken, "persisted"))

	v, err := NewFileStorage(path).Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "persisted", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStorage(path).Get(context.Background(), KeyToken)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" || testing.Short() {
		t.Skip("REDIS_ADDR not set, skipping redis integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(ctx).Err())

	s := NewRedisStorage(client, "fundsight-test:")
	defer s.Close()
	exerciseStorage(t, s)
}

func TestPostgresStorage(t *testing.T) {
	pgURL := os.Getenv("PG_URL")
	if pgURL == "" || testing.Short() {
		t.Skip("PG_URL not set, skipping postgres integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pgURL)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, pool.Ping(ctx))

	s := NewPostgresStorage(pool)
	require.NoError(t, s.EnsureSchema(ctx))
	exerciseStorage(t, s)
}
