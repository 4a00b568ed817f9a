package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	a, b := NewID(), NewID()

	_, found, err := s.Get(ctx, a, "flag")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, a, "flag", "true"))
	require.NoError(t, s.Set(ctx, a, "other", "x"))

	v, found, err := s.Get(ctx, a, "flag")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", v)

	_, found, err = s.Get(ctx, b, "flag")
	require.NoError(t, err)
	assert.False(t, found, "sessions are isolated")

	require.NoError(t, s.Delete(ctx, a, "flag"))
	_, found, err = s.Get(ctx, a, "flag")
	require.NoError(t, err)
	assert.False(t, found)

	v, found, err = s.Get(ctx, a, "other")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "x", v)

	require.NoError(t, s.Destroy(ctx, a))
	_, found, err = s.Get(ctx, a, "other")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Delete(ctx, NewID(), "missing"))
	require.NoError(t, s.Destroy(ctx, NewID()))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory(16, 0))
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2, 0)

	require.NoError(t, m.Set(ctx, "a", "k", "1"))
	require.NoError(t, m.Set(ctx, "b", "k", "1"))
	require.NoError(t, m.Set(ctx, "c", "k", "1"))

	_, found, _ := m.Get(ctx, "a", "k")
	assert.False(t, found)
	for _, sid := range []string{"b", "c"} {
		_, found, _ = m.Get(ctx, sid, "k")
		assert.True(t, found, sid)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(4, 20*time.Millisecond)

	require.NoError(t, m.Set(ctx, "a", "k", "1"))
	assert.Eventually(t, func() bool {
		_, found, _ := m.Get(ctx, "a", "k")
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, NewRedis(client, 0))
}

func TestRedisStoreTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedis(client, time.Hour)
	sid := NewID()
	require.NoError(t, s.Set(ctx, sid, "flag", "true"))
	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+sid))

	mr.FastForward(2 * time.Hour)
	_, found, err := s.Get(ctx, sid, "flag")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	s := NewRedis(client, 0)
	_, _, err := s.Get(context.Background(), NewID(), "flag")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, s.Set(context.Background(), NewID(), "flag", "true"), ErrUnavailable)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(NewID()))
	assert.False(t, ValidID("not-a-session"))
	assert.False(t, ValidID(""))
}
