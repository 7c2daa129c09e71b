package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fundView struct {
	MemberID  string `json:"member_id"`
	Available string `json:"available"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*ReadCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewReadCache(rdb, ttl, nil), s
}

func TestReadCache_SetGetInvalidate(t *testing.T) {
	c, s := newTestCache(t, time.Minute)
	ctx := context.Background()
	key := "fund:m1"

	var got fundView
	assert.False(t, c.GetJSON(ctx, key, &got), "cold cache misses")

	c.SetJSON(ctx, key, fundView{MemberID: "m1", Available: "40.00"})
	require.True(t, c.GetJSON(ctx, key, &got))
	assert.Equal(t, "40.00", got.Available)
	assert.Equal(t, time.Minute, s.TTL("relief:fund:m1"))

	c.Invalidate(ctx, key, "complaint:c1")
	assert.False(t, s.Exists("relief:fund:m1"))
	assert.False(t, c.GetJSON(ctx, key, &got))
}

func TestReadCache_ExpiresAfterTTL(t *testing.T) {
	c, s := newTestCache(t, 10*time.Second)
	ctx := context.Background()

	c.SetJSON(ctx, "complaint:c1", fundView{MemberID: "m1"})
	s.FastForward(11 * time.Second)

	var got fundView
	assert.False(t, c.GetJSON(ctx, "complaint:c1", &got))
}

func TestReadCache_CorruptEntryIsDropped(t *testing.T) {
	c, s := newTestCache(t, time.Minute)
	require.NoError(t, s.Set("relief:payments:m1", "{not json"))

	var got []fundView
	assert.False(t, c.GetJSON(context.Background(), "payments:m1", &got))
	assert.False(t, s.Exists("relief:payments:m1"))
}

func TestReadCache_UnavailableDegradesToMiss(t *testing.T) {
	c, s := newTestCache(t, time.Minute)
	s.Close()

	ctx := context.Background()
	var got fundView
	assert.NotPanics(t, func() {
		c.SetJSON(ctx, "fund:m1", fundView{})
		c.Invalidate(ctx, "fund:m1")
	})
	assert.False(t, c.GetJSON(ctx, "fund:m1", &got))
}

func TestReadCache_NilIsNoop(t *testing.T) {
	var c *ReadCache
	var got fundView
	assert.False(t, c.GetJSON(context.Background(), "k", &got))
	assert.NotPanics(t, func() {
		c.SetJSON(context.Background(), "k", got)
		c.Invalidate(context.Background(), "k")
	})
}
