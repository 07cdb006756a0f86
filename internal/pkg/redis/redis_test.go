package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestClientRoundTrip(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	raw, ok, err := c.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), raw)

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientMissingKeys(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	got, err := c.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, c.Del(ctx, "absent"))
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect("://nope")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := Connect("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer c.Close()

	ok, err := c.Exists(context.Background(), "nothing")
	require.NoError(t, err)
	assert.False(t, ok)
}
