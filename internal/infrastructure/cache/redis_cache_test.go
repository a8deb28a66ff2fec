package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

func newTestCache(t *testing.T) (*RedisGroupTreeCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisGroupTreeCacheFromClient(client), mr
}

func sampleTree() []*entity.GroupTree {
	return []*entity.GroupTree{
		{Code: "01", Name: "Capital Account"},
		{Code: "02", Name: "Current Assets", Children: []*entity.GroupTree{
			{Code: "0201", Name: "Cash-in-Hand"},
		}},
	}
}

func TestRedisGroupTreeCache_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, sampleTree(), time.Minute))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "Current Assets", got[1].Name)
	require.Len(t, got[1].Children, 1)
	assert.Equal(t, "0201", got[1].Children[0].Code)
}

func TestRedisGroupTreeCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleTree(), time.Minute))
	assert.True(t, mr.Exists(GroupTreeKey))

	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(GroupTreeKey))
}

func TestRedisGroupTreeCache_Expires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleTree(), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisGroupTreeCache_UnreachableServer(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, _, err := c.Get(context.Background())
	assert.Error(t, err)
}

func TestNoopGroupTreeCache(t *testing.T) {
	c := NoopGroupTreeCache{}
	require.NoError(t, c.Set(context.Background(), sampleTree(), time.Minute))
	_, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
