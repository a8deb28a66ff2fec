package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// RedisGroupTreeCache keeps the tree as JSON under GroupTreeKey.
type RedisGroupTreeCache struct {
	client *redis.Client
}

// NewRedisGroupTreeCache dials lazily; call Ping to check the connection.
func NewRedisGroupTreeCache(addr, password string, db int) *RedisGroupTreeCache {
	return NewRedisGroupTreeCacheFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

// NewRedisGroupTreeCacheFromClient wraps an existing client.
func NewRedisGroupTreeCacheFromClient(client *redis.Client) *RedisGroupTreeCache {
	return &RedisGroupTreeCache{client: client}
}

func (c *RedisGroupTreeCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisGroupTreeCache) Close() error {
	return c.client.Close()
}

type cachedNode struct {
	Code     string        `json:"code"`
	Name     string        `json:"name"`
	Children []*cachedNode `json:"children,omitempty"`
}

func toCached(nodes []*entity.GroupTree) []*cachedNode {
	out := make([]*cachedNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &cachedNode{Code: n.Code, Name: n.Name, Children: toCached(n.Children)})
	}
	return out
}

func fromCached(nodes []*cachedNode) []*entity.GroupTree {
	out := make([]*entity.GroupTree, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &entity.GroupTree{Code: n.Code, Name: n.Name, Children: fromCached(n.Children)})
	}
	return out
}

func (c *RedisGroupTreeCache) Get(ctx context.Context) ([]*entity.GroupTree, bool, error) {
	val, err := c.client.Get(ctx, GroupTreeKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var nodes []*cachedNode
	if err := json.Unmarshal(val, &nodes); err != nil {
		return nil, false, err
	}
	return fromCached(nodes), true, nil
}

func (c *RedisGroupTreeCache) Set(ctx context.Context, tree []*entity.GroupTree, ttl time.Duration) error {
	payload, err := json.Marshal(toCached(tree))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, GroupTreeKey, payload, ttl).Err()
}

func (c *RedisGroupTreeCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, GroupTreeKey).Err()
}
