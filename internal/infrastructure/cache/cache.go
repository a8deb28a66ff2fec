// Package cache holds the group tree cache. Redis backs it when REDIS_ADDR is set,
// otherwise the no-op implementation is used.
package cache

import (
	"context"
	"time"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// GroupTreeKey is the single key the tree is stored under.
const GroupTreeKey = "rsp:groups:tree"

// NoopGroupTreeCache never hits.
type NoopGroupTreeCache struct{}

func (NoopGroupTreeCache) Get(_ context.Context) ([]*entity.GroupTree, bool, error) {
	return nil, false, nil
}

func (NoopGroupTreeCache) Set(_ context.Context, _ []*entity.GroupTree, _ time.Duration) error {
	return nil
}

func (NoopGroupTreeCache) Invalidate(_ context.Context) error {
	return nil
}
