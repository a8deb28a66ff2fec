package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

// GroupTreeCache port for the cached tree (Redis or no-op).
type GroupTreeCache interface {
	Get(ctx context.Context) ([]*entity.GroupTree, bool, error)
	Set(ctx context.Context, tree []*entity.GroupTree, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// GroupUseCase serves the group tree and its mutations. Cache failures are logged
// and the tree is rebuilt from the repository.
type GroupUseCase struct {
	repo  repository.GroupRepository
	cache GroupTreeCache
	ttl   time.Duration
	log   zerolog.Logger
	build singleflight.Group

	// mu orders cache writes against invalidation; gen counts invalidations.
	mu  sync.Mutex
	gen uint64
}

// NewGroupUseCase builds the use case.
func NewGroupUseCase(repo repository.GroupRepository, cache GroupTreeCache, ttl time.Duration, log zerolog.Logger) *GroupUseCase {
	return &GroupUseCase{repo: repo, cache: cache, ttl: ttl, log: log}
}

// Tree returns the nested groups in display order.
// Concurrent misses share one repository read.
func (uc *GroupUseCase) Tree(ctx context.Context) ([]dto.GroupNode, error) {
	tree, ok, err := uc.cache.Get(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("group tree cache read failed")
	}
	if !ok {
		tree, err = uc.rebuild(ctx)
		if err != nil {
			return nil, err
		}
	}
	return toGroupNodes(tree), nil
}

func (uc *GroupUseCase) rebuild(ctx context.Context) ([]*entity.GroupTree, error) {
	ch := uc.build.DoChan("tree", func() (interface{}, error) {
		// detached from the first caller; every waiter shares this read
		rctx := context.WithoutCancel(ctx)
		start := uc.generation()
		groups, err := uc.repo.ListAll(rctx)
		if err != nil {
			return nil, err
		}
		tree := entity.BuildGroupTree(groups)
		uc.mu.Lock()
		if uc.gen == start {
			if err := uc.cache.Set(rctx, tree, uc.ttl); err != nil {
				uc.log.Warn().Err(err).Msg("group tree cache write failed")
			}
		} else {
			uc.log.Debug().Msg("groups changed during rebuild, tree not cached")
		}
		uc.mu.Unlock()
		return tree, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*entity.GroupTree), nil
	}
}

func (uc *GroupUseCase) generation() uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.gen
}

// EnsureStarterTree creates the starter groups when the store has none.
// It reports whether anything was created.
func (uc *GroupUseCase) EnsureStarterTree(ctx context.Context) (bool, error) {
	existing, err := uc.repo.ListAll(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	for _, g := range entity.StarterGroups() {
		if err := uc.repo.Create(ctx, &g); err != nil {
			return false, fmt.Errorf("create group %s: %w", g.Code, err)
		}
	}
	uc.invalidate(ctx)
	return true, nil
}

// Create adds a group under ParentCode (root when empty).
func (uc *GroupUseCase) Create(ctx context.Context, in dto.GroupRequest) (*dto.GroupNode, error) {
	g := &entity.Group{
		Code:       strings.TrimSpace(in.Code),
		Name:       strings.TrimSpace(in.Name),
		ParentCode: strings.TrimSpace(in.ParentCode),
	}
	if g.Code == "" || g.Name == "" {
		return nil, domain.Detailf(domain.ErrInvalidInput, "Group code and name are required")
	}
	if existing, err := uc.repo.GetByCode(ctx, g.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.Detailf(domain.ErrDuplicate, "Group code %q already exists", g.Code)
	}
	if g.ParentCode != "" {
		parent, err := uc.repo.GetByCode(ctx, g.ParentCode)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.Detailf(domain.ErrInvalidInput, "Unknown parent group %q", g.ParentCode)
		}
	}
	if err := uc.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return &dto.GroupNode{Code: g.Code, Name: g.Name, Children: []dto.GroupNode{}}, nil
}

// Delete removes a group with no children, items or ledgers.
func (uc *GroupUseCase) Delete(ctx context.Context, code string) error {
	if err := uc.repo.Delete(ctx, code); err != nil {
		if errors.Is(err, domain.ErrInUse) {
			return domain.Detailf(domain.ErrInUse, "Group %s is used in related tables and cannot be deleted", code)
		}
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *GroupUseCase) invalidate(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.gen++
	uc.build.Forget("tree")
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("group tree cache invalidate failed")
	}
}

func toGroupNodes(tree []*entity.GroupTree) []dto.GroupNode {
	out := make([]dto.GroupNode, 0, len(tree))
	for _, n := range tree {
		out = append(out, dto.GroupNode{Code: n.Code, Name: n.Name, Children: toGroupNodes(n.Children)})
	}
	return out
}
