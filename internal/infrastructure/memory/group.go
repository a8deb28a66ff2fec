package memory

import (
	"context"

	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

var _ repository.GroupRepository = (*GroupRepo)(nil)

// GroupRepo in-memory GroupRepository. Insertion order is the display order.
type GroupRepo struct {
	s *Store
}

func (r *GroupRepo) Create(_ context.Context, g *entity.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.groups {
		if other.Code == g.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.groups = append(r.s.groups, *g)
	return nil
}

func (r *GroupRepo) GetByCode(_ context.Context, code string) (*entity.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, g := range r.s.groups {
		if g.Code == code {
			out := g
			return &out, nil
		}
	}
	return nil, nil
}

func (r *GroupRepo) ListAll(_ context.Context) ([]*entity.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		g := g
		out = append(out, &g)
	}
	return out, nil
}

func (r *GroupRepo) Delete(_ context.Context, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	idx := -1
	for i, g := range r.s.groups {
		if g.Code == code {
			idx = i
		}
		if g.ParentCode == code {
			return domain.ErrInUse
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	for _, it := range r.s.items {
		if it.GroupCode == code {
			return domain.ErrInUse
		}
	}
	for _, l := range r.s.ledgers {
		if l.GroupCode == code {
			return domain.ErrInUse
		}
	}
	r.s.groups = append(r.s.groups[:idx], r.s.groups[idx+1:]...)
	return nil
}
