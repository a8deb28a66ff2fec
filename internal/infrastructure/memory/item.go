package memory

import (
	"context"
	"slices"

	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/codes"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo in-memory ItemRepository.
type ItemRepo struct {
	s *Store
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.Code]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.items {
		if codes.SameName(other.Name, item.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.Code] = cloneItem(item)
	return nil
}

func (r *ItemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[code]
	if !ok {
		return nil, nil
	}
	out := cloneItem(&it)
	return &out, nil
}

func (r *ItemRepo) List(_ context.Context, f repository.MasterFilter) ([]*entity.Item, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Item
	for _, code := range sortedKeys(r.s.items) {
		it := r.s.items[code]
		if matches(it.Code, it.Name, f.Search) {
			out := cloneItem(&it)
			all = append(all, &out)
		}
	}
	return page(all, f), len(all), nil
}

func (r *ItemRepo) Codes(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedKeys(r.s.items), nil
}

func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.Code]; !ok {
		return domain.ErrNotFound
	}
	for code, other := range r.s.items {
		if code != item.Code && codes.SameName(other.Name, item.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.Code] = cloneItem(item)
	return nil
}

func (r *ItemRepo) Delete(_ context.Context, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[code]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, code)
	return nil
}

func cloneItem(it *entity.Item) entity.Item {
	out := *it
	out.SizeCodes = slices.Clone(it.SizeCodes)
	return out
}
