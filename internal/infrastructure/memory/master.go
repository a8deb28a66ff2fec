package memory

import (
	"context"
	"time"

	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/codes"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

var _ repository.MasterRepository = (*MasterRepo)(nil)

// MasterRepo in-memory MasterRepository.
type MasterRepo struct {
	s *Store
}

func (r *MasterRepo) Create(_ context.Context, rec *entity.MasterRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	table := r.s.masters[rec.Kind]
	if _, ok := table[rec.Code]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range table {
		if codes.SameName(other.Name, rec.Name) {
			return domain.ErrDuplicate
		}
	}
	table[rec.Code] = *rec
	return nil
}

func (r *MasterRepo) GetByCode(_ context.Context, kind entity.MasterKind, code string) (*entity.MasterRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.masters[kind][code]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *MasterRepo) List(_ context.Context, kind entity.MasterKind, f repository.MasterFilter) ([]*entity.MasterRecord, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	table := r.s.masters[kind]
	var all []*entity.MasterRecord
	for _, code := range sortedKeys(table) {
		rec := table[code]
		if matches(rec.Code, rec.Name, f.Search) {
			all = append(all, &rec)
		}
	}
	return page(all, f), len(all), nil
}

func (r *MasterRepo) Codes(_ context.Context, kind entity.MasterKind) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedKeys(r.s.masters[kind]), nil
}

func (r *MasterRepo) Update(_ context.Context, rec *entity.MasterRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	table := r.s.masters[rec.Kind]
	current, ok := table[rec.Code]
	if !ok {
		return domain.ErrNotFound
	}
	for code, other := range table {
		if code != rec.Code && codes.SameName(other.Name, rec.Name) {
			return domain.ErrDuplicate
		}
	}
	current.Name = rec.Name
	current.UpdatedAt = time.Now()
	table[rec.Code] = current
	return nil
}

func (r *MasterRepo) Delete(_ context.Context, kind entity.MasterKind, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	table := r.s.masters[kind]
	if _, ok := table[code]; !ok {
		return domain.ErrNotFound
	}
	if r.s.masterReferenced(kind, code) {
		return domain.ErrInUse
	}
	delete(table, code)
	return nil
}

// masterReferenced mirrors the item/ledger foreign keys. Caller holds the lock.
func (s *Store) masterReferenced(kind entity.MasterKind, code string) bool {
	for _, it := range s.items {
		for _, c := range it.References()[kind] {
			if c == code {
				return true
			}
		}
	}
	if kind == entity.KindSalesman {
		for _, l := range s.ledgers {
			if l.SalesmanCode == code {
				return true
			}
		}
	}
	return false
}
