package memory

import (
	"context"

	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/codes"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo in-memory LedgerRepository.
type LedgerRepo struct {
	s *Store
}

func (r *LedgerRepo) Create(_ context.Context, l *entity.Ledger) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ledgers[l.Code]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.ledgers {
		if codes.SameName(other.Name, l.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.ledgers[l.Code] = *l
	return nil
}

func (r *LedgerRepo) GetByCode(_ context.Context, code string) (*entity.Ledger, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.ledgers[code]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LedgerRepo) List(_ context.Context, f repository.MasterFilter) ([]*entity.Ledger, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Ledger
	for _, code := range sortedKeys(r.s.ledgers) {
		l := r.s.ledgers[code]
		if matches(l.Code, l.Name, f.Search) {
			all = append(all, &l)
		}
	}
	return page(all, f), len(all), nil
}

func (r *LedgerRepo) Codes(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedKeys(r.s.ledgers), nil
}

func (r *LedgerRepo) Update(_ context.Context, l *entity.Ledger) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ledgers[l.Code]; !ok {
		return domain.ErrNotFound
	}
	for code, other := range r.s.ledgers {
		if code != l.Code && codes.SameName(other.Name, l.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.ledgers[l.Code] = *l
	return nil
}

func (r *LedgerRepo) Delete(_ context.Context, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ledgers[code]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.ledgers, code)
	return nil
}
