package memory

import (
	"context"
	"sort"
	"time"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

var _ repository.RegisterRepository = (*RegisterRepo)(nil)

// RegisterRepo in-memory RegisterRepository.
type RegisterRepo struct {
	s *Store
}

func (r *RegisterRepo) Create(_ context.Context, e *entity.RegisterEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.registers = append(r.s.registers, *e)
	return nil
}

// List returns entries of reg within [from, to] ordered by date then bill number.
// The day book spans every register.
func (r *RegisterRepo) List(_ context.Context, reg entity.Register, from, to time.Time) ([]*entity.RegisterEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.RegisterEntry
	for _, e := range r.s.registers {
		if reg != entity.RegisterDayBook && e.Register != reg {
			continue
		}
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		e := e
		out = append(out, &e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].BillNo < out[j].BillNo
	})
	return out, nil
}
