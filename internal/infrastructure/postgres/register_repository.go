package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

var _ repository.RegisterRepository = (*RegisterRepo)(nil)

// RegisterRepo RegisterRepository over PostgreSQL.
type RegisterRepo struct {
	q Querier
}

// NewRegisterRepository builds the register adapter.
func NewRegisterRepository(q Querier) *RegisterRepo {
	return &RegisterRepo{q: q}
}

func (r *RegisterRepo) Create(ctx context.Context, e *entity.RegisterEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO register_entries (id, register, entry_date, bill_no, party, quantity, amount, tax)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, string(e.Register), e.Date, e.BillNo, e.Party, e.Quantity, e.Amount, e.Tax,
	)
	if err != nil {
		return fmt.Errorf("insert register entry: %w", err)
	}
	return nil
}

// List returns the rows of reg within [from, to]; zero bounds are open. The day book spans all registers.
func (r *RegisterRepo) List(ctx context.Context, reg entity.Register, from, to time.Time) ([]*entity.RegisterEntry, error) {
	var fromArg, toArg any
	if !from.IsZero() {
		fromArg = from
	}
	if !to.IsZero() {
		toArg = to
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, register, entry_date, bill_no, party, quantity, amount, tax
		FROM register_entries
		WHERE ($1 = 'day-book' OR register = $1)
		  AND ($2::date IS NULL OR entry_date >= $2::date)
		  AND ($3::date IS NULL OR entry_date <= $3::date)
		ORDER BY entry_date, bill_no`,
		string(reg), fromArg, toArg,
	)
	if err != nil {
		return nil, fmt.Errorf("list register %s: %w", reg, err)
	}
	defer rows.Close()
	var list []*entity.RegisterEntry
	for rows.Next() {
		var (
			e   entity.RegisterEntry
			reg string
		)
		if err := rows.Scan(&e.ID, &reg, &e.Date, &e.BillNo, &e.Party, &e.Quantity, &e.Amount, &e.Tax); err != nil {
			return nil, fmt.Errorf("scan register entry: %w", err)
		}
		e.Register = entity.Register(reg)
		list = append(list, &e)
	}
	return list, rows.Err()
}
