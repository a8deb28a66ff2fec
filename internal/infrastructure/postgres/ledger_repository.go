package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/codes"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo LedgerRepository over PostgreSQL.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository builds the ledger adapter.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `code, name, group_code, address1, address2, address3, city, state, pincode,
	phone, mobile, email, gstin, pan, cin, route, coalesce(salesman_code, ''), due_days,
	opening_balance, balance_type, active, created_at, updated_at`

func scanLedger(row pgx.Row, l *entity.Ledger, extra ...any) error {
	dest := []any{
		&l.Code, &l.Name, &l.GroupCode, &l.Address1, &l.Address2, &l.Address3, &l.City, &l.State, &l.Pincode,
		&l.Phone, &l.Mobile, &l.Email, &l.GSTIN, &l.PAN, &l.CIN, &l.Route, &l.SalesmanCode, &l.DueDays,
		&l.OpeningBalance, &l.BalanceType, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *LedgerRepo) Create(ctx context.Context, l *entity.Ledger) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ledgers (code, name, group_code, address1, address2, address3, city, state, pincode,
			phone, mobile, email, gstin, pan, cin, route, salesman_code, due_days,
			opening_balance, balance_type, active, created_at, updated_at, name_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
		l.Code, l.Name, l.GroupCode, l.Address1, l.Address2, l.Address3, l.City, l.State, l.Pincode,
		l.Phone, l.Mobile, l.Email, l.GSTIN, l.PAN, l.CIN, l.Route, nullable(l.SalesmanCode), l.DueDays,
		l.OpeningBalance, l.BalanceType, l.Active, l.CreatedAt, l.UpdatedAt, codes.FoldName(l.Name),
	)
	if err != nil {
		return wrapWrite("insert ledger", err)
	}
	return nil
}

func (r *LedgerRepo) GetByCode(ctx context.Context, code string) (*entity.Ledger, error) {
	var l entity.Ledger
	err := scanLedger(r.q.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE code = $1`, code), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger: %w", err)
	}
	return &l, nil
}

func (r *LedgerRepo) List(ctx context.Context, f repository.MasterFilter) ([]*entity.Ledger, int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+ledgerColumns+`, count(*) OVER ()
		FROM ledgers
		WHERE ($1 = '' OR code ILIKE $1 || '%' OR name ILIKE '%' || $1 || '%')
		ORDER BY code LIMIT $2 OFFSET $3`,
		f.Search, limitArg(f.Limit), f.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledgers: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Ledger
		total int
	)
	for rows.Next() {
		var l entity.Ledger
		if err := scanLedger(rows, &l, &total); err != nil {
			return nil, 0, fmt.Errorf("scan ledger: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

func (r *LedgerRepo) Codes(ctx context.Context) ([]string, error) {
	return collectCodes(ctx, r.q, `SELECT code FROM ledgers`)
}

func (r *LedgerRepo) Update(ctx context.Context, l *entity.Ledger) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE ledgers SET name = $2, group_code = $3, address1 = $4, address2 = $5, address3 = $6, city = $7,
			state = $8, pincode = $9, phone = $10, mobile = $11, email = $12, gstin = $13, pan = $14, cin = $15,
			route = $16, salesman_code = $17, due_days = $18, opening_balance = $19, balance_type = $20,
			active = $21, updated_at = $22, name_key = $23
		WHERE code = $1`,
		l.Code, l.Name, l.GroupCode, l.Address1, l.Address2, l.Address3, l.City,
		l.State, l.Pincode, l.Phone, l.Mobile, l.Email, l.GSTIN, l.PAN, l.CIN,
		l.Route, nullable(l.SalesmanCode), l.DueDays, l.OpeningBalance, l.BalanceType,
		l.Active, l.UpdatedAt, codes.FoldName(l.Name),
	)
	if err != nil {
		return wrapWrite("update ledger", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LedgerRepo) Delete(ctx context.Context, code string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM ledgers WHERE code = $1`, code)
	if err != nil {
		if errors.Is(translate(err), domain.ErrInUse) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete ledger: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
