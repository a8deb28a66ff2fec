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

var _ repository.MasterRepository = (*MasterRepo)(nil)

// MasterRepo MasterRepository over PostgreSQL (pool or tx).
type MasterRepo struct {
	q Querier
}

// NewMasterRepository builds the master adapter.
func NewMasterRepository(q Querier) *MasterRepo {
	return &MasterRepo{q: q}
}

// Create inserts a master record. Unique (kind, code) and (kind, name_key) surface as ErrDuplicate.
func (r *MasterRepo) Create(ctx context.Context, rec *entity.MasterRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO master_records (kind, code, name, name_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(rec.Kind), rec.Code, rec.Name, codes.FoldName(rec.Name), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(translate(err), domain.ErrDuplicate) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", rec.Kind, err)
	}
	return nil
}

// GetByCode returns nil, nil when absent.
func (r *MasterRepo) GetByCode(ctx context.Context, kind entity.MasterKind, code string) (*entity.MasterRecord, error) {
	var rec entity.MasterRecord
	var k string
	err := r.q.QueryRow(ctx, `
		SELECT kind, code, name, created_at, updated_at
		FROM master_records WHERE kind = $1 AND code = $2`,
		string(kind), code,
	).Scan(&k, &rec.Code, &rec.Name, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	rec.Kind = entity.MasterKind(k)
	return &rec, nil
}

// List pages through a kind ordered by code; the int is the total before paging.
func (r *MasterRepo) List(ctx context.Context, kind entity.MasterKind, f repository.MasterFilter) ([]*entity.MasterRecord, int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT code, name, created_at, updated_at, count(*) OVER ()
		FROM master_records
		WHERE kind = $1 AND ($2 = '' OR code ILIKE $2 || '%' OR name ILIKE '%' || $2 || '%')
		ORDER BY code
		LIMIT $3 OFFSET $4`,
		string(kind), f.Search, limitArg(f.Limit), f.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()
	var (
		list  []*entity.MasterRecord
		total int
	)
	for rows.Next() {
		rec := entity.MasterRecord{Kind: kind}
		if err := rows.Scan(&rec.Code, &rec.Name, &rec.CreatedAt, &rec.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", kind, err)
		}
		list = append(list, &rec)
	}
	return list, total, rows.Err()
}

// Codes returns every code of a kind (next code computation).
func (r *MasterRepo) Codes(ctx context.Context, kind entity.MasterKind) ([]string, error) {
	return collectCodes(ctx, r.q, `SELECT code FROM master_records WHERE kind = $1`, string(kind))
}

// Update renames a record.
func (r *MasterRepo) Update(ctx context.Context, rec *entity.MasterRecord) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE master_records SET name = $3, name_key = $4, updated_at = $5
		WHERE kind = $1 AND code = $2`,
		string(rec.Kind), rec.Code, rec.Name, codes.FoldName(rec.Name), rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(translate(err), domain.ErrDuplicate) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update %s: %w", rec.Kind, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a record; a foreign key violation becomes ErrInUse.
func (r *MasterRepo) Delete(ctx context.Context, kind entity.MasterKind, code string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM master_records WHERE kind = $1 AND code = $2`, string(kind), code)
	if err != nil {
		if errors.Is(translate(err), domain.ErrInUse) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectCodes(ctx context.Context, q Querier, sql string, args ...any) ([]string, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
