package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

var _ repository.GroupRepository = (*GroupRepo)(nil)

// GroupRepo GroupRepository over PostgreSQL. The serial position keeps display order.
type GroupRepo struct {
	q Querier
}

// NewGroupRepository builds the group adapter.
func NewGroupRepository(q Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

func (r *GroupRepo) Create(ctx context.Context, g *entity.Group) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO groups (code, name, parent_code) VALUES ($1, $2, $3)`,
		g.Code, g.Name, nullable(g.ParentCode),
	)
	if err != nil {
		return wrapWrite("insert group", err)
	}
	return nil
}

func (r *GroupRepo) GetByCode(ctx context.Context, code string) (*entity.Group, error) {
	var g entity.Group
	err := r.q.QueryRow(ctx,
		`SELECT code, name, coalesce(parent_code, '') FROM groups WHERE code = $1`, code,
	).Scan(&g.Code, &g.Name, &g.ParentCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

func (r *GroupRepo) ListAll(ctx context.Context) ([]*entity.Group, error) {
	rows, err := r.q.Query(ctx, `SELECT code, name, coalesce(parent_code, '') FROM groups ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	var list []*entity.Group
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.Code, &g.Name, &g.ParentCode); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

func (r *GroupRepo) Delete(ctx context.Context, code string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM groups WHERE code = $1`, code)
	if err != nil {
		if errors.Is(translate(err), domain.ErrInUse) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete group: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
