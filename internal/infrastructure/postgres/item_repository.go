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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo ItemRepository over PostgreSQL. Sizes live in item_sizes.
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the item adapter.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `code, prefix, name, group_code, coalesce(brand_code, ''), coalesce(category_code, ''),
	coalesce(product_code, ''), coalesce(model_code, ''), unit_code, gst_rate, hsn_code, item_type,
	cost, selling_price, mrp, wholesale_price, created_at, updated_at`

func scanItem(row pgx.Row, it *entity.Item, extra ...any) error {
	dest := []any{
		&it.Code, &it.Prefix, &it.Name, &it.GroupCode, &it.BrandCode, &it.CategoryCode,
		&it.ProductCode, &it.ModelCode, &it.UnitCode, &it.GSTRate, &it.HSNCode, &it.Type,
		&it.Cost, &it.SellingPrice, &it.MRP, &it.WholesalePrice, &it.CreatedAt, &it.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// nullable stores empty optional references as NULL so the composite foreign keys are skipped.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create inserts the item and its sizes in one transaction.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO items (code, prefix, name, group_code, brand_code, category_code, product_code, model_code,
				unit_code, gst_rate, hsn_code, item_type, cost, selling_price, mrp, wholesale_price, created_at, updated_at,
				name_key)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
			it.Code, it.Prefix, it.Name, it.GroupCode, nullable(it.BrandCode), nullable(it.CategoryCode),
			nullable(it.ProductCode), nullable(it.ModelCode), it.UnitCode, it.GSTRate, it.HSNCode, it.Type,
			it.Cost, it.SellingPrice, it.MRP, it.WholesalePrice, it.CreatedAt, it.UpdatedAt,
			codes.FoldName(it.Name),
		)
		if err != nil {
			return wrapWrite("insert item", err)
		}
		return writeSizes(ctx, tx, it)
	})
}

func writeSizes(ctx context.Context, tx pgx.Tx, it *entity.Item) error {
	if _, err := tx.Exec(ctx, `DELETE FROM item_sizes WHERE item_code = $1`, it.Code); err != nil {
		return fmt.Errorf("clear item sizes: %w", err)
	}
	for i, size := range it.SizeCodes {
		if _, err := tx.Exec(ctx,
			`INSERT INTO item_sizes (item_code, size_code, position) VALUES ($1, $2, $3)`,
			it.Code, size, i,
		); err != nil {
			return wrapWrite("insert item size", err)
		}
	}
	return nil
}

// wrapWrite maps constraint violations. On writes a foreign key failure means a dangling reference.
func wrapWrite(op string, err error) error {
	switch translate(err) {
	case domain.ErrDuplicate:
		return domain.ErrDuplicate
	case domain.ErrInUse:
		return domain.ErrInvalidInput
	}
	return fmt.Errorf("%s: %w", op, err)
}

// GetByCode returns nil, nil when absent.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	var it entity.Item
	err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE code = $1`, code), &it)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	sizes, err := r.sizes(ctx, []string{it.Code})
	if err != nil {
		return nil, err
	}
	it.SizeCodes = sizes[it.Code]
	return &it, nil
}

// List pages through items ordered by code.
func (r *ItemRepo) List(ctx context.Context, f repository.MasterFilter) ([]*entity.Item, int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+itemColumns+`, count(*) OVER ()
		FROM items
		WHERE ($1 = '' OR code ILIKE $1 || '%' OR name ILIKE '%' || $1 || '%')
		ORDER BY code LIMIT $2 OFFSET $3`,
		f.Search, limitArg(f.Limit), f.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Item
		codes []string
		total int
	)
	for rows.Next() {
		var it entity.Item
		if err := scanItem(rows, &it, &total); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
		codes = append(codes, it.Code)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	sizes, err := r.sizes(ctx, codes)
	if err != nil {
		return nil, 0, err
	}
	for _, it := range list {
		it.SizeCodes = sizes[it.Code]
	}
	return list, total, nil
}

func (r *ItemRepo) sizes(ctx context.Context, itemCodes []string) (map[string][]string, error) {
	out := map[string][]string{}
	if len(itemCodes) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT item_code, size_code FROM item_sizes
		WHERE item_code = ANY($1) ORDER BY item_code, position`, itemCodes)
	if err != nil {
		return nil, fmt.Errorf("list item sizes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item, size string
		if err := rows.Scan(&item, &size); err != nil {
			return nil, fmt.Errorf("scan item size: %w", err)
		}
		out[item] = append(out[item], size)
	}
	return out, rows.Err()
}

// Codes returns every item code.
func (r *ItemRepo) Codes(ctx context.Context) ([]string, error) {
	return collectCodes(ctx, r.q, `SELECT code FROM items`)
}

// Update rewrites the item row and its sizes.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
			UPDATE items SET prefix = $2, name = $3, group_code = $4, brand_code = $5, category_code = $6,
				product_code = $7, model_code = $8, unit_code = $9, gst_rate = $10, hsn_code = $11, item_type = $12,
				cost = $13, selling_price = $14, mrp = $15, wholesale_price = $16, updated_at = $17, name_key = $18
			WHERE code = $1`,
			it.Code, it.Prefix, it.Name, it.GroupCode, nullable(it.BrandCode), nullable(it.CategoryCode),
			nullable(it.ProductCode), nullable(it.ModelCode), it.UnitCode, it.GSTRate, it.HSNCode, it.Type,
			it.Cost, it.SellingPrice, it.MRP, it.WholesalePrice, it.UpdatedAt, codes.FoldName(it.Name),
		)
		if err != nil {
			return wrapWrite("update item", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return writeSizes(ctx, tx, it)
	})
}

// Delete removes the item (sizes cascade).
func (r *ItemRepo) Delete(ctx context.Context, code string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE code = $1`, code)
	if err != nil {
		if errors.Is(translate(err), domain.ErrInUse) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
