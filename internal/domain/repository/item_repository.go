package repository

import (
	"context"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// ItemRepository persistence port for items.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	List(ctx context.Context, f MasterFilter) ([]*entity.Item, int, error)
	Codes(ctx context.Context) ([]string, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, code string) error
}
