package repository

import (
	"context"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// GroupRepository persistence port for the group tree.
type GroupRepository interface {
	Create(ctx context.Context, g *entity.Group) error
	GetByCode(ctx context.Context, code string) (*entity.Group, error)
	// ListAll returns every group ordered so that siblings keep their display order.
	ListAll(ctx context.Context) ([]*entity.Group, error)
	Delete(ctx context.Context, code string) error
}
