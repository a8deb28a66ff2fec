package repository

import (
	"context"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// UserRepository persistence port for operators.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Count(ctx context.Context) (int, error)
}
