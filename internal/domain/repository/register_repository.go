package repository

import (
	"context"
	"time"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// RegisterRepository read port for report registers. Zero bounds are open.
type RegisterRepository interface {
	Create(ctx context.Context, e *entity.RegisterEntry) error
	List(ctx context.Context, reg entity.Register, from, to time.Time) ([]*entity.RegisterEntry, error)
}
