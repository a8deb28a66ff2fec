package repository

import (
	"context"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// MasterFilter narrows a master listing. Search matches code prefix or name substring (case-insensitive).
type MasterFilter struct {
	Search string
	Limit  int
	Offset int
}

// MasterRepository persistence port for code+name master records.
type MasterRepository interface {
	Create(ctx context.Context, rec *entity.MasterRecord) error
	GetByCode(ctx context.Context, kind entity.MasterKind, code string) (*entity.MasterRecord, error)
	List(ctx context.Context, kind entity.MasterKind, f MasterFilter) ([]*entity.MasterRecord, int, error)
	Codes(ctx context.Context, kind entity.MasterKind) ([]string, error)
	Update(ctx context.Context, rec *entity.MasterRecord) error
	// Delete returns domain.ErrInUse when another table references the record.
	Delete(ctx context.Context, kind entity.MasterKind, code string) error
}
