package repository

import (
	"context"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// LedgerRepository persistence port for ledgers.
type LedgerRepository interface {
	Create(ctx context.Context, ledger *entity.Ledger) error
	GetByCode(ctx context.Context, code string) (*entity.Ledger, error)
	List(ctx context.Context, f MasterFilter) ([]*entity.Ledger, int, error)
	Codes(ctx context.Context) ([]string, error)
	Update(ctx context.Context, ledger *entity.Ledger) error
	Delete(ctx context.Context, code string) error
}
