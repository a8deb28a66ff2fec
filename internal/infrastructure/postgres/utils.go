package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rsankarapandian/stores-backoffice/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translate maps constraint violations to domain errors; anything else is returned as is.
func translate(err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return domain.ErrDuplicate
	case codeForeignKeyViolation:
		return domain.ErrInUse
	}
	return err
}

// limitArg turns a zero limit into "no limit" for LIMIT $n.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
