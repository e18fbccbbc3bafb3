package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/store"
)

// SQLSTATE codes mapped by MapError.
const (
	uniqueViolationCode  = "23505"
	checkViolationCode   = "23514"
	notNullViolationCode = "23502"
)

// constraintErrors names the domain rule behind each CHECK constraint of the
// verbs table.
var constraintErrors = map[string]error{
	"verbs_category_check": domain.ErrInvalidCategory,
	"verbs_mastery_check":  domain.ErrInvalidMastery,
}

// MapError translates a PostgreSQL error into a store error. A CHECK
// violation on the verbs table also carries the matching domain error.
// Unmapped errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrVerbNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return store.NewStoreError("verb", "create", "duplicate infinitive", store.ErrVerbExists)
	case checkViolationCode:
		if rule, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, rule)
		}
		return fmt.Errorf("%w: check constraint %s: %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: column %s is required: %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	default:
		return err
	}
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation, which on the verbs table means a duplicate infinitive.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE matched no
// verb. A nil notFound defaults to store.ErrVerbNotFound.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("no result to check")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	if notFound == nil {
		return store.ErrVerbNotFound
	}
	return notFound
}
