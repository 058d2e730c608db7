package repo

import (
	"errors"
	"fmt"

	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/pkg/postgres"
	"github.com/jackc/pgx/v5"
)

// mapDeleteError is mapError for deletes, where a foreign key violation means the row is still in use.
func mapDeleteError(err, notFound error) error {
	if postgres.IsForeignKeyViolation(err) {
		return types.ErrStillReferenced
	}
	return mapError(err, notFound, nil)
}

// mapError translates driver errors into domain errors. notFound is returned for pgx.ErrNoRows,
// taken for unique violations.
func mapError(err, notFound, taken error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return notFound
	case postgres.IsUniqueViolation(err):
		if taken == nil {
			taken = types.ErrAlreadyExists
		}
		return taken
	case postgres.IsForeignKeyViolation(err):
		return fmt.Errorf("%w (%s)", types.ErrInvalidReference, postgres.ConstraintName(err))
	case postgres.IsInvalidInput(err):
		return fmt.Errorf("%w: %v", types.ErrInvalidValue, err)
	default:
		return err
	}
}
