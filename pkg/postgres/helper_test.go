package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	fk := fmt.Errorf("PolicyRepo.Create: %w", &pgconn.PgError{Code: "23503", ConstraintName: "policies_client_id_fkey"})
	unique := fmt.Errorf("ClientRepo.Create: %w", &pgconn.PgError{Code: "23505"})
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsInvalidInput(check))
	assert.False(t, IsInvalidInput(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
	assert.Equal(t, "policies_client_id_fkey", ConstraintName(fk))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", Operation("\n\t\tSELECT id FROM points"))
	assert.Equal(t, "insert", Operation("INSERT INTO crops(name) VALUES($1)"))
	assert.Equal(t, "unknown", Operation("   "))
}
