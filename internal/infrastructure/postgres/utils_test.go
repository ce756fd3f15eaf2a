package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// El índice parcial de bodega principal y los UNIQUE de negocio llegan como
// 23505; los repositorios los traducen a domain.ErrDuplicate a partir de este
// chequeo, incluso si vienen envueltos.
func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "warehouses_one_main_per_company"}

	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert warehouse: %w", pgErr)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"})) // foreign key
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}
