package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de transporte).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser mayor que cero")

	// ErrMovementImmutable: los movimientos son un registro de auditoría append-only.
	// La corrección se hace con un movimiento de ajuste, nunca borrando.
	ErrMovementImmutable = errors.New("los movimientos de stock no se pueden eliminar; cree un ajuste")

	ErrNoOpAdjustment             = errors.New("la nueva cantidad es igual a la cantidad actual")
	ErrSameWarehouseTransfer      = errors.New("la bodega destino debe ser distinta a la de origen")
	ErrTransferRequiresWarehouses = errors.New("un traslado requiere bodega origen y destino")
	ErrCrossCompanyReference      = errors.New("el recurso pertenece a otra empresa")
	ErrHasDependencies            = errors.New("no se puede eliminar: otros recursos dependen de este")
	ErrWarehouseHasStock          = errors.New("no se puede eliminar una bodega con stock positivo")
	ErrProductHasStock            = errors.New("no se puede eliminar un producto con stock positivo")
)

// InsufficientStockError lleva el stock disponible para que el caller pueda
// construir un mensaje útil. errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s", e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ValidationErrors acumula errores por campo. Se devuelve completo (no
// fail-fast) para que el caller pueda mostrar todos los problemas de una vez.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}
