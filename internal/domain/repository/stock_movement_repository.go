package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos de una empresa.
type MovementFilter struct {
	MovementType string
	Reason       string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// MovementSummary agregado de movimientos en un rango de fechas.
type MovementSummary struct {
	TotalMovements int
	TotalIn        decimal.Decimal
	TotalOut       decimal.Decimal
	TotalTransfers int
	ByType         map[string]int
	ByReason       map[string]int
}

// StockMovementRepository define el puerto del ledger de movimientos.
// El ledger es append-only: no existe Update ni Delete a propósito.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByStockRecord devuelve el historial completo de un registro,
	// ordenado por created_at ascendente (para reconciliación).
	ListByStockRecord(stockRecordID string) ([]*entity.StockMovement, error)
	ListByCompany(companyID string, filter MovementFilter) ([]*entity.StockMovement, error)
	Summary(companyID string, from, to *time.Time) (*MovementSummary, error)
	Recent(companyID string, since time.Time, limit int) ([]*entity.StockMovement, error)
}
