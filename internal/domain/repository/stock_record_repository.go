package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// StockRecordRepository define el puerto para el saldo por producto+bodega.
// Solo el ledger de movimientos escribe sobre CurrentQuantity, y siempre
// dentro de una transacción.
type StockRecordRepository interface {
	GetByID(id string) (*entity.StockRecord, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar
	// escritores concurrentes sobre el mismo registro.
	GetByIDForUpdate(id string) (*entity.StockRecord, error)
	// GetOrCreateForUpdate devuelve el registro de producto+bodega con la
	// fila bloqueada, creándolo en cero si no existe. Seguro ante carreras
	// de creación duplicada (INSERT ... ON CONFLICT DO NOTHING + re-select).
	GetOrCreateForUpdate(productID, warehouseID string) (*entity.StockRecord, error)
	// SetQuantity sobreescribe el saldo ya validado por el ledger.
	// Rechaza valores negativos.
	SetQuantity(id string, quantity decimal.Decimal) error

	ListByCompany(companyID string, limit, offset int) ([]*entity.StockRecord, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockRecord, error)
	ListByProduct(productID string) ([]*entity.StockRecord, error)
}
