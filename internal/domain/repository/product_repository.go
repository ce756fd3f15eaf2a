package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateCost actualiza solo el costo promedio (lo usa el ledger en entradas).
	UpdateCost(productID string, cost decimal.Decimal) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	// Delete desactiva el producto (soft delete); el chequeo de stock cero
	// es responsabilidad del caso de uso.
	Delete(id string) error
	// TotalStock suma el stock del producto en todas las bodegas.
	TotalStock(productID string) (decimal.Decimal, error)
	// ListLowStock: productos activos con stock total positivo pero bajo su mínimo.
	ListLowStock(companyID string) ([]*entity.Product, error)
	// ListOutOfStock: productos activos sin stock en ninguna bodega.
	ListOutOfStock(companyID string) ([]*entity.Product, error)
}
