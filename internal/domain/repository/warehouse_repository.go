package repository

import "github.com/tu-usuario/stock-control/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse.
// ClearMain desmarca la bodega principal de la empresa (invariante: a lo más
// una principal); HasPositiveStock soporta el chequeo previo a eliminar.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error)
	Delete(id string) error
	ClearMain(companyID string) error
	HasPositiveStock(warehouseID string) (bool, error)
}
