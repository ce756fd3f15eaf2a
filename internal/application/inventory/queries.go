package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// StockQueryUseCase lecturas sobre el ledger y los saldos. No escribe nada,
// por lo que opera directo sobre los repositorios sin transacción.
type StockQueryUseCase struct {
	movRepo       repository.StockMovementRepository
	recordRepo    repository.StockRecordRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	movRepo repository.StockMovementRepository,
	recordRepo repository.StockRecordRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		movRepo:       movRepo,
		recordRepo:    recordRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// GetMovement obtiene un movimiento verificando alcance de empresa a través
// de su registro de stock.
func (uc *StockQueryUseCase) GetMovement(_ context.Context, companyID, movementID string) (*entity.StockMovement, error) {
	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.scopedRecord(companyID, mov.StockRecordID); err != nil {
		return nil, err
	}
	return mov, nil
}

// ListMovements lista los movimientos de la empresa con filtros opcionales.
func (uc *StockQueryUseCase) ListMovements(_ context.Context, companyID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByCompany(companyID, filter)
}

// MovementHistory devuelve el historial completo de un registro, ordenado
// por fecha ascendente.
func (uc *StockQueryUseCase) MovementHistory(_ context.Context, companyID, stockRecordID string) ([]*entity.StockMovement, error) {
	if _, err := uc.scopedRecord(companyID, stockRecordID); err != nil {
		return nil, err
	}
	return uc.movRepo.ListByStockRecord(stockRecordID)
}

// Summary agrega los movimientos de la empresa en un rango de fechas.
func (uc *StockQueryUseCase) Summary(_ context.Context, companyID string, from, to *time.Time) (*repository.MovementSummary, error) {
	return uc.movRepo.Summary(companyID, from, to)
}

// Recent lista los movimientos de los últimos días (por defecto 7).
func (uc *StockQueryUseCase) Recent(_ context.Context, companyID string, days, limit int) ([]*entity.StockMovement, error) {
	if days <= 0 {
		days = 7
	}
	if limit <= 0 {
		limit = 50
	}
	since := time.Now().AddDate(0, 0, -days)
	return uc.movRepo.Recent(companyID, since, limit)
}

// GetRecord obtiene un saldo verificando alcance de empresa.
func (uc *StockQueryUseCase) GetRecord(_ context.Context, companyID, stockRecordID string) (*entity.StockRecord, error) {
	return uc.scopedRecord(companyID, stockRecordID)
}

// ListRecords lista los saldos de la empresa con paginación.
func (uc *StockQueryUseCase) ListRecords(_ context.Context, companyID string, limit, offset int) ([]*entity.StockRecord, error) {
	return uc.recordRepo.ListByCompany(companyID, limit, offset)
}

// ListRecordsByWarehouse lista los saldos de una bodega. Una bodega ajena es
// invisible: ErrNotFound.
func (uc *StockQueryUseCase) ListRecordsByWarehouse(_ context.Context, companyID, warehouseID string, limit, offset int) ([]*entity.StockRecord, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return uc.recordRepo.ListByWarehouse(warehouseID, limit, offset)
}

// RecordsByProduct lista los saldos de un producto en todas sus bodegas.
// Un producto ajeno es invisible: ErrNotFound.
func (uc *StockQueryUseCase) RecordsByProduct(_ context.Context, companyID, productID string) ([]*entity.StockRecord, error) {
	if err := uc.scopedProduct(companyID, productID); err != nil {
		return nil, err
	}
	return uc.recordRepo.ListByProduct(productID)
}

// MovementsByProduct devuelve el historial de un producto a través de todas
// sus bodegas, registro por registro en orden cronológico ascendente.
func (uc *StockQueryUseCase) MovementsByProduct(_ context.Context, companyID, productID string) ([]*entity.StockMovement, error) {
	if err := uc.scopedProduct(companyID, productID); err != nil {
		return nil, err
	}
	records, err := uc.recordRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	var movements []*entity.StockMovement
	for _, record := range records {
		history, err := uc.movRepo.ListByStockRecord(record.ID)
		if err != nil {
			return nil, err
		}
		movements = append(movements, history...)
	}
	return movements, nil
}

func (uc *StockQueryUseCase) scopedProduct(companyID, productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || product.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}

// scopedRecord resuelve el registro y verifica que su producto pertenezca a
// la empresa. Un registro ajeno es invisible: ErrNotFound, no ErrForbidden.
func (uc *StockQueryUseCase) scopedRecord(companyID, stockRecordID string) (*entity.StockRecord, error) {
	record, err := uc.recordRepo.GetByID(stockRecordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(record.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return record, nil
}
