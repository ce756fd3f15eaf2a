package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	domaininv "github.com/tu-usuario/stock-control/internal/domain/inventory"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// CreateMovementUseCase es el ledger de movimientos de stock: único escritor
// de StockRecord.CurrentQuantity. Registra IN/OUT/TRANSFER de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type CreateMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewCreateMovementUseCase construye el caso de uso.
func NewCreateMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *CreateMovementUseCase {
	return &CreateMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementInput entrada para registrar un movimiento.
// Para IN/OUT: ProductID, WarehouseID, MovementType, Quantity, Reason.
// Para TRANSFER: WarehouseID es la bodega origen y ToWarehouseID la destino.
type MovementInput struct {
	CompanyID         string
	AccountID         string
	ProductID         string
	WarehouseID       string
	ToWarehouseID     string
	MovementType      string
	Quantity          decimal.Decimal
	Reason            string
	ReferenceDocument string
	Notes             string
	UnitCost          *decimal.Decimal
}

// applyParams parámetros del primitivo del ledger sobre un registro ya bloqueado.
type applyParams struct {
	record            *entity.StockRecord
	movementType      string
	quantity          decimal.Decimal
	reason            string
	accountID         string
	unitCost          *decimal.Decimal
	referenceDocument string
	notes             string
	fromWarehouseID   string
	toWarehouseID     string
	now               time.Time
}

// applyDelta es el primitivo del ledger: calcula el saldo resultante a partir
// del saldo pre-movimiento (nunca con una lectura posterior), persiste el
// movimiento y sobreescribe el saldo. El caller ya abrió la transacción y
// bloqueó la fila del registro.
func applyDelta(
	movRepo repository.StockMovementRepository,
	recordRepo repository.StockRecordRepository,
	p applyParams,
) (*entity.StockMovement, error) {
	current := p.record.CurrentQuantity
	var resulting decimal.Decimal
	switch p.movementType {
	case entity.MovementTypeIN:
		resulting = current.Add(p.quantity)
	case entity.MovementTypeOUT, entity.MovementTypeTRANSFER:
		if p.quantity.GreaterThan(current) {
			return nil, &domain.InsufficientStockError{Available: current}
		}
		resulting = current.Sub(p.quantity)
	default:
		return nil, domain.ErrInvalidInput
	}

	mov := &entity.StockMovement{
		ID:                uuid.New().String(),
		StockRecordID:     p.record.ID,
		MovementType:      p.movementType,
		Quantity:          p.quantity,
		ResultingBalance:  resulting,
		Reason:            p.reason,
		AccountID:         p.accountID,
		UnitCost:          p.unitCost,
		ReferenceDocument: p.referenceDocument,
		Notes:             p.notes,
		FromWarehouseID:   p.fromWarehouseID,
		ToWarehouseID:     p.toWarehouseID,
		CreatedAt:         p.now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	if err := recordRepo.SetQuantity(p.record.ID, resulting); err != nil {
		return nil, err
	}
	p.record.CurrentQuantity = resulting
	return mov, nil
}

// CreateMovement valida la entrada, verifica alcance de empresa y aplica el
// movimiento dentro de una transacción. Para TRANSFER devuelve el movimiento
// de la bodega origen (el registro primario de la operación).
func (uc *CreateMovementUseCase) CreateMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	verrs := domain.ValidationErrors{}
	if !entity.ValidMovementType(input.MovementType) {
		verrs["movement_type"] = "tipo de movimiento inválido"
	}
	if !entity.ValidReason(input.Reason) {
		verrs["reason"] = "motivo inválido"
	}
	if input.ProductID == "" {
		verrs["product_id"] = "requerido"
	}
	if input.WarehouseID == "" {
		verrs["warehouse_id"] = "requerido"
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	if input.MovementType == entity.MovementTypeTRANSFER {
		if input.ToWarehouseID == "" {
			return nil, domain.ErrTransferRequiresWarehouses
		}
		if input.ToWarehouseID == input.WarehouseID {
			return nil, domain.ErrSameWarehouseTransfer
		}
	}

	product, err := uc.resolveProduct(input.CompanyID, input.ProductID)
	if err != nil {
		return nil, err
	}
	warehouse, err := uc.resolveWarehouse(input.CompanyID, input.WarehouseID)
	if err != nil {
		return nil, err
	}
	var toWarehouse *entity.Warehouse
	if input.MovementType == entity.MovementTypeTRANSFER {
		toWarehouse, err = uc.resolveWarehouse(input.CompanyID, input.ToWarehouseID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	var created *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		recordRepo repository.StockRecordRepository,
		productRepo repository.ProductRepository,
	) error {
		switch input.MovementType {
		case entity.MovementTypeIN:
			created, err = uc.doIN(movRepo, recordRepo, productRepo, product, input, now)
		case entity.MovementTypeOUT:
			created, err = uc.doOUT(movRepo, recordRepo, input, now)
		case entity.MovementTypeTRANSFER:
			created, err = uc.doTRANSFER(movRepo, recordRepo, warehouse, toWarehouse, input, now)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// doIN: bloquea el registro, suma la cantidad y, si la entrada trae costo
// unitario, recalcula el costo promedio ponderado del producto.
func (uc *CreateMovementUseCase) doIN(
	movRepo repository.StockMovementRepository,
	recordRepo repository.StockRecordRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	record, err := recordRepo.GetOrCreateForUpdate(input.ProductID, input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if input.UnitCost != nil && input.UnitCost.GreaterThanOrEqual(decimal.Zero) {
		newCost := domaininv.WeightedAverageCost(record.CurrentQuantity, product.Cost, input.Quantity, *input.UnitCost)
		if err := productRepo.UpdateCost(input.ProductID, newCost); err != nil {
			return nil, err
		}
	}
	return applyDelta(movRepo, recordRepo, applyParams{
		record:            record,
		movementType:      entity.MovementTypeIN,
		quantity:          input.Quantity,
		reason:            input.Reason,
		accountID:         input.AccountID,
		unitCost:          input.UnitCost,
		referenceDocument: input.ReferenceDocument,
		notes:             input.Notes,
		now:               now,
	})
}

// doOUT: bloquea el registro y resta; applyDelta rechaza con
// InsufficientStockError si la cantidad supera el saldo.
func (uc *CreateMovementUseCase) doOUT(
	movRepo repository.StockMovementRepository,
	recordRepo repository.StockRecordRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	record, err := recordRepo.GetOrCreateForUpdate(input.ProductID, input.WarehouseID)
	if err != nil {
		return nil, err
	}
	return applyDelta(movRepo, recordRepo, applyParams{
		record:            record,
		movementType:      entity.MovementTypeOUT,
		quantity:          input.Quantity,
		reason:            input.Reason,
		accountID:         input.AccountID,
		unitCost:          input.UnitCost,
		referenceDocument: input.ReferenceDocument,
		notes:             input.Notes,
		now:               now,
	})
}

// doTRANSFER: débito en origen (tagged TRANSFER) y crédito en destino
// (tagged IN, reason transfer), ambas patas en la misma transacción. Si la
// pata de crédito falla, el rollback deshace también el débito: nunca se
// observa un traslado parcial.
func (uc *CreateMovementUseCase) doTRANSFER(
	movRepo repository.StockMovementRepository,
	recordRepo repository.StockRecordRepository,
	fromWarehouse, toWarehouse *entity.Warehouse,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	origin, err := recordRepo.GetOrCreateForUpdate(input.ProductID, fromWarehouse.ID)
	if err != nil {
		return nil, err
	}
	debit, err := applyDelta(movRepo, recordRepo, applyParams{
		record:            origin,
		movementType:      entity.MovementTypeTRANSFER,
		quantity:          input.Quantity,
		reason:            input.Reason,
		accountID:         input.AccountID,
		unitCost:          input.UnitCost,
		referenceDocument: input.ReferenceDocument,
		notes:             input.Notes,
		fromWarehouseID:   fromWarehouse.ID,
		toWarehouseID:     toWarehouse.ID,
		now:               now,
	})
	if err != nil {
		return nil, err
	}

	dest, err := recordRepo.GetOrCreateForUpdate(input.ProductID, toWarehouse.ID)
	if err != nil {
		return nil, err
	}
	_, err = applyDelta(movRepo, recordRepo, applyParams{
		record:            dest,
		movementType:      entity.MovementTypeIN,
		quantity:          input.Quantity,
		reason:            entity.ReasonTransfer,
		accountID:         input.AccountID,
		unitCost:          input.UnitCost,
		referenceDocument: input.ReferenceDocument,
		notes:             fmt.Sprintf("Traslado desde %s", fromWarehouse.Name),
		fromWarehouseID:   fromWarehouse.ID,
		toWarehouseID:     toWarehouse.ID,
		now:               now,
	})
	if err != nil {
		return nil, err
	}
	return debit, nil
}

// DeleteMovement siempre rechaza: el ledger es append-only y las correcciones
// se hacen con un movimiento de ajuste. Contrato permanente de la API.
func (uc *CreateMovementUseCase) DeleteMovement(_ context.Context, _ string) error {
	return domain.ErrMovementImmutable
}

func (uc *CreateMovementUseCase) resolveProduct(companyID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrCrossCompanyReference
	}
	return product, nil
}

func (uc *CreateMovementUseCase) resolveWarehouse(companyID, warehouseID string) (*entity.Warehouse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrCrossCompanyReference
	}
	return warehouse, nil
}
