package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// AdjustmentInput entrada para fijar el stock de producto+bodega en una
// cantidad objetivo.
type AdjustmentInput struct {
	CompanyID   string
	AccountID   string
	ProductID   string
	WarehouseID string
	NewQuantity decimal.Decimal
	Notes       string
}

// Adjust deriva el ajuste como un movimiento IN u OUT por la diferencia entre
// la cantidad objetivo y el saldo actual, con motivo "adjustment". La nota
// registra el antes/después para legibilidad del historial de auditoría.
func (uc *CreateMovementUseCase) Adjust(ctx context.Context, input AdjustmentInput) (*entity.StockMovement, error) {
	if input.NewQuantity.IsNegative() {
		return nil, domain.ValidationErrors{"new_quantity": "no puede ser negativa"}
	}
	if _, err := uc.resolveProduct(input.CompanyID, input.ProductID); err != nil {
		return nil, err
	}
	if _, err := uc.resolveWarehouse(input.CompanyID, input.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	var created *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		recordRepo repository.StockRecordRepository,
		_ repository.ProductRepository,
	) error {
		record, err := recordRepo.GetOrCreateForUpdate(input.ProductID, input.WarehouseID)
		if err != nil {
			return err
		}
		current := record.CurrentQuantity
		difference := input.NewQuantity.Sub(current)
		if difference.IsZero() {
			return domain.ErrNoOpAdjustment
		}

		movementType := entity.MovementTypeIN
		if difference.IsNegative() {
			movementType = entity.MovementTypeOUT
		}
		created, err = applyDelta(movRepo, recordRepo, applyParams{
			record:       record,
			movementType: movementType,
			quantity:     difference.Abs(),
			reason:       entity.ReasonAdjustment,
			accountID:    input.AccountID,
			notes:        fmt.Sprintf("Ajuste: %s (de %s a %s)", input.Notes, current.String(), input.NewQuantity.String()),
			now:          now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
