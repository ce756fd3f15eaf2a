package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// ReconcileUseCase recalcula el saldo de un StockRecord reproduciendo su
// historial completo de movimientos. Es una herramienta de reparación: nunca
// se invoca implícitamente en el camino normal de escritura.
type ReconcileUseCase struct {
	txRunner    TxRunner
	recordRepo  repository.StockRecordRepository
	productRepo repository.ProductRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(txRunner TxRunner, recordRepo repository.StockRecordRepository, productRepo repository.ProductRepository) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, recordRepo: recordRepo, productRepo: productRepo}
}

// ReconcileResult resultado de una reconciliación.
type ReconcileResult struct {
	Reconciled  bool
	OldQuantity decimal.Decimal
	NewQuantity decimal.Decimal
	Difference  decimal.Decimal
}

// Reconcile suma las cantidades con signo de todos los movimientos del
// registro (IN suma, OUT y débitos de traslado restan) y sobreescribe el
// saldo almacenado si difiere. Idempotente: sin movimientos nuevos entre
// medio, la segunda llamada reporta Reconciled=false.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, companyID, stockRecordID string) (*ReconcileResult, error) {
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

	var result *ReconcileResult
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		recordRepo repository.StockRecordRepository,
		_ repository.ProductRepository,
	) error {
		locked, err := recordRepo.GetByIDForUpdate(stockRecordID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		movements, err := movRepo.ListByStockRecord(stockRecordID)
		if err != nil {
			return err
		}
		expected := sumSigned(movements)

		if expected.Equal(locked.CurrentQuantity) {
			result = &ReconcileResult{
				Reconciled:  false,
				OldQuantity: locked.CurrentQuantity,
				NewQuantity: locked.CurrentQuantity,
				Difference:  decimal.Zero,
			}
			return nil
		}
		if err := recordRepo.SetQuantity(stockRecordID, expected); err != nil {
			return err
		}
		result = &ReconcileResult{
			Reconciled:  true,
			OldQuantity: locked.CurrentQuantity,
			NewQuantity: expected,
			Difference:  expected.Sub(locked.CurrentQuantity),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// sumSigned reproduce el saldo desde el historial. Las patas de crédito de
// traslados ya están materializadas como IN, así que no hay casos especiales.
func sumSigned(movements []*entity.StockMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.SignedQuantity())
	}
	return total
}
