package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-control/internal/application/inventory"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID    = "00000000-0000-0000-0000-00000000000a"
	otherCompanyID   = "00000000-0000-0000-0000-00000000000b"
	testAccountID    = "00000000-0000-0000-0000-000000000001"
	testProductID    = "00000000-0000-0000-0000-000000000010"
	testWarehouseA   = "00000000-0000-0000-0000-000000000020"
	testWarehouseB   = "00000000-0000-0000-0000-000000000021"
	foreignProductID = "00000000-0000-0000-0000-000000000099"
)

type ledgerFixture struct {
	store     *fakeStore
	uc        *inventory.CreateMovementUseCase
	reconcile *inventory.ReconcileUseCase
}

// buildLedger arma el caso de uso con fakes y datos base: una empresa con un
// producto y dos bodegas (A y B), más un producto de otra empresa.
func buildLedger(t *testing.T) *ledgerFixture {
	t.Helper()
	store := newFakeStore()
	now := time.Now()
	store.products[testProductID] = &entity.Product{
		ID: testProductID, CompanyID: testCompanyID, Name: "Notebook 14", SKU: "NB-14",
		Cost: decimal.NewFromInt(100), Price: decimal.NewFromInt(150),
		MinimumStock: decimal.NewFromInt(5), IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	store.products[foreignProductID] = &entity.Product{
		ID: foreignProductID, CompanyID: otherCompanyID, Name: "Ajeno", SKU: "AJ-01",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	store.warehouses[testWarehouseA] = &entity.Warehouse{
		ID: testWarehouseA, CompanyID: testCompanyID, Name: "Bodega Central", IsMain: true,
	}
	store.warehouses[testWarehouseB] = &entity.Warehouse{
		ID: testWarehouseB, CompanyID: testCompanyID, Name: "Sucursal Norte",
	}
	txRunner := &fakeTxRunner{store: store}
	productRepo := &fakeProductRepo{store}
	warehouseRepo := &fakeWarehouseRepo{store}
	recordRepo := &fakeRecordRepo{store}
	return &ledgerFixture{
		store:     store,
		uc:        inventory.NewCreateMovementUseCase(txRunner, productRepo, warehouseRepo),
		reconcile: inventory.NewReconcileUseCase(txRunner, recordRepo, productRepo),
	}
}

// movementInput entrada base IN/OUT sobre la bodega A.
func movementInput(movementType, reason string, qty int64) inventory.MovementInput {
	return inventory.MovementInput{
		CompanyID:    testCompanyID,
		AccountID:    testAccountID,
		ProductID:    testProductID,
		WarehouseID:  testWarehouseA,
		MovementType: movementType,
		Quantity:     decimal.NewFromInt(qty),
		Reason:       reason,
	}
}

// balanceAt devuelve el saldo actual de producto+bodega (cero si no hay registro).
func (f *ledgerFixture) balanceAt(t *testing.T, warehouseID string) decimal.Decimal {
	t.Helper()
	id, ok := f.store.recordKeys[recordKey(testProductID, warehouseID)]
	if !ok {
		return decimal.Zero
	}
	return f.store.records[id].CurrentQuantity
}

func (f *ledgerFixture) recordIDAt(t *testing.T, warehouseID string) string {
	t.Helper()
	id, ok := f.store.recordKeys[recordKey(testProductID, warehouseID)]
	require.True(t, ok, "debe existir el registro de stock en la bodega %s", warehouseID)
	return id
}

func assertDecimal(t *testing.T, expected int64, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.NewFromInt(expected)),
		"se esperaba %d y se obtuvo %s: %v", expected, actual.String(), msgAndArgs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: compra y luego venta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_CompraLuegoVenta(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	// IN 30 por compra: saldo 0 -> 30
	in, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 30))
	require.NoError(t, err)
	assertDecimal(t, 30, in.ResultingBalance, "resulting_balance de la entrada")
	assertDecimal(t, 30, f.balanceAt(t, testWarehouseA))

	// OUT 5 por venta: saldo 30 -> 25
	out, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeOUT, entity.ReasonSale, 5))
	require.NoError(t, err)
	assertDecimal(t, 25, out.ResultingBalance, "resulting_balance de la salida")
	assertDecimal(t, 25, f.balanceAt(t, testWarehouseA))

	// Reconciliar no debe detectar deriva tras operaciones exitosas.
	res, err := f.reconcile.Reconcile(ctx, testCompanyID, f.recordIDAt(t, testWarehouseA))
	require.NoError(t, err)
	assert.False(t, res.Reconciled, "el saldo debe coincidir con el historial")
	assertDecimal(t, 25, res.NewQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: stock insuficiente
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_StockInsuficiente(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	_, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 10))
	require.NoError(t, err)

	// OUT 100 con saldo 10: falla y el saldo queda intacto.
	_, err = f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeOUT, entity.ReasonSale, 100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr), "el error debe llevar el disponible")
	assertDecimal(t, 10, insErr.Available)
	assertDecimal(t, 10, f.balanceAt(t, testWarehouseA), "el saldo no debe cambiar tras el rechazo")

	// El rechazo no deja movimientos a medias en el ledger.
	assert.Len(t, f.store.movements, 1)
}

func TestCreateMovement_CantidadInvalida(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	for _, qty := range []int64{0, -5} {
		_, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeIN, entity.ReasonPurchase, qty))
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d debe rechazarse", qty)
	}
	assert.Empty(t, f.store.movements, "nada debe persistirse con cantidad inválida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: traslados entre bodegas
// ──────────────────────────────────────────────────────────────────────────────

func transferInput(from, to string, qty int64) inventory.MovementInput {
	in := movementInput(entity.MovementTypeTRANSFER, entity.ReasonTransfer, qty)
	in.WarehouseID = from
	in.ToWarehouseID = to
	return in
}

func TestCreateMovement_Traslado(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	_, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 100))
	require.NoError(t, err)

	// A=100, B=0; trasladar 30 A->B
	debit, err := f.uc.CreateMovement(ctx, transferInput(testWarehouseA, testWarehouseB, 30))
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeTRANSFER, debit.MovementType, "el movimiento primario es el débito en origen")
	assert.Equal(t, testWarehouseA, debit.FromWarehouseID)
	assert.Equal(t, testWarehouseB, debit.ToWarehouseID)
	assertDecimal(t, 70, debit.ResultingBalance)
	assertDecimal(t, 70, f.balanceAt(t, testWarehouseA))
	assertDecimal(t, 30, f.balanceAt(t, testWarehouseB))

	// La pata de crédito queda materializada como IN con motivo transfer.
	var credit *entity.StockMovement
	for _, m := range f.store.movements {
		if m.StockRecordID == f.recordIDAt(t, testWarehouseB) {
			credit = m
		}
	}
	require.NotNil(t, credit, "debe existir el crédito en destino")
	assert.Equal(t, entity.MovementTypeIN, credit.MovementType)
	assert.Equal(t, entity.ReasonTransfer, credit.Reason)
	assert.Contains(t, credit.Notes, "Bodega Central", "la nota debe referenciar la bodega origen")
	assertDecimal(t, 30, credit.ResultingBalance)

	// Trasladar 10 de vuelta B->A: A=80, B=20; el total se conserva.
	_, err = f.uc.CreateMovement(ctx, transferInput(testWarehouseB, testWarehouseA, 10))
	require.NoError(t, err)
	assertDecimal(t, 80, f.balanceAt(t, testWarehouseA))
	assertDecimal(t, 20, f.balanceAt(t, testWarehouseB))
	assertDecimal(t, 100, f.balanceAt(t, testWarehouseA).Add(f.balanceAt(t, testWarehouseB)))

	// Ambos registros reconcilian sin deriva.
	for _, wh := range []string{testWarehouseA, testWarehouseB} {
		res, err := f.reconcile.Reconcile(ctx, testCompanyID, f.recordIDAt(t, wh))
		require.NoError(t, err)
		assert.False(t, res.Reconciled, "bodega %s", wh)
	}
}

func TestCreateMovement_TrasladoInvalido(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	_, err := f.uc.CreateMovement(ctx, transferInput(testWarehouseA, testWarehouseA, 10))
	assert.ErrorIs(t, err, domain.ErrSameWarehouseTransfer)

	_, err = f.uc.CreateMovement(ctx, transferInput(testWarehouseA, "", 10))
	assert.ErrorIs(t, err, domain.ErrTransferRequiresWarehouses)
}

// La pata de crédito falla a mitad de transacción: el débito en origen debe
// deshacerse por completo, nunca se observa un traslado parcial.
func TestCreateMovement_TrasladoAtomico(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	_, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 100))
	require.NoError(t, err)
	movementsBefore := len(f.store.movements)

	f.store.failGetOrCreate[testWarehouseB] = errors.New("fallo simulado en destino")
	_, err = f.uc.CreateMovement(ctx, transferInput(testWarehouseA, testWarehouseB, 30))
	require.Error(t, err)

	assertDecimal(t, 100, f.balanceAt(t, testWarehouseA), "el débito en origen debe revertirse")
	assert.Len(t, f.store.movements, movementsBefore, "el ledger no debe crecer tras el rollback")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_SubeElStock(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	_, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 40))
	require.NoError(t, err)

	// Ajustar de 40 a 45: un IN de 5 con motivo adjustment.
	mov, err := f.uc.Adjust(ctx, inventory.AdjustmentInput{
		CompanyID:   testCompanyID,
		AccountID:   testAccountID,
		ProductID:   testProductID,
		WarehouseID: testWarehouseA,
		NewQuantity: decimal.NewFromInt(45),
		Notes:       "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIN, mov.MovementType)
	assert.Equal(t, entity.ReasonAdjustment, mov.Reason)
	assertDecimal(t, 5, mov.Quantity)
	assertDecimal(t, 45, mov.ResultingBalance)
	assert.Contains(t, mov.Notes, "de 40 a 45", "la nota debe registrar antes/después")
	assertDecimal(t, 45, f.balanceAt(t, testWarehouseA))
}

func TestAdjust_BajaElStock(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	_, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 40))
	require.NoError(t, err)

	mov, err := f.uc.Adjust(ctx, inventory.AdjustmentInput{
		CompanyID:   testCompanyID,
		AccountID:   testAccountID,
		ProductID:   testProductID,
		WarehouseID: testWarehouseA,
		NewQuantity: decimal.NewFromInt(33),
		Notes:       "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOUT, mov.MovementType)
	assertDecimal(t, 7, mov.Quantity)
	assertDecimal(t, 33, f.balanceAt(t, testWarehouseA))
}

func TestAdjust_SinCambioEsRechazado(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	_, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 40))
	require.NoError(t, err)
	movementsBefore := len(f.store.movements)

	_, err = f.uc.Adjust(ctx, inventory.AdjustmentInput{
		CompanyID:   testCompanyID,
		AccountID:   testAccountID,
		ProductID:   testProductID,
		WarehouseID: testWarehouseA,
		NewQuantity: decimal.NewFromInt(40),
		Notes:       "sin cambios",
	})
	assert.ErrorIs(t, err, domain.ErrNoOpAdjustment)
	assert.Len(t, f.store.movements, movementsBefore)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación e inmutabilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_CorrigeDeriva(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	_, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 50))
	require.NoError(t, err)
	recordID := f.recordIDAt(t, testWarehouseA)

	// Simular deriva: alguien tocó el saldo fuera del ledger.
	f.store.records[recordID].CurrentQuantity = decimal.NewFromInt(44)

	res, err := f.reconcile.Reconcile(ctx, testCompanyID, recordID)
	require.NoError(t, err)
	assert.True(t, res.Reconciled)
	assertDecimal(t, 44, res.OldQuantity)
	assertDecimal(t, 50, res.NewQuantity)
	assertDecimal(t, 6, res.Difference)
	assertDecimal(t, 50, f.balanceAt(t, testWarehouseA))

	// Idempotente: la segunda pasada no encuentra nada que corregir.
	res, err = f.reconcile.Reconcile(ctx, testCompanyID, recordID)
	require.NoError(t, err)
	assert.False(t, res.Reconciled)
	assertDecimal(t, 0, res.Difference)
}

func TestReconcile_RegistroInexistente(t *testing.T) {
	f := buildLedger(t)
	_, err := f.reconcile.Reconcile(context.Background(), testCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMovement_SiempreRechazado(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	mov, err := f.uc.CreateMovement(ctx, movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 10))
	require.NoError(t, err)

	err = f.uc.DeleteMovement(ctx, mov.ID)
	assert.ErrorIs(t, err, domain.ErrMovementImmutable)
	assert.Len(t, f.store.movements, 1, "el largo del historial nunca decrece")
}

// ──────────────────────────────────────────────────────────────────────────────
// Alcance de empresa y costo promedio
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_ProductoDeOtraEmpresa(t *testing.T) {
	f := buildLedger(t)
	in := movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 10)
	in.ProductID = foreignProductID

	_, err := f.uc.CreateMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrCrossCompanyReference)
}

func TestCreateMovement_EntradaActualizaCostoPromedio(t *testing.T) {
	f := buildLedger(t)
	ctx := context.Background()

	// Stock 10 a costo 100.
	first := movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 10)
	cost100 := decimal.NewFromInt(100)
	first.UnitCost = &cost100
	_, err := f.uc.CreateMovement(ctx, first)
	require.NoError(t, err)

	// Entran 10 a costo 200: promedio ponderado 150.
	second := movementInput(entity.MovementTypeIN, entity.ReasonPurchase, 10)
	cost200 := decimal.NewFromInt(200)
	second.UnitCost = &cost200
	_, err = f.uc.CreateMovement(ctx, second)
	require.NoError(t, err)

	assertDecimal(t, 150, f.store.products[testProductID].Cost, "costo promedio ponderado")
}
