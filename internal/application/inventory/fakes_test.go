package inventory_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/application/inventory"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia.
//
// fakeStore guarda todo el estado; fakeTxRunner toma un snapshot al iniciar
// Run y lo restaura si fn devuelve error, imitando el Rollback de una
// transacción real. Así los tests de atomicidad (traslado con pata de
// crédito fallida) observan exactamente lo que observaría la BD.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	records    map[string]*entity.StockRecord // por ID
	recordKeys map[string]string              // productID|warehouseID -> recordID
	movements  []*entity.StockMovement

	// failGetOrCreate fuerza un error al resolver el registro de una bodega
	// concreta, para simular fallas a mitad de transacción.
	failGetOrCreate map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:        make(map[string]*entity.Product),
		warehouses:      make(map[string]*entity.Warehouse),
		records:         make(map[string]*entity.StockRecord),
		recordKeys:      make(map[string]string),
		failGetOrCreate: make(map[string]error),
	}
}

func recordKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

type storeSnapshot struct {
	records    map[string]*entity.StockRecord
	recordKeys map[string]string
	movements  []*entity.StockMovement
	costs      map[string]decimal.Decimal
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		records:    make(map[string]*entity.StockRecord, len(s.records)),
		recordKeys: make(map[string]string, len(s.recordKeys)),
		movements:  append([]*entity.StockMovement(nil), s.movements...),
		costs:      make(map[string]decimal.Decimal, len(s.products)),
	}
	for id, r := range s.records {
		cp := *r
		snap.records[id] = &cp
	}
	for k, v := range s.recordKeys {
		snap.recordKeys[k] = v
	}
	for id, p := range s.products {
		snap.costs[id] = p.Cost
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.records = snap.records
	s.recordKeys = snap.recordKeys
	s.movements = snap.movements
	for id, cost := range snap.costs {
		if p, ok := s.products[id]; ok {
			p.Cost = cost
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	recordRepo repository.StockRecordRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(&fakeMovementRepo{r.store}, &fakeRecordRepo{r.store}, &fakeProductRepo{r.store})
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct{ s *fakeStore }

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByStockRecord(stockRecordID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.StockRecordID == stockRecordID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByCompany(string, repository.MovementFilter) ([]*entity.StockMovement, error) {
	return nil, errors.New("no implementado en fake")
}

func (r *fakeMovementRepo) Summary(string, *time.Time, *time.Time) (*repository.MovementSummary, error) {
	return nil, errors.New("no implementado en fake")
}

func (r *fakeMovementRepo) Recent(string, time.Time, int) ([]*entity.StockMovement, error) {
	return nil, errors.New("no implementado en fake")
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeRecordRepo struct{ s *fakeStore }

var _ repository.StockRecordRepository = (*fakeRecordRepo)(nil)

func (r *fakeRecordRepo) GetByID(id string) (*entity.StockRecord, error) {
	rec, ok := r.s.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) GetByIDForUpdate(id string) (*entity.StockRecord, error) {
	return r.GetByID(id)
}

func (r *fakeRecordRepo) GetOrCreateForUpdate(productID, warehouseID string) (*entity.StockRecord, error) {
	key := recordKey(productID, warehouseID)
	if err, ok := r.s.failGetOrCreate[warehouseID]; ok {
		return nil, err
	}
	if id, ok := r.s.recordKeys[key]; ok {
		cp := *r.s.records[id]
		return &cp, nil
	}
	now := time.Now()
	rec := &entity.StockRecord{
		ID:              uuid.New().String(),
		ProductID:       productID,
		WarehouseID:     warehouseID,
		CurrentQuantity: decimal.Zero,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.s.records[rec.ID] = rec
	r.s.recordKeys[key] = rec.ID
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) SetQuantity(id string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	rec, ok := r.s.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.CurrentQuantity = quantity
	rec.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRecordRepo) ListByCompany(string, int, int) ([]*entity.StockRecord, error) {
	return nil, errors.New("no implementado en fake")
}

func (r *fakeRecordRepo) ListByWarehouse(string, int, int) ([]*entity.StockRecord, error) {
	return nil, errors.New("no implementado en fake")
}

func (r *fakeRecordRepo) ListByProduct(string) ([]*entity.StockRecord, error) {
	return nil, errors.New("no implementado en fake")
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *fakeStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	return nil
}

func (r *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, errors.New("no implementado en fake")
}

func (r *fakeProductRepo) Delete(string) error {
	return errors.New("no implementado en fake")
}

func (r *fakeProductRepo) TotalStock(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, rec := range r.s.records {
		if rec.ProductID == productID {
			total = total.Add(rec.CurrentQuantity)
		}
	}
	return total, nil
}

func (r *fakeProductRepo) ListLowStock(string) ([]*entity.Product, error) {
	return nil, errors.New("no implementado en fake")
}

func (r *fakeProductRepo) ListOutOfStock(string) ([]*entity.Product, error) {
	return nil, errors.New("no implementado en fake")
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct{ s *fakeStore }

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) ListByCompany(companyID string, _, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.CompanyID == companyID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWarehouseRepo) Delete(id string) error {
	delete(r.s.warehouses, id)
	return nil
}

func (r *fakeWarehouseRepo) ClearMain(companyID string) error {
	for _, w := range r.s.warehouses {
		if w.CompanyID == companyID {
			w.IsMain = false
		}
	}
	return nil
}

func (r *fakeWarehouseRepo) HasPositiveStock(warehouseID string) (bool, error) {
	for _, rec := range r.s.records {
		if rec.WarehouseID == warehouseID && rec.CurrentQuantity.GreaterThan(decimal.Zero) {
			return true, nil
		}
	}
	return false, nil
}
