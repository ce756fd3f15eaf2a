package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los métodos ForUpdate solo tienen sentido dentro de una transacción.
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

const stockRecordColumns = `id, product_id, warehouse_id, current_quantity, is_active, created_at, updated_at`

// GetByID obtiene un registro de stock por ID.
func (r *StockRecordRepo) GetByID(id string) (*entity.StockRecord, error) {
	return r.getOne(`SELECT `+stockRecordColumns+` FROM stock_records WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el registro bloqueando la fila (SELECT FOR UPDATE).
func (r *StockRecordRepo) GetByIDForUpdate(id string) (*entity.StockRecord, error) {
	return r.getOne(`SELECT `+stockRecordColumns+` FROM stock_records WHERE id = $1 FOR UPDATE`, id)
}

// GetOrCreateForUpdate devuelve el registro de producto+bodega con la fila
// bloqueada, creándolo en cero si no existe. El INSERT ... ON CONFLICT DO
// NOTHING seguido del SELECT FOR UPDATE es seguro ante carreras de creación:
// el perdedor de la carrera simplemente lee la fila que insertó el ganador.
func (r *StockRecordRepo) GetOrCreateForUpdate(productID, warehouseID string) (*entity.StockRecord, error) {
	insert := `
		INSERT INTO stock_records (id, product_id, warehouse_id, current_quantity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, 0, true, now(), now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, uuid.New().String(), productID, warehouseID); err != nil {
		return nil, fmt.Errorf("ensure stock record: %w", err)
	}
	record, err := r.getOne(`SELECT `+stockRecordColumns+`
		FROM stock_records WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`,
		productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("stock record desapareció tras el insert")
	}
	return record, nil
}

// SetQuantity sobreescribe el saldo ya validado por el ledger. Rechaza
// valores negativos.
func (r *StockRecordRepo) SetQuantity(id string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stock_records SET current_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity)
	if err != nil {
		return fmt.Errorf("set stock quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany devuelve los saldos de una empresa (vía sus productos) con paginación.
func (r *StockRecordRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockRecord, error) {
	query := `
		SELECT sr.id, sr.product_id, sr.warehouse_id, sr.current_quantity, sr.is_active, sr.created_at, sr.updated_at
		FROM stock_records sr
		JOIN products p ON p.id = sr.product_id
		WHERE p.company_id = $1
		ORDER BY sr.updated_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListByWarehouse devuelve los saldos de una bodega con paginación.
func (r *StockRecordRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE warehouse_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, warehouseID, limit, offset)
}

// ListByProduct devuelve los saldos de un producto en todas sus bodegas.
func (r *StockRecordRepo) ListByProduct(productID string) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE product_id = $1 ORDER BY created_at`
	return r.list(query, productID)
}

func (r *StockRecordRepo) getOne(query string, args ...any) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.ProductID, &s.WarehouseID, &s.CurrentQuantity,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return &s, nil
}

func (r *StockRecordRepo) list(query string, args ...any) ([]*entity.StockRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.CurrentQuantity,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
