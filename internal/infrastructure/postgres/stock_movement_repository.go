package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). Append-only: no hay UPDATE ni DELETE sobre stock_movements.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, stock_record_id, movement_type, quantity, resulting_balance,
	reason, account_id, unit_cost, reference_document, notes, from_warehouse_id, to_warehouse_id, created_at`

// Create persiste un movimiento del ledger.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	fromWarehouse := nullIfEmpty(movement.FromWarehouseID)
	toWarehouse := nullIfEmpty(movement.ToWarehouseID)
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.StockRecordID, movement.MovementType,
		movement.Quantity, movement.ResultingBalance, movement.Reason,
		movement.AccountID, movement.UnitCost, movement.ReferenceDocument,
		movement.Notes, fromWarehouse, toWarehouse, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get movement: %w", err)
	}
	defer rows.Close()
	list, err := scanMovements(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListByStockRecord devuelve el historial completo de un registro, ordenado
// por created_at ascendente (orden de reconciliación).
func (r *StockMovementRepo) ListByStockRecord(stockRecordID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE stock_record_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, stockRecordID)
	if err != nil {
		return nil, fmt.Errorf("list movements by record: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByCompany lista los movimientos de una empresa con filtros opcionales.
func (r *StockMovementRepo) ListByCompany(companyID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.id, m.stock_record_id, m.movement_type, m.quantity, m.resulting_balance,
			m.reason, m.account_id, m.unit_cost, m.reference_document, m.notes,
			m.from_warehouse_id, m.to_warehouse_id, m.created_at
		FROM stock_movements m
		JOIN stock_records sr ON sr.id = m.stock_record_id
		JOIN products p ON p.id = sr.product_id
		WHERE p.company_id = $1`
	args := []any{companyID}
	pos := 2
	if filter.MovementType != "" {
		query += fmt.Sprintf(" AND m.movement_type = $%d", pos)
		args = append(args, filter.MovementType)
		pos++
	}
	if filter.Reason != "" {
		query += fmt.Sprintf(" AND m.reason = $%d", pos)
		args = append(args, filter.Reason)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// Summary agrega los movimientos de una empresa en un rango de fechas.
func (r *StockMovementRepo) Summary(companyID string, from, to *time.Time) (*repository.MovementSummary, error) {
	query := `
		SELECT m.movement_type, m.reason, count(*),
			COALESCE(SUM(m.quantity), 0)
		FROM stock_movements m
		JOIN stock_records sr ON sr.id = m.stock_record_id
		JOIN products p ON p.id = sr.product_id
		WHERE p.company_id = $1`
	args := []any{companyID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " GROUP BY m.movement_type, m.reason"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("movement summary: %w", err)
	}
	defer rows.Close()

	summary := &repository.MovementSummary{
		TotalIn:  decimal.Zero,
		TotalOut: decimal.Zero,
		ByType:   make(map[string]int),
		ByReason: make(map[string]int),
	}
	for rows.Next() {
		var movementType, reason string
		var count int
		var quantity decimal.Decimal
		if err := rows.Scan(&movementType, &reason, &count, &quantity); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		summary.TotalMovements += count
		summary.ByType[movementType] += count
		summary.ByReason[reason] += count
		switch movementType {
		case entity.MovementTypeIN:
			summary.TotalIn = summary.TotalIn.Add(quantity)
		case entity.MovementTypeOUT:
			summary.TotalOut = summary.TotalOut.Add(quantity)
		case entity.MovementTypeTRANSFER:
			summary.TotalTransfers += count
		}
	}
	return summary, rows.Err()
}

// Recent lista los movimientos de la empresa desde una fecha, más nuevos primero.
func (r *StockMovementRepo) Recent(companyID string, since time.Time, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.id, m.stock_record_id, m.movement_type, m.quantity, m.resulting_balance,
			m.reason, m.account_id, m.unit_cost, m.reference_document, m.notes,
			m.from_warehouse_id, m.to_warehouse_id, m.created_at
		FROM stock_movements m
		JOIN stock_records sr ON sr.id = m.stock_record_id
		JOIN products p ON p.id = sr.product_id
		WHERE p.company_id = $1 AND m.created_at >= $2
		ORDER BY m.created_at DESC LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, companyID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// scanMovements materializa las filas del cursor; los warehouse NULL de
// movimientos que no son traslado quedan como string vacío.
func scanMovements(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var fromWarehouse, toWarehouse *string
		if err := rows.Scan(
			&m.ID, &m.StockRecordID, &m.MovementType, &m.Quantity, &m.ResultingBalance,
			&m.Reason, &m.AccountID, &m.UnitCost, &m.ReferenceDocument, &m.Notes,
			&fromWarehouse, &toWarehouse, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if fromWarehouse != nil {
			m.FromWarehouseID = *fromWarehouse
		}
		if toWarehouse != nil {
			m.ToWarehouseID = *toWarehouse
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
