package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportería agregadas sobre el inventario.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportería.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Valuation valoriza el stock por producto y bodega (cantidad x costo
// promedio). warehouseID vacío incluye todas las bodegas.
func (r *ReportRepo) Valuation(companyID, warehouseID string) ([]repository.ValuationItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, w.name, sr.current_quantity, p.cost,
			sr.current_quantity * p.cost AS total_value
		FROM stock_records sr
		JOIN products p ON p.id = sr.product_id
		JOIN warehouses w ON w.id = sr.warehouse_id
		WHERE p.company_id = $1 AND p.is_active = true AND sr.current_quantity > 0`
	args := []any{companyID}
	if warehouseID != "" {
		query += " AND sr.warehouse_id = $2"
		args = append(args, warehouseID)
	}
	query += " ORDER BY total_value DESC"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("valuation report: %w", err)
	}
	defer rows.Close()

	var list []repository.ValuationItem
	for rows.Next() {
		var item repository.ValuationItem
		if err := rows.Scan(&item.ProductID, &item.SKU, &item.ProductName,
			&item.Warehouse, &item.Quantity, &item.UnitCost, &item.TotalValue); err != nil {
			return nil, fmt.Errorf("scan valuation row: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// StockAlerts lista productos activos bajo su stock mínimo o agotados.
func (r *ReportRepo) StockAlerts(companyID string) ([]repository.StockAlert, error) {
	query := `
		SELECT p.id, p.sku, p.name, COALESCE(SUM(sr.current_quantity), 0) AS total_stock,
			p.minimum_stock,
			CASE WHEN COALESCE(SUM(sr.current_quantity), 0) = 0 THEN 'out_of_stock' ELSE 'low_stock' END
		FROM products p
		LEFT JOIN stock_records sr ON sr.product_id = p.id
		WHERE p.company_id = $1 AND p.is_active = true
		GROUP BY p.id
		HAVING COALESCE(SUM(sr.current_quantity), 0) < p.minimum_stock
		ORDER BY total_stock`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("stock alerts: %w", err)
	}
	defer rows.Close()

	var list []repository.StockAlert
	for rows.Next() {
		var a repository.StockAlert
		if err := rows.Scan(&a.ProductID, &a.SKU, &a.ProductName,
			&a.TotalStock, &a.MinimumStock, &a.AlertType); err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// CategoryAnalysis agrega cantidad de productos, stock y valor por categoría.
func (r *ReportRepo) CategoryAnalysis(companyID string) ([]repository.CategoryAnalysisRow, error) {
	query := `
		SELECT c.id, c.name, count(DISTINCT p.id),
			COALESCE(SUM(sr.current_quantity), 0),
			COALESCE(SUM(sr.current_quantity * p.cost), 0)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id AND p.is_active = true
		LEFT JOIN stock_records sr ON sr.product_id = p.id
		WHERE c.company_id = $1
		GROUP BY c.id
		ORDER BY c.name`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("category analysis: %w", err)
	}
	defer rows.Close()

	var list []repository.CategoryAnalysisRow
	for rows.Next() {
		var row repository.CategoryAnalysisRow
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.ProductCount,
			&row.TotalStock, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// TopProducts lista los productos con mayor valor de inventario.
func (r *ReportRepo) TopProducts(companyID string, limit int) ([]repository.TopProductRow, error) {
	query := `
		SELECT p.id, p.sku, p.name,
			COALESCE(SUM(sr.current_quantity), 0) AS total_stock,
			COALESCE(SUM(sr.current_quantity * p.cost), 0) AS stock_value
		FROM products p
		LEFT JOIN stock_records sr ON sr.product_id = p.id
		WHERE p.company_id = $1 AND p.is_active = true
		GROUP BY p.id
		ORDER BY stock_value DESC
		LIMIT $2`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var list []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName,
			&row.TotalStock, &row.StockValue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
