package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, category_id, template_id, name, sku, barcode,
	price, cost, unit_measure, minimum_stock, specifications, is_active, created_at, updated_at`

// Create persiste un producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.CategoryID, product.TemplateID,
		product.Name, product.SKU, product.Barcode,
		product.Price, product.Cost, product.UnitMeasure, product.MinimumStock,
		product.Specifications, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU (ya normalizado a mayúsculas).
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, name = $3, barcode = $4, price = $5,
			cost = $6, unit_measure = $7, minimum_stock = $8, specifications = $9,
			is_active = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CategoryID, product.Name, product.Barcode, product.Price,
		product.Cost, product.UnitMeasure, product.MinimumStock, product.Specifications,
		product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateCost actualiza solo el costo promedio (lo usa el ledger en entradas).
func (r *ProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET cost = $2, updated_at = now() WHERE id = $1`, productID, cost)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}

// ListByCompany devuelve productos de una empresa con paginación.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// Delete desactiva el producto (soft delete).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

// TotalStock suma el stock del producto en todas las bodegas.
func (r *ProductRepo) TotalStock(productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(current_quantity), 0) FROM stock_records WHERE product_id = $1`,
		productID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}

// ListLowStock: productos activos con stock total positivo pero bajo su mínimo.
func (r *ProductRepo) ListLowStock(companyID string) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.company_id, p.category_id, p.template_id, p.name, p.sku, p.barcode,
			p.price, p.cost, p.unit_measure, p.minimum_stock, p.specifications, p.is_active,
			p.created_at, p.updated_at
		FROM products p
		JOIN stock_records sr ON sr.product_id = p.id
		WHERE p.company_id = $1 AND p.is_active = true
		GROUP BY p.id
		HAVING SUM(sr.current_quantity) > 0 AND SUM(sr.current_quantity) < p.minimum_stock
		ORDER BY p.name`
	return r.list(query, companyID)
}

// ListOutOfStock: productos activos sin stock en ninguna bodega.
func (r *ProductRepo) ListOutOfStock(companyID string) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.company_id, p.category_id, p.template_id, p.name, p.sku, p.barcode,
			p.price, p.cost, p.unit_measure, p.minimum_stock, p.specifications, p.is_active,
			p.created_at, p.updated_at
		FROM products p
		LEFT JOIN stock_records sr ON sr.product_id = p.id
		WHERE p.company_id = $1 AND p.is_active = true
		GROUP BY p.id
		HAVING COALESCE(SUM(sr.current_quantity), 0) = 0
		ORDER BY p.name`
	return r.list(query, companyID)
}

func (r *ProductRepo) getOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.CompanyID, &p.CategoryID, &p.TemplateID, &p.Name, &p.SKU, &p.Barcode,
		&p.Price, &p.Cost, &p.UnitMeasure, &p.MinimumStock, &p.Specifications,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.CategoryID, &p.TemplateID, &p.Name, &p.SKU, &p.Barcode,
			&p.Price, &p.Cost, &p.UnitMeasure, &p.MinimumStock, &p.Specifications,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
