package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implementación del puerto TemplateRepository sobre PostgreSQL.
type TemplateRepo struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository construye el adaptador de persistencia para templates.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{pool: pool}
}

// Create persiste un template (nombre único por empresa).
func (r *TemplateRepo) Create(template *entity.Template) error {
	query := `
		INSERT INTO templates (id, company_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		template.ID, template.CompanyID, template.Name,
		template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// GetByID obtiene un template por ID.
func (r *TemplateRepo) GetByID(id string) (*entity.Template, error) {
	query := `SELECT id, company_id, name, created_at, updated_at FROM templates WHERE id = $1`
	var t entity.Template
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return &t, nil
}

// Update actualiza un template existente.
func (r *TemplateRepo) Update(template *entity.Template) error {
	query := `UPDATE templates SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		template.ID, template.Name, template.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// ListByCompany devuelve templates de una empresa con paginación.
func (r *TemplateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Template, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM templates WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var list []*entity.Template
	for rows.Next() {
		var t entity.Template
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina un template por ID (sus template_attributes caen en cascada).
func (r *TemplateRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// CountProducts cuenta los productos que usan el template.
func (r *TemplateRepo) CountProducts(templateID string) (int, error) {
	var count int
	err := r.pool.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE template_id = $1`, templateID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by template: %w", err)
	}
	return count, nil
}

// AddAttribute asigna un atributo al template.
func (r *TemplateRepo) AddAttribute(attr *entity.TemplateAttribute) error {
	query := `
		INSERT INTO template_attributes (id, template_id, attribute_kind, attribute_id, is_required, display_order, default_value, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		attr.ID, attr.TemplateID, attr.Attribute.Kind, attr.Attribute.ID,
		attr.IsRequired, attr.Order, attr.DefaultValue, attr.IsActive, attr.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert template attribute: %w", err)
	}
	return nil
}

// RemoveAttribute desactiva un atributo del template (las specifications de
// productos existentes no se tocan).
func (r *TemplateRepo) RemoveAttribute(templateID, templateAttributeID string) error {
	cmd, err := r.pool.Exec(context.Background(),
		`UPDATE template_attributes SET is_active = false WHERE id = $1 AND template_id = $2`,
		templateAttributeID, templateID)
	if err != nil {
		return fmt.Errorf("remove template attribute: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAttributes devuelve los atributos activos del template ordenados por
// display_order.
func (r *TemplateRepo) ListAttributes(templateID string) ([]*entity.TemplateAttribute, error) {
	query := `
		SELECT id, template_id, attribute_kind, attribute_id, is_required, display_order, default_value, is_active, created_at
		FROM template_attributes
		WHERE template_id = $1 AND is_active = true
		ORDER BY display_order, created_at`
	rows, err := r.pool.Query(context.Background(), query, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template attributes: %w", err)
	}
	defer rows.Close()

	var list []*entity.TemplateAttribute
	for rows.Next() {
		var ta entity.TemplateAttribute
		var kind string
		if err := rows.Scan(&ta.ID, &ta.TemplateID, &kind, &ta.Attribute.ID,
			&ta.IsRequired, &ta.Order, &ta.DefaultValue, &ta.IsActive, &ta.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template attribute: %w", err)
		}
		ta.Attribute.Kind = entity.AttributeKind(kind)
		list = append(list, &ta)
	}
	return list, rows.Err()
}

// UpdateAttributeOrder cambia el orden de despliegue de un atributo.
func (r *TemplateRepo) UpdateAttributeOrder(templateID, templateAttributeID string, order int) error {
	cmd, err := r.pool.Exec(context.Background(),
		`UPDATE template_attributes SET display_order = $3 WHERE id = $1 AND template_id = $2`,
		templateAttributeID, templateID, order)
	if err != nil {
		return fmt.Errorf("update attribute order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
