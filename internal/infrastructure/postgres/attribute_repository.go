package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

var _ repository.AttributeRepository = (*AttributeRepo)(nil)

// AttributeRepo implementación del puerto AttributeRepository sobre
// PostgreSQL. Atributos globales y custom viven en tablas separadas; la
// referencia etiquetada (AttributeRef) decide cuál consultar.
type AttributeRepo struct {
	pool *pgxpool.Pool
}

// NewAttributeRepository construye el adaptador de persistencia para atributos.
func NewAttributeRepository(pool *pgxpool.Pool) *AttributeRepo {
	return &AttributeRepo{pool: pool}
}

// CreateGlobal persiste un atributo global (slug único en el sistema).
func (r *AttributeRepo) CreateGlobal(attr *entity.GlobalAttribute) error {
	query := `
		INSERT INTO global_attributes (id, name, slug, data_type, unit_of_measure, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		attr.ID, attr.Name, attr.Slug, attr.DataType, attr.UnitOfMeasure,
		attr.CreatedAt, attr.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert global attribute: %w", err)
	}
	return nil
}

// GetGlobalByID obtiene un atributo global por ID.
func (r *AttributeRepo) GetGlobalByID(id string) (*entity.GlobalAttribute, error) {
	query := `
		SELECT id, name, slug, data_type, unit_of_measure, created_at, updated_at
		FROM global_attributes WHERE id = $1`
	var a entity.GlobalAttribute
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Name, &a.Slug, &a.DataType, &a.UnitOfMeasure, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get global attribute: %w", err)
	}
	return &a, nil
}

// ListGlobal devuelve el catálogo global con paginación.
func (r *AttributeRepo) ListGlobal(limit, offset int) ([]*entity.GlobalAttribute, error) {
	query := `
		SELECT id, name, slug, data_type, unit_of_measure, created_at, updated_at
		FROM global_attributes ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list global attributes: %w", err)
	}
	defer rows.Close()

	var list []*entity.GlobalAttribute
	for rows.Next() {
		var a entity.GlobalAttribute
		if err := rows.Scan(&a.ID, &a.Name, &a.Slug, &a.DataType, &a.UnitOfMeasure, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan global attribute: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CreateCustom persiste un atributo custom (slug único por empresa).
func (r *AttributeRepo) CreateCustom(attr *entity.CustomAttribute) error {
	query := `
		INSERT INTO custom_attributes (id, company_id, name, slug, data_type, unit_of_measure, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		attr.ID, attr.CompanyID, attr.Name, attr.Slug, attr.DataType,
		attr.UnitOfMeasure, attr.CreatedAt, attr.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert custom attribute: %w", err)
	}
	return nil
}

// GetCustomByID obtiene un atributo custom por ID.
func (r *AttributeRepo) GetCustomByID(id string) (*entity.CustomAttribute, error) {
	query := `
		SELECT id, company_id, name, slug, data_type, unit_of_measure, created_at, updated_at
		FROM custom_attributes WHERE id = $1`
	var a entity.CustomAttribute
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.CompanyID, &a.Name, &a.Slug, &a.DataType, &a.UnitOfMeasure,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get custom attribute: %w", err)
	}
	return &a, nil
}

// ListCustomByCompany devuelve los atributos custom de una empresa.
func (r *AttributeRepo) ListCustomByCompany(companyID string, limit, offset int) ([]*entity.CustomAttribute, error) {
	query := `
		SELECT id, company_id, name, slug, data_type, unit_of_measure, created_at, updated_at
		FROM custom_attributes WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list custom attributes: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustomAttribute
	for rows.Next() {
		var a entity.CustomAttribute
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Name, &a.Slug, &a.DataType,
			&a.UnitOfMeasure, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan custom attribute: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// DeleteCustom elimina un atributo custom por ID.
func (r *AttributeRepo) DeleteCustom(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM custom_attributes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete custom attribute: %w", err)
	}
	return nil
}

// Resolve devuelve la vista común del atributo referenciado, venga de la
// tabla global o de la custom.
func (r *AttributeRepo) Resolve(ref entity.AttributeRef) (*entity.Attribute, error) {
	switch ref.Kind {
	case entity.AttributeKindGlobal:
		a, err := r.GetGlobalByID(ref.ID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, domain.ErrNotFound
		}
		return &entity.Attribute{Name: a.Name, Slug: a.Slug, DataType: a.DataType, UnitOfMeasure: a.UnitOfMeasure}, nil
	case entity.AttributeKindCustom:
		a, err := r.GetCustomByID(ref.ID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, domain.ErrNotFound
		}
		return &entity.Attribute{Name: a.Name, Slug: a.Slug, DataType: a.DataType, UnitOfMeasure: a.UnitOfMeasure}, nil
	}
	return nil, fmt.Errorf("attribute ref kind desconocido: %q", ref.Kind)
}

// CountTemplateUses cuenta cuántos templates referencian el atributo.
func (r *AttributeRepo) CountTemplateUses(ref entity.AttributeRef) (int, error) {
	var count int
	err := r.pool.QueryRow(context.Background(),
		`SELECT count(*) FROM template_attributes WHERE attribute_kind = $1 AND attribute_id = $2 AND is_active = true`,
		ref.Kind, ref.ID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count template uses: %w", err)
	}
	return count, nil
}
