package repository

import "github.com/tu-usuario/stock-control/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category.
// CountProducts soporta el chequeo de dependencias antes de eliminar.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Category, error)
	Delete(id string) error
	CountProducts(categoryID string) (int, error)
}
