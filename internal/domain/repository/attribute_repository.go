package repository

import "github.com/tu-usuario/stock-control/internal/domain/entity"

// AttributeRepository define el puerto de persistencia para atributos
// globales y custom. Resolve devuelve la vista común de una AttributeRef,
// venga de la tabla global o de la custom.
type AttributeRepository interface {
	CreateGlobal(attr *entity.GlobalAttribute) error
	GetGlobalByID(id string) (*entity.GlobalAttribute, error)
	ListGlobal(limit, offset int) ([]*entity.GlobalAttribute, error)

	CreateCustom(attr *entity.CustomAttribute) error
	GetCustomByID(id string) (*entity.CustomAttribute, error)
	ListCustomByCompany(companyID string, limit, offset int) ([]*entity.CustomAttribute, error)
	DeleteCustom(id string) error

	Resolve(ref entity.AttributeRef) (*entity.Attribute, error)
	// CountTemplateUses soporta el chequeo de dependencias antes de eliminar
	// un atributo custom.
	CountTemplateUses(ref entity.AttributeRef) (int, error)
}
