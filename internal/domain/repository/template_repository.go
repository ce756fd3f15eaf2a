package repository

import "github.com/tu-usuario/stock-control/internal/domain/entity"

// TemplateRepository define el puerto de persistencia para Template y sus
// TemplateAttribute. ListAttributes devuelve solo los activos, ordenados.
type TemplateRepository interface {
	Create(template *entity.Template) error
	GetByID(id string) (*entity.Template, error)
	Update(template *entity.Template) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Template, error)
	Delete(id string) error
	CountProducts(templateID string) (int, error)

	AddAttribute(attr *entity.TemplateAttribute) error
	RemoveAttribute(templateID, templateAttributeID string) error
	ListAttributes(templateID string) ([]*entity.TemplateAttribute, error)
	UpdateAttributeOrder(templateID, templateAttributeID string, order int) error
}
