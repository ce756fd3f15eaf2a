package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// TemplateUseCase casos de uso para templates de producto y sus atributos.
type TemplateUseCase struct {
	repo     repository.TemplateRepository
	attrRepo repository.AttributeRepository
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.TemplateRepository, attrRepo repository.AttributeRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, attrRepo: attrRepo}
}

// Create crea un template (nombre único por empresa).
func (uc *TemplateUseCase) Create(companyID string, in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	now := time.Now()
	template := &entity.Template{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(template); err != nil {
		return nil, err
	}
	return uc.toResponse(template, false)
}

// GetByID obtiene un template con sus atributos resueltos.
func (uc *TemplateUseCase) GetByID(companyID, id string) (*dto.TemplateResponse, error) {
	template, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(template, true)
}

// Update renombra un template.
func (uc *TemplateUseCase) Update(companyID, id string, in dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	template, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		template.Name = *in.Name
	}
	template.UpdatedAt = time.Now()
	if err := uc.repo.Update(template); err != nil {
		return nil, err
	}
	return uc.toResponse(template, true)
}

// List lista templates por empresa con paginación (sin atributos).
func (uc *TemplateUseCase) List(companyID string, limit, offset int) (*dto.TemplateListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, tpl := range list {
		resp, err := uc.toResponse(tpl, false)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.TemplateListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un template. Rechaza con domain.ErrHasDependencies si tiene
// productos asociados.
func (uc *TemplateUseCase) Delete(companyID, id string) error {
	if _, err := uc.scoped(companyID, id); err != nil {
		return err
	}
	count, err := uc.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrHasDependencies
	}
	return uc.repo.Delete(id)
}

// AddAttribute asigna un atributo global o custom al template. Un atributo
// custom debe pertenecer a la misma empresa que el template.
func (uc *TemplateUseCase) AddAttribute(companyID, templateID string, in dto.AddTemplateAttributeRequest) (*dto.TemplateResponse, error) {
	template, err := uc.scoped(companyID, templateID)
	if err != nil {
		return nil, err
	}
	ref, err := uc.buildRef(companyID, in.AttributeKind, in.AttributeID)
	if err != nil {
		return nil, err
	}
	attr := &entity.TemplateAttribute{
		ID:           uuid.New().String(),
		TemplateID:   templateID,
		Attribute:    ref,
		IsRequired:   in.IsRequired,
		Order:        in.Order,
		DefaultValue: in.DefaultValue,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.AddAttribute(attr); err != nil {
		return nil, err
	}
	return uc.toResponse(template, true)
}

// RemoveAttribute quita un atributo del template.
func (uc *TemplateUseCase) RemoveAttribute(companyID, templateID, templateAttributeID string) error {
	if _, err := uc.scoped(companyID, templateID); err != nil {
		return err
	}
	return uc.repo.RemoveAttribute(templateID, templateAttributeID)
}

// ReorderAttribute cambia el orden de despliegue de un atributo del template.
func (uc *TemplateUseCase) ReorderAttribute(companyID, templateID, templateAttributeID string, order int) error {
	if _, err := uc.scoped(companyID, templateID); err != nil {
		return err
	}
	return uc.repo.UpdateAttributeOrder(templateID, templateAttributeID, order)
}

// buildRef valida la referencia a un atributo y su alcance de empresa.
func (uc *TemplateUseCase) buildRef(companyID, kind, attributeID string) (entity.AttributeRef, error) {
	switch entity.AttributeKind(kind) {
	case entity.AttributeKindGlobal:
		attr, err := uc.attrRepo.GetGlobalByID(attributeID)
		if err != nil {
			return entity.AttributeRef{}, err
		}
		if attr == nil {
			return entity.AttributeRef{}, domain.ErrNotFound
		}
		return entity.GlobalRef(attributeID), nil
	case entity.AttributeKindCustom:
		attr, err := uc.attrRepo.GetCustomByID(attributeID)
		if err != nil {
			return entity.AttributeRef{}, err
		}
		if attr == nil {
			return entity.AttributeRef{}, domain.ErrNotFound
		}
		if attr.CompanyID != companyID {
			return entity.AttributeRef{}, domain.ErrCrossCompanyReference
		}
		return entity.CustomRef(attributeID), nil
	}
	return entity.AttributeRef{}, domain.ValidationErrors{"attribute_kind": "debe ser global o custom"}
}

func (uc *TemplateUseCase) scoped(companyID, id string) (*entity.Template, error) {
	template, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil || template.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return template, nil
}

// toResponse arma la respuesta; con withAttrs resuelve cada atributo asignado.
func (uc *TemplateUseCase) toResponse(t *entity.Template, withAttrs bool) (*dto.TemplateResponse, error) {
	resp := &dto.TemplateResponse{
		ID:        t.ID,
		CompanyID: t.CompanyID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if !withAttrs {
		return resp, nil
	}
	attrs, err := uc.repo.ListAttributes(t.ID)
	if err != nil {
		return nil, err
	}
	resp.Attributes = make([]dto.TemplateAttributeResponse, 0, len(attrs))
	for _, ta := range attrs {
		resolved, err := uc.attrRepo.Resolve(ta.Attribute)
		if err != nil {
			return nil, err
		}
		resp.Attributes = append(resp.Attributes, dto.TemplateAttributeResponse{
			ID:            ta.ID,
			AttributeKind: string(ta.Attribute.Kind),
			AttributeID:   ta.Attribute.ID,
			Name:          resolved.Name,
			Slug:          resolved.Slug,
			DataType:      string(resolved.DataType),
			UnitOfMeasure: resolved.UnitOfMeasure,
			IsRequired:    ta.IsRequired,
			Order:         ta.Order,
			DefaultValue:  ta.DefaultValue,
		})
	}
	return resp, nil
}
