package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
	"github.com/tu-usuario/stock-control/pkg/slug"
)

// AttributeUseCase casos de uso para atributos globales (catálogo compartido)
// y custom (propios de cada empresa). El slug se deriva del nombre.
type AttributeUseCase struct {
	repo repository.AttributeRepository
}

// NewAttributeUseCase construye el caso de uso.
func NewAttributeUseCase(repo repository.AttributeRepository) *AttributeUseCase {
	return &AttributeUseCase{repo: repo}
}

// CreateGlobal crea un atributo global (slug único en el sistema).
func (uc *AttributeUseCase) CreateGlobal(in dto.CreateAttributeRequest) (*dto.AttributeResponse, error) {
	if !entity.ValidDataType(in.DataType) {
		return nil, domain.ValidationErrors{"data_type": "tipo de dato inválido"}
	}
	now := time.Now()
	attr := &entity.GlobalAttribute{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Slug:          slug.Make(in.Name),
		DataType:      entity.DataType(in.DataType),
		UnitOfMeasure: in.UnitOfMeasure,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.CreateGlobal(attr); err != nil {
		return nil, err
	}
	return globalToResponse(attr), nil
}

// ListGlobal lista el catálogo global de atributos.
func (uc *AttributeUseCase) ListGlobal(limit, offset int) (*dto.AttributeListResponse, error) {
	list, err := uc.repo.ListGlobal(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AttributeResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *globalToResponse(a))
	}
	return &dto.AttributeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// CreateCustom crea un atributo propio de la empresa (slug único por empresa).
func (uc *AttributeUseCase) CreateCustom(companyID string, in dto.CreateAttributeRequest) (*dto.AttributeResponse, error) {
	if !entity.ValidDataType(in.DataType) {
		return nil, domain.ValidationErrors{"data_type": "tipo de dato inválido"}
	}
	now := time.Now()
	attr := &entity.CustomAttribute{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		Slug:          slug.Make(in.Name),
		DataType:      entity.DataType(in.DataType),
		UnitOfMeasure: in.UnitOfMeasure,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.CreateCustom(attr); err != nil {
		return nil, err
	}
	return customToResponse(attr), nil
}

// ListCustom lista los atributos custom de la empresa.
func (uc *AttributeUseCase) ListCustom(companyID string, limit, offset int) (*dto.AttributeListResponse, error) {
	list, err := uc.repo.ListCustomByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AttributeResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *customToResponse(a))
	}
	return &dto.AttributeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteCustom elimina un atributo custom de la empresa. Rechaza con
// domain.ErrHasDependencies si algún template lo usa.
func (uc *AttributeUseCase) DeleteCustom(companyID, id string) error {
	attr, err := uc.repo.GetCustomByID(id)
	if err != nil {
		return err
	}
	if attr == nil || attr.CompanyID != companyID {
		return domain.ErrNotFound
	}
	uses, err := uc.repo.CountTemplateUses(entity.CustomRef(id))
	if err != nil {
		return err
	}
	if uses > 0 {
		return domain.ErrHasDependencies
	}
	return uc.repo.DeleteCustom(id)
}

func globalToResponse(a *entity.GlobalAttribute) *dto.AttributeResponse {
	return &dto.AttributeResponse{
		ID:            a.ID,
		Name:          a.Name,
		Slug:          a.Slug,
		DataType:      string(a.DataType),
		UnitOfMeasure: a.UnitOfMeasure,
		Kind:          string(entity.AttributeKindGlobal),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func customToResponse(a *entity.CustomAttribute) *dto.AttributeResponse {
	return &dto.AttributeResponse{
		ID:            a.ID,
		CompanyID:     a.CompanyID,
		Name:          a.Name,
		Slug:          a.Slug,
		DataType:      string(a.DataType),
		UnitOfMeasure: a.UnitOfMeasure,
		Kind:          string(entity.AttributeKindCustom),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
