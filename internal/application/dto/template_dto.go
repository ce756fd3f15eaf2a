package dto

import "time"

// CreateTemplateRequest entrada para crear un template de producto.
type CreateTemplateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// UpdateTemplateRequest entrada para renombrar un template.
type UpdateTemplateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

// AddTemplateAttributeRequest asigna un atributo global o custom al template.
// AttributeKind discrimina a cuál tabla apunta AttributeID.
type AddTemplateAttributeRequest struct {
	AttributeKind string `json:"attribute_kind" validate:"required,oneof=global custom"`
	AttributeID   string `json:"attribute_id" validate:"required,uuid"`
	IsRequired    bool   `json:"is_required"`
	Order         int    `json:"order"`
	DefaultValue  string `json:"default_value"`
}

// ReorderTemplateAttributeRequest cambia el orden de despliegue de un atributo.
type ReorderTemplateAttributeRequest struct {
	Order int `json:"order" validate:"min=0"`
}

// TemplateAttributeResponse salida de un atributo asignado a un template,
// con la definición ya resuelta.
type TemplateAttributeResponse struct {
	ID            string `json:"id"`
	AttributeKind string `json:"attribute_kind"`
	AttributeID   string `json:"attribute_id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	DataType      string `json:"data_type"`
	UnitOfMeasure string `json:"unit_of_measure,omitempty"`
	IsRequired    bool   `json:"is_required"`
	Order         int    `json:"order"`
	DefaultValue  string `json:"default_value,omitempty"`
}

// TemplateResponse salida de un template.
type TemplateResponse struct {
	ID         string                      `json:"id"`
	CompanyID  string                      `json:"company_id"`
	Name       string                      `json:"name"`
	Attributes []TemplateAttributeResponse `json:"attributes,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// TemplateListResponse lista paginada de templates.
type TemplateListResponse struct {
	Items []TemplateResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
