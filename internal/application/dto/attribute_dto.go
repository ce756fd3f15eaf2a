package dto

import "time"

// CreateAttributeRequest entrada para crear un atributo (global o custom;
// el slug se deriva del nombre).
type CreateAttributeRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	DataType      string `json:"data_type" validate:"required,oneof=text number boolean date decimal"`
	UnitOfMeasure string `json:"unit_of_measure"`
}

// AttributeResponse salida de un atributo global o custom.
type AttributeResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id,omitempty"` // vacío en globales
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	DataType      string    `json:"data_type"`
	UnitOfMeasure string    `json:"unit_of_measure,omitempty"`
	Kind          string    `json:"kind"` // global | custom
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AttributeListResponse lista paginada de atributos.
type AttributeListResponse struct {
	Items []AttributeResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
