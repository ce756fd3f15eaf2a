package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Specifications se
// valida contra el template antes de persistir.
type CreateProductRequest struct {
	SKU            string          `json:"sku" validate:"required,min=1,max=100"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID     string          `json:"category_id" validate:"required,uuid"`
	TemplateID     string          `json:"template_id" validate:"required,uuid"`
	Barcode        string          `json:"barcode"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	UnitMeasure    string          `json:"unit_measure"`
	MinimumStock   decimal.Decimal `json:"minimum_stock"`
	Specifications map[string]any  `json:"specifications"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock no se
// toca por acá: se maneja exclusivamente vía movimientos.
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID     *string          `json:"category_id" validate:"omitempty,uuid"`
	Barcode        *string          `json:"barcode"`
	Price          *decimal.Decimal `json:"price"`
	Cost           *decimal.Decimal `json:"cost"`
	UnitMeasure    *string          `json:"unit_measure"`
	MinimumStock   *decimal.Decimal `json:"minimum_stock"`
	Specifications map[string]any   `json:"specifications"`
	IsActive       *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	CategoryID     string          `json:"category_id"`
	TemplateID     string          `json:"template_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Barcode        string          `json:"barcode,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	UnitMeasure    string          `json:"unit_measure"`
	MinimumStock   decimal.Decimal `json:"minimum_stock"`
	Specifications json.RawMessage `json:"specifications"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// BulkCreateProductsRequest entrada para crear productos en lote (importación
// desde Excel).
type BulkCreateProductsRequest struct {
	Products []CreateProductRequest `json:"products" validate:"required,min=1,dive"`
}

// BulkCreateError error de un ítem del lote, identificado por su posición.
type BulkCreateError struct {
	Index   int    `json:"index"`
	SKU     string `json:"sku,omitempty"`
	Message string `json:"message"`
}

// BulkCreateProductsResponse resultado del lote: los creados y los rechazados.
type BulkCreateProductsResponse struct {
	Created  int               `json:"created"`
	Errors   []BulkCreateError `json:"errors,omitempty"`
	Products []ProductResponse `json:"products"`
}

// ExportProductsResponse exportación completa del catálogo en JSON,
// convertible a Excel o reimportable vía bulk.
type ExportProductsResponse struct {
	Count      int               `json:"count"`
	ExportedAt time.Time         `json:"exported_at"`
	Products   []ProductResponse `json:"products"`
}

// ValidateSpecificationsRequest entrada para validar specifications contra un
// template sin crear el producto (dry-run del formulario).
type ValidateSpecificationsRequest struct {
	TemplateID     string         `json:"template_id" validate:"required,uuid"`
	Specifications map[string]any `json:"specifications"`
}

// ValidateSpecificationsResponse valores canónicos que quedarían guardados.
type ValidateSpecificationsResponse struct {
	Valid          bool           `json:"valid"`
	Specifications map[string]any `json:"specifications"`
}
