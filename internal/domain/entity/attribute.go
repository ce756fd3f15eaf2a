package entity

import "time"

// DataType tipo de dato de un atributo dinámico.
type DataType string

const (
	DataTypeText    DataType = "text"
	DataTypeNumber  DataType = "number"
	DataTypeBoolean DataType = "boolean"
	DataTypeDate    DataType = "date"
	DataTypeDecimal DataType = "decimal"
)

// ValidDataType indica si s es uno de los tipos de dato soportados.
func ValidDataType(s string) bool {
	switch DataType(s) {
	case DataTypeText, DataTypeNumber, DataTypeBoolean, DataTypeDate, DataTypeDecimal:
		return true
	}
	return false
}

// GlobalAttribute atributo disponible para todas las empresas (slug único global).
type GlobalAttribute struct {
	ID            string
	Name          string
	Slug          string
	DataType      DataType
	UnitOfMeasure string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CustomAttribute atributo propio de una empresa (slug único por empresa).
type CustomAttribute struct {
	ID            string
	CompanyID     string
	Name          string
	Slug          string
	DataType      DataType
	UnitOfMeasure string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AttributeKind discrimina el origen de un atributo referenciado por un template.
type AttributeKind string

const (
	AttributeKindGlobal AttributeKind = "global"
	AttributeKindCustom AttributeKind = "custom"
)

// AttributeRef referencia etiquetada a exactamente un atributo (global o custom).
// Modelarlo como unión etiquetada hace irrepresentable el estado "ambos" o "ninguno".
type AttributeRef struct {
	Kind AttributeKind
	ID   string
}

// GlobalRef construye la referencia a un atributo global.
func GlobalRef(id string) AttributeRef {
	return AttributeRef{Kind: AttributeKindGlobal, ID: id}
}

// CustomRef construye la referencia a un atributo custom.
func CustomRef(id string) AttributeRef {
	return AttributeRef{Kind: AttributeKindCustom, ID: id}
}

// Attribute vista resuelta de un atributo (global o custom) para validación.
type Attribute struct {
	Name          string
	Slug          string
	DataType      DataType
	UnitOfMeasure string
}
