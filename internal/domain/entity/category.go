package entity

import "time"

// Category representa una categoría de productos (nombre único por empresa).
type Category struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
