package entity

import "time"

// Category representa una categoría de ayuda (alimentos, ropa, higiene, ...).
// La usan tanto las necesidades como las ayudas y los artículos de stock.
type Category struct {
	ID             string
	OrganizationID string
	Name           string
	Code           string // código único por organización
	Description    string
	Status         string // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
