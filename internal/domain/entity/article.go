package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa un artículo donado con control de stock, asociado a una Category.
// StockQuantity nunca baja de cero: el descuento por ayuda se recorta en 0 (restricción
// blanda: la ayuda puede venir de fuentes fuera del stock registrado).
type Article struct {
	ID             string
	OrganizationID string
	CategoryID     string
	Name           string
	Description    string
	Unit           string          // unidad de medida (kg, unidad, litro, ...)
	StockQuantity  decimal.Decimal // >= 0, recortado en 0
	StockMin       decimal.Decimal // umbral de reposición
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BelowMin indica si el stock está en o por debajo del umbral de reposición.
func (a *Article) BelowMin() bool {
	return a.StockQuantity.LessThanOrEqual(a.StockMin)
}
