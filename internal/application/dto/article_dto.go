package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest entrada para crear un artículo de stock.
type CreateArticleRequest struct {
	CategoryID    string          `json:"category_id" validate:"required,uuid"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	StockMin      decimal.Decimal `json:"stock_min"`
}

// UpdateArticleRequest entrada para actualizar un artículo (campos opcionales).
// El stock no se edita por aquí: usar restock o el descuento por ayuda.
type UpdateArticleRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Unit        *string          `json:"unit"`
	StockMin    *decimal.Decimal `json:"stock_min"`
}

// RestockArticleRequest entrada para reponer stock (incremento explícito).
type RestockArticleRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	CategoryID     string          `json:"category_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Unit           string          `json:"unit"`
	StockQuantity  decimal.Decimal `json:"stock_quantity"`
	StockMin       decimal.Decimal `json:"stock_min"`
	BelowMin       bool            `json:"below_min"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ArticleListResponse lista paginada de artículos.
type ArticleListResponse struct {
	Items []ArticleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
