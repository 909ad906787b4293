package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAidRequest entrada para registrar una ayuda entregada.
// ArticleID es opcional (la ayuda puede no salir del stock registrado);
// Quantity por defecto 1; Date por defecto ahora.
type CreateAidRequest struct {
	FamilyID  string           `json:"family_id" validate:"required,uuid"`
	Type      string           `json:"type" validate:"required,uuid"`
	ArticleID string           `json:"article_id" validate:"omitempty,uuid"`
	Quantity  *decimal.Decimal `json:"quantity"`
	Date      *time.Time       `json:"date"`
	Source    string           `json:"source" validate:"required,oneof=donation purchase partner"`
	Notes     string           `json:"notes"`
	ProofURL  string           `json:"proof_url"`
}

// AidResponse salida de una ayuda registrada.
type AidResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	FamilyID       string          `json:"family_id"`
	Type           string          `json:"type"`
	ArticleID      string          `json:"article_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Date           time.Time       `json:"date"`
	VolunteerID    string          `json:"volunteer_id"`
	Source         string          `json:"source"`
	Notes          string          `json:"notes"`
	ProofURL       string          `json:"proof_url"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AidListResponse lista paginada de ayudas.
type AidListResponse struct {
	Items []AidResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
