package dto

import "time"

// CreateVisitNoteRequest entrada para registrar una visita a una familia.
// Date por defecto ahora. La creación actualiza LastVisitAt de la familia.
type CreateVisitNoteRequest struct {
	FamilyID string     `json:"family_id" validate:"required,uuid"`
	Date     *time.Time `json:"date"`
	Content  string     `json:"content" validate:"required,min=1"`
}

// VisitNoteResponse salida de una nota de visita.
type VisitNoteResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	FamilyID       string    `json:"family_id"`
	AuthorID       string    `json:"author_id"`
	Date           time.Time `json:"date"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// VisitNoteListResponse lista paginada de notas de visita.
type VisitNoteListResponse struct {
	Items []VisitNoteResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
