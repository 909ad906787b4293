package dto

import "time"

// CreateInterventionRequest entrada para planificar una intervención.
type CreateInterventionRequest struct {
	FamilyID    string    `json:"family_id" validate:"required,uuid"`
	VolunteerID string    `json:"volunteer_id" validate:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Kind        string    `json:"kind" validate:"required,oneof=visit delivery assessment"`
	Notes       string    `json:"notes"`
}

// UpdateInterventionRequest entrada para actualizar una intervención (campos opcionales).
type UpdateInterventionRequest struct {
	VolunteerID *string    `json:"volunteer_id" validate:"omitempty,uuid"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Kind        *string    `json:"kind" validate:"omitempty,oneof=visit delivery assessment"`
	Status      *string    `json:"status" validate:"omitempty,oneof=planned done cancelled"`
	Notes       *string    `json:"notes"`
}

// InterventionResponse salida de una intervención planificada.
type InterventionResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	FamilyID       string    `json:"family_id"`
	VolunteerID    string    `json:"volunteer_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Kind           string    `json:"kind"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InterventionListResponse lista paginada de intervenciones.
type InterventionListResponse struct {
	Items []InterventionResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
