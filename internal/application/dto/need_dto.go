package dto

import "time"

// CreateNeedRequest entrada para registrar una necesidad.
type CreateNeedRequest struct {
	FamilyID string `json:"family_id" validate:"required,uuid"`
	Type     string `json:"type" validate:"required,uuid"`
	Urgency  string `json:"urgency" validate:"required,oneof=low medium high"`
	Details  string `json:"details"`
	Comment  string `json:"comment"`
}

// UpdateNeedRequest entrada para actualizar una necesidad (campos opcionales).
// El cambio de status por esta vía es la edición explícita de un admin.
type UpdateNeedRequest struct {
	Urgency *string `json:"urgency" validate:"omitempty,oneof=low medium high"`
	Status  *string `json:"status" validate:"omitempty,oneof=pending partial covered"`
	Details *string `json:"details"`
	Comment *string `json:"comment"`
}

// NeedResponse salida de una necesidad, anotada con la prioridad derivada.
type NeedResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	FamilyID       string    `json:"family_id"`
	Type           string    `json:"type"`
	Urgency        string    `json:"urgency"`
	Status         string    `json:"status"`
	Details        string    `json:"details"`
	Comment        string    `json:"comment"`
	PriorityScore  float64   `json:"priority_score"`
	PriorityLevel  string    `json:"priority_level"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NeedListResponse lista de necesidades ordenada por score descendente.
type NeedListResponse struct {
	Items []NeedResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
