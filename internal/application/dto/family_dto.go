package dto

import "time"

// CreateFamilyRequest entrada para registrar una familia beneficiaria.
type CreateFamilyRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Notes        string `json:"notes"`
	MembersCount int    `json:"members_count" validate:"min=0"`
}

// UpdateFamilyRequest entrada para actualizar una familia (campos opcionales).
// LastVisitAt no es editable: lo tocan las ayudas y las notas de visita.
type UpdateFamilyRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Notes        *string `json:"notes"`
	MembersCount *int    `json:"members_count" validate:"omitempty,min=0"`
}

// FamilyResponse salida de una familia.
type FamilyResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	Name           string     `json:"name"`
	Address        string     `json:"address"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	Notes          string     `json:"notes"`
	MembersCount   int        `json:"members_count"`
	LastVisitAt    *time.Time `json:"last_visit_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FamilyListResponse lista paginada de familias.
type FamilyListResponse struct {
	Items []FamilyResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateChildRequest entrada para registrar un menor de la familia.
type CreateChildRequest struct {
	FirstName   string     `json:"first_name" validate:"required,min=1,max=100"`
	BirthDate   *time.Time `json:"birth_date"`
	SchoolLevel string     `json:"school_level"`
	Notes       string     `json:"notes"`
}

// UpdateChildRequest entrada para actualizar un menor (campos opcionales).
type UpdateChildRequest struct {
	FirstName   *string    `json:"first_name" validate:"omitempty,min=1,max=100"`
	BirthDate   *time.Time `json:"birth_date"`
	SchoolLevel *string    `json:"school_level"`
	Notes       *string    `json:"notes"`
}

// ChildResponse salida de un menor.
type ChildResponse struct {
	ID          string     `json:"id"`
	FamilyID    string     `json:"family_id"`
	FirstName   string     `json:"first_name"`
	BirthDate   *time.Time `json:"birth_date"`
	SchoolLevel string     `json:"school_level"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
