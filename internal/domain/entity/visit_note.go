package entity

import "time"

// VisitNote representa el registro de una visita de un voluntario a una familia.
// Su creación actualiza LastVisitAt de la familia.
type VisitNote struct {
	ID             string
	OrganizationID string
	FamilyID       string
	AuthorID       string // usuario que visitó
	Date           time.Time
	Content        string
	CreatedAt      time.Time
}
