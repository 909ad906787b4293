package entity

import "time"

// Family representa una familia beneficiaria.
// LastVisitAt NO se edita directamente: se actualiza como efecto secundario de
// registrar una ayuda o una nota de visita.
type Family struct {
	ID             string
	OrganizationID string
	Name           string
	Address        string
	Phone          string
	Email          string
	Notes          string
	MembersCount   int
	LastVisitAt    *time.Time // nil = nunca visitada
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Child representa un menor a cargo de una familia beneficiaria.
type Child struct {
	ID          string
	FamilyID    string
	FirstName   string
	BirthDate   *time.Time
	SchoolLevel string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
