package entity

import "time"

// Organization representa una organización de ayuda social (tenant del sistema).
// Todas las demás entidades están particionadas por OrganizationID.
type Organization struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
