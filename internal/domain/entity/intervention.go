package entity

import "time"

// Tipos de intervención planificada.
const (
	InterventionVisit      = "visit"
	InterventionDelivery   = "delivery"
	InterventionAssessment = "assessment"
)

// Estados de una intervención.
const (
	InterventionPlanned   = "planned"
	InterventionDone      = "done"
	InterventionCancelled = "cancelled"
)

// Intervention representa una intervención planificada de un voluntario con una familia
// (agenda del módulo de planificación). Marcarla como done no toca LastVisitAt:
// eso lo hace la nota de visita o la ayuda registrada.
type Intervention struct {
	ID             string
	OrganizationID string
	FamilyID       string
	VolunteerID    string
	ScheduledAt    time.Time
	Kind           string // visit, delivery, assessment
	Status         string // planned, done, cancelled
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
