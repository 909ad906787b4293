package entity

import "time"

// Urgencias válidas para Need.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Estados válidos para Need. El estado solo avanza pending -> partial -> covered
// vía la conciliación de ayudas (o por edición explícita de un admin); nunca
// retrocede automáticamente.
const (
	NeedStatusPending = "pending"
	NeedStatusPartial = "partial"
	NeedStatusCovered = "covered"
)

// Need representa una necesidad registrada de una familia para una categoría de ayuda.
// El score de prioridad es derivado (paquete need), no se persiste.
type Need struct {
	ID             string
	OrganizationID string
	FamilyID       string
	Type           string // CategoryID
	Urgency        string // low, medium, high
	Status         string // pending, partial, covered
	Details        string
	Comment        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AdvanceStatus avanza el estado un paso: pending -> partial -> covered.
// Una necesidad cubierta se queda cubierta. Devuelve true si hubo cambio.
func (n *Need) AdvanceStatus() bool {
	switch n.Status {
	case NeedStatusPending:
		n.Status = NeedStatusPartial
		return true
	case NeedStatusPartial:
		n.Status = NeedStatusCovered
		return true
	}
	return false
}

// NeedWithFamily es la proyección de lectura usada por los listados priorizados:
// la necesidad más el LastVisitAt de su familia (insumo del score).
type NeedWithFamily struct {
	Need
	FamilyLastVisitAt *time.Time
}
