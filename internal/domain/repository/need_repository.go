package repository

import "github.com/jpvargas/asistencia-api/internal/domain/entity"

// NeedRepository define el puerto de persistencia para Need (DIP).
// ListOpenByFamilyAndType alimenta la conciliación de ayudas dentro de la
// transacción; los listados *WithFamily alimentan el score de prioridad.
type NeedRepository interface {
	Create(need *entity.Need) error
	GetByID(id string) (*entity.Need, error)
	Update(need *entity.Need) error
	UpdateStatus(id, status string) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.NeedWithFamily, error)
	ListByFamily(familyID string) ([]*entity.NeedWithFamily, error)
	// ListOpenByFamilyAndType devuelve las necesidades de la familia con ese tipo
	// y estado distinto de covered (bloqueadas FOR UPDATE dentro de la tx).
	ListOpenByFamilyAndType(familyID, categoryType string) ([]*entity.Need, error)
	Delete(id string) error
}
