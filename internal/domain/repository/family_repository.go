package repository

import (
	"time"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
)

// FamilyRepository define el puerto de persistencia para Family y sus Children (DIP).
// TouchLastVisit se usa dentro de transacciones (ayudas, notas de visita); nunca
// desde una edición directa del usuario.
type FamilyRepository interface {
	Create(family *entity.Family) error
	GetByID(id string) (*entity.Family, error)
	Update(family *entity.Family) error
	TouchLastVisit(id string, visitedAt time.Time) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Family, error)
	// Search filtra por nombre normalizado (sin tildes, case-insensitive).
	Search(organizationID, normalizedQuery string, limit, offset int) ([]*entity.Family, error)
	Delete(id string) error

	CreateChild(child *entity.Child) error
	GetChildByID(id string) (*entity.Child, error)
	ListChildren(familyID string) ([]*entity.Child, error)
	UpdateChild(child *entity.Child) error
	DeleteChild(id string) error
}
