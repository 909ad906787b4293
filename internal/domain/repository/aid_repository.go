package repository

import (
	"time"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
)

// AidRepository define el puerto de persistencia para Aid (DIP).
// Las ayudas son inmutables: solo Create, lecturas y Delete (admin).
type AidRepository interface {
	Create(aid *entity.Aid) error
	GetByID(id string) (*entity.Aid, error)
	// FindRecentDuplicate busca una ayuda idéntica (familia, tipo, artículo,
	// cantidad, voluntario, fuente, notas) insertada desde since. La fecha solo
	// participa en la comparación cuando matchDate es true: si el cliente no
	// envió fecha, cada reintento trae su propio time.Now() y compararla
	// rompería el guard. Guarda contra el doble submit de un mismo formulario,
	// no es dedup general.
	FindRecentDuplicate(aid *entity.Aid, matchDate bool, since time.Time) (*entity.Aid, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Aid, error)
	ListByFamily(familyID string, limit, offset int) ([]*entity.Aid, error)
	ListByPeriod(organizationID string, from, to time.Time) ([]*entity.Aid, error)
	Delete(id string) error
}
