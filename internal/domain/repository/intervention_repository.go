package repository

import "github.com/jpvargas/asistencia-api/internal/domain/entity"

// InterventionRepository define el puerto de persistencia para Intervention (DIP).
type InterventionRepository interface {
	Create(intervention *entity.Intervention) error
	GetByID(id string) (*entity.Intervention, error)
	Update(intervention *entity.Intervention) error
	// List filtra por voluntario y/o estado; cadenas vacías no filtran.
	List(organizationID, volunteerID, status string, limit, offset int) ([]*entity.Intervention, error)
	Delete(id string) error
}
