package repository

import "github.com/jpvargas/asistencia-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByOrganizationAndCode(organizationID, code string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Category, error)
	Delete(id string) error
}
