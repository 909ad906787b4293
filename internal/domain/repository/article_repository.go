package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
)

// ArticleRepository define el puerto de persistencia para Article (DIP).
// Usado también dentro de la transacción de registro de ayudas, donde el
// descuento de stock necesita bloqueo de fila (GetForUpdate).
type ArticleRepository interface {
	Create(article *entity.Article) error
	GetByID(id string) (*entity.Article, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Article, error)
	Update(article *entity.Article) error
	UpdateStock(id string, quantity decimal.Decimal) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Article, error)
	ListBelowMin(organizationID string) ([]*entity.Article, error)
	Delete(id string) error
}
