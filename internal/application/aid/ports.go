package aid

import (
	"context"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad del registro de ayudas: inserción, toque de
// LastVisitAt, descuento de stock y avance de necesidades, todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		aidRepo repository.AidRepository,
		familyRepo repository.FamilyRepository,
		articleRepo repository.ArticleRepository,
		needRepo repository.NeedRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de una ayuda entregada.
type ReceiptGenerator interface {
	GenerateReceipt(
		ctx context.Context,
		aid *entity.Aid,
		org *entity.Organization,
		family *entity.Family,
		category *entity.Category,
		volunteer *entity.User,
	) ([]byte, error)
}
