package aid

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpvargas/asistencia-api/internal/application/audit"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// DedupWindow ventana del guard de idempotencia: una ayuda idéntica reenviada
// dentro de este lapso se considera el mismo submit (reintento de red), no una
// segunda entrega.
const DedupWindow = 10 * time.Second

// CreateAidUseCase registra una ayuda de forma transaccional con sus cuatro
// efectos: inserción del evento, LastVisitAt de la familia, descuento de stock
// (recortado en 0) y avance de las necesidades abiertas del mismo tipo
// (pending -> partial -> covered, un paso por ayuda).
type CreateAidUseCase struct {
	txRunner    TxRunner
	familyRepo  repository.FamilyRepository
	articleRepo repository.ArticleRepository
	auditor     *audit.Recorder
}

// NewCreateAidUseCase construye el caso de uso.
func NewCreateAidUseCase(
	txRunner TxRunner,
	familyRepo repository.FamilyRepository,
	articleRepo repository.ArticleRepository,
	auditor *audit.Recorder,
) *CreateAidUseCase {
	return &CreateAidUseCase{
		txRunner:    txRunner,
		familyRepo:  familyRepo,
		articleRepo: articleRepo,
		auditor:     auditor,
	}
}

// Create valida la entrada, ejecuta la transacción y devuelve la ayuda creada
// (o la existente, si el guard de idempotencia detectó un doble submit).
func (uc *CreateAidUseCase) Create(ctx context.Context, organizationID, volunteerID string, in dto.CreateAidRequest) (*dto.AidResponse, error) {
	if !entity.ValidSource(in.Source) {
		return nil, domain.ErrInvalidInput
	}

	quantity := decimal.NewFromInt(1)
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// Validar que la familia exista y sea de la organización
	family, err := uc.familyRepo.GetByID(in.FamilyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, domain.ErrNotFound
	}
	if family.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}

	// Validar el artículo si la ayuda sale del stock registrado
	if in.ArticleID != "" {
		article, err := uc.articleRepo.GetByID(in.ArticleID)
		if err != nil {
			return nil, err
		}
		if article == nil {
			return nil, domain.ErrNotFound
		}
		if article.OrganizationID != organizationID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	newAid := &entity.Aid{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		FamilyID:       in.FamilyID,
		Type:           in.Type,
		ArticleID:      in.ArticleID,
		Quantity:       quantity,
		Date:           date,
		VolunteerID:    volunteerID,
		Source:         in.Source,
		Notes:          in.Notes,
		ProofURL:       in.ProofURL,
		CreatedAt:      now,
	}

	var result *entity.Aid
	deduplicated := false

	// Transacción: todo o nada (TxRunner hace Commit/Rollback)
	err = uc.txRunner.Run(ctx, func(
		aidRepo repository.AidRepository,
		familyRepo repository.FamilyRepository,
		articleRepo repository.ArticleRepository,
		needRepo repository.NeedRepository,
	) error {
		// 0. Guard de idempotencia: mismo payload dentro de la ventana = mismo
		// submit. Si el cliente no mandó fecha, la fecha defaulteada no cuenta
		// para la comparación (cada reintento traería su propio now).
		existing, err := aidRepo.FindRecentDuplicate(newAid, in.Date != nil, now.Add(-DedupWindow))
		if err != nil {
			return err
		}
		if existing != nil {
			result = existing
			deduplicated = true
			return nil
		}

		// 1. Insertar el evento de ayuda
		if err := aidRepo.Create(newAid); err != nil {
			return err
		}

		// 2. Tocar LastVisitAt de la familia con la fecha de la ayuda
		if err := familyRepo.TouchLastVisit(newAid.FamilyID, newAid.Date); err != nil {
			return err
		}

		// 3. Descontar stock si hay artículo, recortado en 0 (restricción blanda:
		// registrar más ayuda que stock disponible es válido, no un error)
		if newAid.ArticleID != "" {
			article, err := articleRepo.GetForUpdate(newAid.ArticleID)
			if err != nil {
				return err
			}
			if article == nil {
				return domain.ErrNotFound
			}
			remaining := article.StockQuantity.Sub(newAid.Quantity)
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			if err := articleRepo.UpdateStock(article.ID, remaining); err != nil {
				return err
			}
		}

		// 4. Avanzar un paso las necesidades abiertas del mismo tipo
		// (pending -> partial -> covered; nunca salta estados ni retrocede)
		needs, err := needRepo.ListOpenByFamilyAndType(newAid.FamilyID, newAid.Type)
		if err != nil {
			return err
		}
		for _, n := range needs {
			if n.AdvanceStatus() {
				if err := needRepo.UpdateStatus(n.ID, n.Status); err != nil {
					return err
				}
			}
		}

		result = newAid
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !deduplicated {
		uc.auditor.Record(organizationID, volunteerID, "aid", result.ID, entity.AuditCreate, "ayuda registrada")
	}
	return toAidResponse(result), nil
}

func toAidResponse(a *entity.Aid) *dto.AidResponse {
	if a == nil {
		return nil
	}
	return &dto.AidResponse{
		ID:             a.ID,
		OrganizationID: a.OrganizationID,
		FamilyID:       a.FamilyID,
		Type:           a.Type,
		ArticleID:      a.ArticleID,
		Quantity:       a.Quantity,
		Date:           a.Date,
		VolunteerID:    a.VolunteerID,
		Source:         a.Source,
		Notes:          a.Notes,
		ProofURL:       a.ProofURL,
		CreatedAt:      a.CreatedAt,
	}
}
