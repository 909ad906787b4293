package aid

import (
	"context"

	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// ReceiptUseCase arma el comprobante PDF de una ayuda (entregable a la familia
// o al donante como soporte de la distribución).
type ReceiptUseCase struct {
	aidRepo      repository.AidRepository
	orgRepo      repository.OrganizationRepository
	familyRepo   repository.FamilyRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	generator    ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	aidRepo repository.AidRepository,
	orgRepo repository.OrganizationRepository,
	familyRepo repository.FamilyRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		aidRepo:      aidRepo,
		orgRepo:      orgRepo,
		familyRepo:   familyRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		generator:    generator,
	}
}

// Generate devuelve los bytes del PDF del comprobante de la ayuda.
func (uc *ReceiptUseCase) Generate(ctx context.Context, organizationID, aidID string) ([]byte, error) {
	a, err := uc.aidRepo.GetByID(aidID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}

	org, err := uc.orgRepo.GetByID(organizationID)
	if err != nil {
		return nil, err
	}
	family, err := uc.familyRepo.GetByID(a.FamilyID)
	if err != nil {
		return nil, err
	}
	if org == nil || family == nil {
		return nil, domain.ErrNotFound
	}

	// Categoría y voluntario son informativos: si faltan, el comprobante sale igual
	category, _ := uc.categoryRepo.GetByID(a.Type)
	volunteer, _ := uc.userRepo.GetByID(a.VolunteerID)

	return uc.generator.GenerateReceipt(ctx, a, org, family, category, volunteer)
}
