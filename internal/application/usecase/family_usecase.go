package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jpvargas/asistencia-api/internal/application/audit"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
	"github.com/jpvargas/asistencia-api/pkg/normalize"
)

// FamilyUseCase casos de uso CRUD para familias beneficiarias y sus menores.
// La búsqueda por nombre es insensible a mayúsculas y tildes.
type FamilyUseCase struct {
	repo    repository.FamilyRepository
	auditor *audit.Recorder
}

// NewFamilyUseCase construye el caso de uso.
func NewFamilyUseCase(repo repository.FamilyRepository, auditor *audit.Recorder) *FamilyUseCase {
	return &FamilyUseCase{repo: repo, auditor: auditor}
}

// Create registra una familia. LastVisitAt arranca en nil (nunca visitada).
func (uc *FamilyUseCase) Create(organizationID, actorID string, in dto.CreateFamilyRequest) (*dto.FamilyResponse, error) {
	now := time.Now()
	family := &entity.Family{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          in.Email,
		Notes:          in.Notes,
		MembersCount:   in.MembersCount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(family); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "family", family.ID, entity.AuditCreate, "familia registrada")
	return toFamilyResponse(family), nil
}

// GetByID obtiene una familia por ID, acotada a la organización.
func (uc *FamilyUseCase) GetByID(organizationID, id string) (*dto.FamilyResponse, error) {
	family, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, nil
	}
	return toFamilyResponse(family), nil
}

// Update actualiza una familia (solo campos presentes). LastVisitAt no se
// edita por aquí: lo tocan las ayudas y las notas de visita.
func (uc *FamilyUseCase) Update(organizationID, actorID, id string, in dto.UpdateFamilyRequest) (*dto.FamilyResponse, error) {
	family, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, nil
	}
	if in.Name != nil {
		family.Name = *in.Name
	}
	if in.Address != nil {
		family.Address = *in.Address
	}
	if in.Phone != nil {
		family.Phone = *in.Phone
	}
	if in.Email != nil {
		family.Email = *in.Email
	}
	if in.Notes != nil {
		family.Notes = *in.Notes
	}
	if in.MembersCount != nil {
		family.MembersCount = *in.MembersCount
	}
	family.UpdatedAt = time.Now()
	if err := uc.repo.Update(family); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "family", family.ID, entity.AuditUpdate, "familia actualizada")
	return toFamilyResponse(family), nil
}

// List lista las familias de la organización. Si query no está vacío filtra
// por nombre normalizado (sin tildes, case-insensitive).
func (uc *FamilyUseCase) List(organizationID, query string, limit, offset int) (*dto.FamilyListResponse, error) {
	var (
		list []*entity.Family
		err  error
	)
	if strings.TrimSpace(query) != "" {
		list, err = uc.repo.Search(organizationID, normalize.Search(query), limit, offset)
	} else {
		list, err = uc.repo.ListByOrganization(organizationID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.FamilyResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFamilyResponse(f))
	}
	return &dto.FamilyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una familia de la organización (y en cascada sus menores,
// necesidades y documentos, vía FK).
func (uc *FamilyUseCase) Delete(organizationID, actorID, id string) error {
	family, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if family == nil || family.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record(organizationID, actorID, "family", id, entity.AuditDelete, "familia eliminada")
	return nil
}

// ── Menores ───────────────────────────────────────────────────────────────────

// CreateChild registra un menor a cargo de la familia.
func (uc *FamilyUseCase) CreateChild(organizationID, actorID, familyID string, in dto.CreateChildRequest) (*dto.ChildResponse, error) {
	family, err := uc.repo.GetByID(familyID)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	child := &entity.Child{
		ID:          uuid.New().String(),
		FamilyID:    familyID,
		FirstName:   in.FirstName,
		BirthDate:   in.BirthDate,
		SchoolLevel: in.SchoolLevel,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.CreateChild(child); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "child", child.ID, entity.AuditCreate, "menor registrado")
	return toChildResponse(child), nil
}

// ListChildren lista los menores de la familia.
func (uc *FamilyUseCase) ListChildren(organizationID, familyID string) ([]dto.ChildResponse, error) {
	family, err := uc.repo.GetByID(familyID)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListChildren(familyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChildResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toChildResponse(c))
	}
	return items, nil
}

// UpdateChild actualiza un menor (solo campos presentes).
func (uc *FamilyUseCase) UpdateChild(organizationID, actorID, childID string, in dto.UpdateChildRequest) (*dto.ChildResponse, error) {
	child, err := uc.childOfOrganization(organizationID, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	if in.FirstName != nil {
		child.FirstName = *in.FirstName
	}
	if in.BirthDate != nil {
		child.BirthDate = in.BirthDate
	}
	if in.SchoolLevel != nil {
		child.SchoolLevel = *in.SchoolLevel
	}
	if in.Notes != nil {
		child.Notes = *in.Notes
	}
	child.UpdatedAt = time.Now()
	if err := uc.repo.UpdateChild(child); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "child", child.ID, entity.AuditUpdate, "menor actualizado")
	return toChildResponse(child), nil
}

// DeleteChild elimina un menor.
func (uc *FamilyUseCase) DeleteChild(organizationID, actorID, childID string) error {
	child, err := uc.childOfOrganization(organizationID, childID)
	if err != nil {
		return err
	}
	if child == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.DeleteChild(childID); err != nil {
		return err
	}
	uc.auditor.Record(organizationID, actorID, "child", childID, entity.AuditDelete, "menor eliminado")
	return nil
}

// childOfOrganization resuelve el menor verificando que su familia pertenezca a la organización.
func (uc *FamilyUseCase) childOfOrganization(organizationID, childID string) (*entity.Child, error) {
	child, err := uc.repo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	family, err := uc.repo.GetByID(child.FamilyID)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, nil
	}
	return child, nil
}

func toFamilyResponse(f *entity.Family) *dto.FamilyResponse {
	if f == nil {
		return nil
	}
	return &dto.FamilyResponse{
		ID:             f.ID,
		OrganizationID: f.OrganizationID,
		Name:           f.Name,
		Address:        f.Address,
		Phone:          f.Phone,
		Email:          f.Email,
		Notes:          f.Notes,
		MembersCount:   f.MembersCount,
		LastVisitAt:    f.LastVisitAt,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func toChildResponse(c *entity.Child) *dto.ChildResponse {
	if c == nil {
		return nil
	}
	return &dto.ChildResponse{
		ID:          c.ID,
		FamilyID:    c.FamilyID,
		FirstName:   c.FirstName,
		BirthDate:   c.BirthDate,
		SchoolLevel: c.SchoolLevel,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
