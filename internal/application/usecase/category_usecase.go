package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpvargas/asistencia-api/internal/application/audit"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías de ayuda.
type CategoryUseCase struct {
	repo    repository.CategoryRepository
	auditor *audit.Recorder
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, auditor *audit.Recorder) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, auditor: auditor}
}

// Create crea una categoría. El código es único por organización.
func (uc *CategoryUseCase) Create(organizationID, actorID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	existing, _ := uc.repo.GetByOrganizationAndCode(organizationID, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Code:           in.Code,
		Description:    in.Description,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "category", category.ID, entity.AuditCreate, "categoría creada")
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID, acotada a la organización.
func (uc *CategoryUseCase) GetByID(organizationID, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil || category.OrganizationID != organizationID {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// Update actualiza una categoría (solo campos presentes). El código no se edita.
func (uc *CategoryUseCase) Update(organizationID, actorID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil || category.OrganizationID != organizationID {
		return nil, nil
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Status != nil {
		category.Status = *in.Status
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "category", category.ID, entity.AuditUpdate, "categoría actualizada")
	return toCategoryResponse(category), nil
}

// List lista las categorías de la organización con paginación.
func (uc *CategoryUseCase) List(organizationID string, limit, offset int) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una categoría de la organización.
func (uc *CategoryUseCase) Delete(organizationID, actorID, id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil || category.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record(organizationID, actorID, "category", id, entity.AuditDelete, "categoría eliminada")
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Code:           c.Code,
		Description:    c.Description,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
