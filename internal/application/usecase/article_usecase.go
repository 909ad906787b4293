package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpvargas/asistencia-api/internal/application/audit"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// ArticleUseCase casos de uso CRUD para artículos de stock. El descuento de
// stock vive en el registro de ayudas; aquí solo el alta, edición y reposición.
type ArticleUseCase struct {
	repo         repository.ArticleRepository
	categoryRepo repository.CategoryRepository
	auditor      *audit.Recorder
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository, categoryRepo repository.CategoryRepository, auditor *audit.Recorder) *ArticleUseCase {
	return &ArticleUseCase{repo: repo, categoryRepo: categoryRepo, auditor: auditor}
}

// Create crea un artículo asociado a una categoría de la organización.
func (uc *ArticleUseCase) Create(organizationID, actorID string, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.OrganizationID != organizationID {
		return nil, domain.ErrInvalidInput
	}
	if in.StockQuantity.IsNegative() || in.StockMin.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	article := &entity.Article{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		CategoryID:     in.CategoryID,
		Name:           in.Name,
		Description:    in.Description,
		Unit:           in.Unit,
		StockQuantity:  in.StockQuantity,
		StockMin:       in.StockMin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(article); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "article", article.ID, entity.AuditCreate, "artículo creado")
	return toArticleResponse(article), nil
}

// GetByID obtiene un artículo por ID, acotado a la organización.
func (uc *ArticleUseCase) GetByID(organizationID, id string) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil || article.OrganizationID != organizationID {
		return nil, nil
	}
	return toArticleResponse(article), nil
}

// Update actualiza un artículo (solo campos presentes). El stock no se edita
// por aquí: usar Restock o el descuento por ayuda.
func (uc *ArticleUseCase) Update(organizationID, actorID, id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil || article.OrganizationID != organizationID {
		return nil, nil
	}
	if in.Name != nil {
		article.Name = *in.Name
	}
	if in.Description != nil {
		article.Description = *in.Description
	}
	if in.Unit != nil {
		article.Unit = *in.Unit
	}
	if in.StockMin != nil {
		if in.StockMin.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		article.StockMin = *in.StockMin
	}
	article.UpdatedAt = time.Now()
	if err := uc.repo.Update(article); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "article", article.ID, entity.AuditUpdate, "artículo actualizado")
	return toArticleResponse(article), nil
}

// Restock incrementa el stock del artículo (reposición por donación recibida).
func (uc *ArticleUseCase) Restock(organizationID, actorID, id string, in dto.RestockArticleRequest) (*dto.ArticleResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	article, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil || article.OrganizationID != organizationID {
		return nil, nil
	}
	article.StockQuantity = article.StockQuantity.Add(in.Quantity)
	if err := uc.repo.UpdateStock(article.ID, article.StockQuantity); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "article", article.ID, entity.AuditUpdate,
		"reposición de stock: +"+in.Quantity.String())
	return toArticleResponse(article), nil
}

// List lista los artículos de la organización con paginación.
func (uc *ArticleUseCase) List(organizationID string, limit, offset int) (*dto.ArticleListResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArticleResponse(a))
	}
	return &dto.ArticleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListBelowMin lista los artículos en o por debajo de su umbral de reposición.
func (uc *ArticleUseCase) ListBelowMin(organizationID string) ([]dto.ArticleResponse, error) {
	list, err := uc.repo.ListBelowMin(organizationID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArticleResponse(a))
	}
	return items, nil
}

// Delete elimina un artículo de la organización.
func (uc *ArticleUseCase) Delete(organizationID, actorID, id string) error {
	article, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if article == nil || article.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record(organizationID, actorID, "article", id, entity.AuditDelete, "artículo eliminado")
	return nil
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	if a == nil {
		return nil
	}
	return &dto.ArticleResponse{
		ID:             a.ID,
		OrganizationID: a.OrganizationID,
		CategoryID:     a.CategoryID,
		Name:           a.Name,
		Description:    a.Description,
		Unit:           a.Unit,
		StockQuantity:  a.StockQuantity,
		StockMin:       a.StockMin,
		BelowMin:       a.BelowMin(),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
