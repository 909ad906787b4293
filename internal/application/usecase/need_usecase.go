package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jpvargas/asistencia-api/internal/application/audit"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/need"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// NeedUseCase casos de uso para necesidades. Los listados se anotan con el
// score de prioridad y se devuelven ordenados por score descendente; como el
// score depende del instante de evaluación, el orden se resuelve en memoria y
// la paginación se aplica sobre el listado ya ordenado.
type NeedUseCase struct {
	repo       repository.NeedRepository
	familyRepo repository.FamilyRepository
	auditor    *audit.Recorder
	now        func() time.Time
}

// NewNeedUseCase construye el caso de uso.
func NewNeedUseCase(repo repository.NeedRepository, familyRepo repository.FamilyRepository, auditor *audit.Recorder) *NeedUseCase {
	return &NeedUseCase{repo: repo, familyRepo: familyRepo, auditor: auditor, now: time.Now}
}

// Create registra una necesidad en estado pending.
func (uc *NeedUseCase) Create(organizationID, actorID string, in dto.CreateNeedRequest) (*dto.NeedResponse, error) {
	family, err := uc.familyRepo.GetByID(in.FamilyID)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	now := uc.now()
	n := &entity.Need{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		FamilyID:       in.FamilyID,
		Type:           in.Type,
		Urgency:        in.Urgency,
		Status:         entity.NeedStatusPending,
		Details:        in.Details,
		Comment:        in.Comment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(n); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "need", n.ID, entity.AuditCreate, "necesidad registrada")
	return uc.annotate(&entity.NeedWithFamily{Need: *n, FamilyLastVisitAt: family.LastVisitAt}, now), nil
}

// GetByID obtiene una necesidad anotada con su prioridad actual.
func (uc *NeedUseCase) GetByID(organizationID, id string) (*dto.NeedResponse, error) {
	n, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil || n.OrganizationID != organizationID {
		return nil, nil
	}
	family, err := uc.familyRepo.GetByID(n.FamilyID)
	if err != nil {
		return nil, err
	}
	var lastVisit *time.Time
	if family != nil {
		lastVisit = family.LastVisitAt
	}
	return uc.annotate(&entity.NeedWithFamily{Need: *n, FamilyLastVisitAt: lastVisit}, uc.now()), nil
}

// Update edita una necesidad (solo campos presentes). El cambio de status por
// aquí es la corrección explícita de un admin, sin restricción de sentido.
func (uc *NeedUseCase) Update(organizationID, actorID, id string, in dto.UpdateNeedRequest) (*dto.NeedResponse, error) {
	n, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil || n.OrganizationID != organizationID {
		return nil, nil
	}
	if in.Urgency != nil {
		n.Urgency = *in.Urgency
	}
	if in.Status != nil {
		n.Status = *in.Status
	}
	if in.Details != nil {
		n.Details = *in.Details
	}
	if in.Comment != nil {
		n.Comment = *in.Comment
	}
	n.UpdatedAt = uc.now()
	if err := uc.repo.Update(n); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "need", n.ID, entity.AuditUpdate, "necesidad actualizada")
	family, err := uc.familyRepo.GetByID(n.FamilyID)
	if err != nil {
		return nil, err
	}
	var lastVisit *time.Time
	if family != nil {
		lastVisit = family.LastVisitAt
	}
	return uc.annotate(&entity.NeedWithFamily{Need: *n, FamilyLastVisitAt: lastVisit}, uc.now()), nil
}

// List devuelve las necesidades de la organización ordenadas por prioridad
// (score desc, urgencia desc, createdAt asc, ID). Las cubiertas quedan siempre
// al final. La página se corta después de ordenar.
func (uc *NeedUseCase) List(organizationID, status string, limit, offset int) (*dto.NeedListResponse, error) {
	all, err := uc.repo.ListByOrganization(organizationID, 0, 0)
	if err != nil {
		return nil, err
	}
	if status != "" {
		filtered := all[:0]
		for _, n := range all {
			if n.Status == status {
				filtered = append(filtered, n)
			}
		}
		all = filtered
	}
	items := uc.rank(all)
	total := len(items)
	items = page(items, limit, offset)
	return &dto.NeedListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// ListByFamily devuelve las necesidades de una familia, ordenadas por prioridad.
func (uc *NeedUseCase) ListByFamily(organizationID, familyID string) ([]dto.NeedResponse, error) {
	family, err := uc.familyRepo.GetByID(familyID)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByFamily(familyID)
	if err != nil {
		return nil, err
	}
	return uc.rank(list), nil
}

// Delete elimina una necesidad de la organización.
func (uc *NeedUseCase) Delete(organizationID, actorID, id string) error {
	n, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if n == nil || n.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record(organizationID, actorID, "need", id, entity.AuditDelete, "necesidad eliminada")
	return nil
}

// rank anota cada necesidad con su score y devuelve el slice ordenado.
func (uc *NeedUseCase) rank(list []*entity.NeedWithFamily) []dto.NeedResponse {
	now := uc.now()
	items := make([]dto.NeedResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *uc.annotate(n, now))
	}
	sort.Slice(items, func(i, j int) bool {
		return need.Less(
			need.Ranked{ID: items[i].ID, Urgency: items[i].Urgency, CreatedAt: items[i].CreatedAt, Score: items[i].PriorityScore},
			need.Ranked{ID: items[j].ID, Urgency: items[j].Urgency, CreatedAt: items[j].CreatedAt, Score: items[j].PriorityScore},
		)
	})
	return items
}

func (uc *NeedUseCase) annotate(n *entity.NeedWithFamily, now time.Time) *dto.NeedResponse {
	score := need.Score(need.ScoreInput{
		Urgency:     n.Urgency,
		Status:      n.Status,
		CreatedAt:   n.CreatedAt,
		LastVisitAt: n.FamilyLastVisitAt,
	}, now)
	return &dto.NeedResponse{
		ID:             n.ID,
		OrganizationID: n.OrganizationID,
		FamilyID:       n.FamilyID,
		Type:           n.Type,
		Urgency:        n.Urgency,
		Status:         n.Status,
		Details:        n.Details,
		Comment:        n.Comment,
		PriorityScore:  score,
		PriorityLevel:  need.Level(score),
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

// page corta la ventana limit/offset sobre un listado ya ordenado.
func page(items []dto.NeedResponse, limit, offset int) []dto.NeedResponse {
	if offset >= len(items) {
		return []dto.NeedResponse{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
