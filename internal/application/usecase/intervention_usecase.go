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

// InterventionUseCase agenda de intervenciones planificadas (visitas, entregas,
// valoraciones). Marcar una intervención como done no toca LastVisitAt: eso lo
// hace la nota de visita o la ayuda registrada.
type InterventionUseCase struct {
	repo       repository.InterventionRepository
	familyRepo repository.FamilyRepository
	userRepo   repository.UserRepository
	auditor    *audit.Recorder
}

// NewInterventionUseCase construye el caso de uso.
func NewInterventionUseCase(
	repo repository.InterventionRepository,
	familyRepo repository.FamilyRepository,
	userRepo repository.UserRepository,
	auditor *audit.Recorder,
) *InterventionUseCase {
	return &InterventionUseCase{repo: repo, familyRepo: familyRepo, userRepo: userRepo, auditor: auditor}
}

// Create planifica una intervención en estado planned.
func (uc *InterventionUseCase) Create(organizationID, actorID string, in dto.CreateInterventionRequest) (*dto.InterventionResponse, error) {
	family, err := uc.familyRepo.GetByID(in.FamilyID)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	volunteer, err := uc.userRepo.GetByID(in.VolunteerID)
	if err != nil {
		return nil, err
	}
	if volunteer == nil || volunteer.OrganizationID != organizationID {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	intervention := &entity.Intervention{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		FamilyID:       in.FamilyID,
		VolunteerID:    in.VolunteerID,
		ScheduledAt:    in.ScheduledAt,
		Kind:           in.Kind,
		Status:         entity.InterventionPlanned,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(intervention); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "intervention", intervention.ID, entity.AuditCreate, "intervención planificada")
	return toInterventionResponse(intervention), nil
}

// GetByID obtiene una intervención por ID, acotada a la organización.
func (uc *InterventionUseCase) GetByID(organizationID, id string) (*dto.InterventionResponse, error) {
	intervention, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if intervention == nil || intervention.OrganizationID != organizationID {
		return nil, nil
	}
	return toInterventionResponse(intervention), nil
}

// Update actualiza una intervención (solo campos presentes). Una intervención
// done o cancelled no vuelve a planned.
func (uc *InterventionUseCase) Update(organizationID, actorID, id string, in dto.UpdateInterventionRequest) (*dto.InterventionResponse, error) {
	intervention, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if intervention == nil || intervention.OrganizationID != organizationID {
		return nil, nil
	}
	if in.Status != nil {
		if intervention.Status != entity.InterventionPlanned && *in.Status == entity.InterventionPlanned {
			return nil, domain.ErrConflict
		}
		intervention.Status = *in.Status
	}
	if in.VolunteerID != nil {
		volunteer, err := uc.userRepo.GetByID(*in.VolunteerID)
		if err != nil {
			return nil, err
		}
		if volunteer == nil || volunteer.OrganizationID != organizationID {
			return nil, domain.ErrInvalidInput
		}
		intervention.VolunteerID = *in.VolunteerID
	}
	if in.ScheduledAt != nil {
		intervention.ScheduledAt = *in.ScheduledAt
	}
	if in.Kind != nil {
		intervention.Kind = *in.Kind
	}
	if in.Notes != nil {
		intervention.Notes = *in.Notes
	}
	intervention.UpdatedAt = time.Now()
	if err := uc.repo.Update(intervention); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "intervention", intervention.ID, entity.AuditUpdate, "intervención actualizada")
	return toInterventionResponse(intervention), nil
}

// List lista las intervenciones de la organización, con filtros opcionales por
// voluntario y estado (cadenas vacías no filtran).
func (uc *InterventionUseCase) List(organizationID, volunteerID, status string, limit, offset int) (*dto.InterventionListResponse, error) {
	list, err := uc.repo.List(organizationID, volunteerID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InterventionResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toInterventionResponse(i))
	}
	return &dto.InterventionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una intervención de la organización.
func (uc *InterventionUseCase) Delete(organizationID, actorID, id string) error {
	intervention, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if intervention == nil || intervention.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record(organizationID, actorID, "intervention", id, entity.AuditDelete, "intervención eliminada")
	return nil
}

func toInterventionResponse(i *entity.Intervention) *dto.InterventionResponse {
	if i == nil {
		return nil
	}
	return &dto.InterventionResponse{
		ID:             i.ID,
		OrganizationID: i.OrganizationID,
		FamilyID:       i.FamilyID,
		VolunteerID:    i.VolunteerID,
		ScheduledAt:    i.ScheduledAt,
		Kind:           i.Kind,
		Status:         i.Status,
		Notes:          i.Notes,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
