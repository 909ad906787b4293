package aid

import (
	"github.com/jpvargas/asistencia-api/internal/application/audit"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// QueryUseCase lecturas y borrado admin de ayudas. Las ayudas son inmutables:
// no existe Update.
type QueryUseCase struct {
	repo    repository.AidRepository
	auditor *audit.Recorder
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(repo repository.AidRepository, auditor *audit.Recorder) *QueryUseCase {
	return &QueryUseCase{repo: repo, auditor: auditor}
}

// GetByID obtiene una ayuda por ID, verificando la organización.
func (uc *QueryUseCase) GetByID(organizationID, id string) (*dto.AidResponse, error) {
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.OrganizationID != organizationID {
		return nil, nil
	}
	return toAidResponse(a), nil
}

// List lista ayudas de la organización; si familyID no es vacío, filtra por familia.
func (uc *QueryUseCase) List(organizationID, familyID string, limit, offset int) (*dto.AidListResponse, error) {
	var (
		aids []*entity.Aid
		err  error
	)
	if familyID != "" {
		aids, err = uc.repo.ListByFamily(familyID, limit, offset)
	} else {
		aids, err = uc.repo.ListByOrganization(organizationID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.AidResponse, 0, len(aids))
	for _, a := range aids {
		if a.OrganizationID != organizationID {
			continue
		}
		items = append(items, *toAidResponse(a))
	}
	return &dto.AidListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una ayuda (solo admin; el gate de rol está en el router).
// No revierte stock ni estados de necesidades: el evento desaparece, sus
// efectos históricos se corrigen a mano si hace falta.
func (uc *QueryUseCase) Delete(organizationID, actorID, id string) error {
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if a == nil || a.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record(organizationID, actorID, "aid", id, entity.AuditDelete, "ayuda eliminada")
	return nil
}
