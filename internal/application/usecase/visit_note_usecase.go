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

// VisitNoteUseCase registro de visitas a familias. Crear una nota toca
// LastVisitAt de la familia con la fecha de la visita.
type VisitNoteUseCase struct {
	repo       repository.VisitNoteRepository
	familyRepo repository.FamilyRepository
	auditor    *audit.Recorder
}

// NewVisitNoteUseCase construye el caso de uso.
func NewVisitNoteUseCase(repo repository.VisitNoteRepository, familyRepo repository.FamilyRepository, auditor *audit.Recorder) *VisitNoteUseCase {
	return &VisitNoteUseCase{repo: repo, familyRepo: familyRepo, auditor: auditor}
}

// Create registra una visita y actualiza LastVisitAt de la familia.
func (uc *VisitNoteUseCase) Create(organizationID, authorID string, in dto.CreateVisitNoteRequest) (*dto.VisitNoteResponse, error) {
	family, err := uc.familyRepo.GetByID(in.FamilyID)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	note := &entity.VisitNote{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		FamilyID:       in.FamilyID,
		AuthorID:       authorID,
		Date:           date,
		Content:        in.Content,
		CreatedAt:      now,
	}
	if err := uc.repo.Create(note); err != nil {
		return nil, err
	}
	if err := uc.familyRepo.TouchLastVisit(note.FamilyID, note.Date); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, authorID, "visit_note", note.ID, entity.AuditCreate, "visita registrada")
	return toVisitNoteResponse(note), nil
}

// ListByFamily lista las notas de visita de una familia.
func (uc *VisitNoteUseCase) ListByFamily(organizationID, familyID string, limit, offset int) (*dto.VisitNoteListResponse, error) {
	family, err := uc.familyRepo.GetByID(familyID)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByFamily(familyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VisitNoteResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toVisitNoteResponse(n))
	}
	return &dto.VisitNoteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una nota de visita (admin). No revierte LastVisitAt.
func (uc *VisitNoteUseCase) Delete(organizationID, actorID, id string) error {
	note, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if note == nil || note.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record(organizationID, actorID, "visit_note", id, entity.AuditDelete, "nota de visita eliminada")
	return nil
}

func toVisitNoteResponse(n *entity.VisitNote) *dto.VisitNoteResponse {
	if n == nil {
		return nil
	}
	return &dto.VisitNoteResponse{
		ID:             n.ID,
		OrganizationID: n.OrganizationID,
		FamilyID:       n.FamilyID,
		AuthorID:       n.AuthorID,
		Date:           n.Date,
		Content:        n.Content,
		CreatedAt:      n.CreatedAt,
	}
}
