package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
	"github.com/jpvargas/asistencia-api/pkg/logger"
)

// Recorder registra entradas de auditoría de forma best-effort: un fallo al
// auditar se loguea pero nunca hace fallar la operación de negocio.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record persiste una entrada de auditoría (quién hizo qué sobre qué entidad).
func (r *Recorder) Record(organizationID, userID, entityType, entityID, action, detail string) {
	if r == nil || r.repo == nil {
		return
	}
	entry := &entity.AuditLog{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		UserID:         userID,
		EntityType:     entityType,
		EntityID:       entityID,
		Action:         action,
		Detail:         detail,
		CreatedAt:      time.Now(),
	}
	if err := r.repo.Create(entry); err != nil && r.log != nil {
		r.log.Warn().Err(err).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Str("action", action).
			Msg("no se pudo registrar auditoría")
	}
}

// ListUseCase caso de uso de lectura de auditoría (endpoint de admin).
type ListUseCase struct {
	repo repository.AuditRepository
}

// NewListUseCase construye el caso de uso.
func NewListUseCase(repo repository.AuditRepository) *ListUseCase {
	return &ListUseCase{repo: repo}
}

// List lista la auditoría de una organización con paginación.
func (uc *ListUseCase) List(organizationID string, limit, offset int) (*dto.AuditListResponse, error) {
	logs, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.AuditLogResponse{
			ID:             l.ID,
			OrganizationID: l.OrganizationID,
			UserID:         l.UserID,
			EntityType:     l.EntityType,
			EntityID:       l.EntityID,
			Action:         l.Action,
			Detail:         l.Detail,
			CreatedAt:      l.CreatedAt,
		})
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
