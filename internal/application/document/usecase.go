package document

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jpvargas/asistencia-api/internal/application/audit"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
	"github.com/jpvargas/asistencia-api/pkg/logger"
)

// UseCase pipeline de documentos de familia: validación, antivirus, subida al
// object storage y metadatos en BD. La descarga es siempre por URL firmada de
// corta vida generada en cada petición.
type UseCase struct {
	repo       repository.DocumentRepository
	familyRepo repository.FamilyRepository
	store      ObjectStore
	scanner    Scanner // nil = antivirus deshabilitado
	failClosed bool    // si el antivirus no responde: true rechaza, false acepta
	urlExpiry  time.Duration
	auditor    *audit.Recorder
	log        *logger.Logger
}

// NewUseCase construye el caso de uso. scanner puede ser nil (antivirus
// deshabilitado); failClosed decide qué pasa cuando el análisis no pudo hacerse.
func NewUseCase(
	repo repository.DocumentRepository,
	familyRepo repository.FamilyRepository,
	store ObjectStore,
	scanner Scanner,
	failClosed bool,
	urlExpiry time.Duration,
	auditor *audit.Recorder,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		repo:       repo,
		familyRepo: familyRepo,
		store:      store,
		scanner:    scanner,
		failClosed: failClosed,
		urlExpiry:  urlExpiry,
		auditor:    auditor,
		log:        log,
	}
}

// Upload valida, escanea y sube un documento de la familia. El orden importa:
// nada llega al storage sin pasar validación y antivirus.
func (uc *UseCase) Upload(ctx context.Context, organizationID, actorID, familyID string, in dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	family, err := uc.familyRepo.GetByID(familyID)
	if err != nil {
		return nil, err
	}
	if family == nil || family.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}

	data, err := DecodeFileData(in.FileData)
	if err != nil {
		return nil, err
	}
	if err := ValidateContent(in.MimeType, data); err != nil {
		return nil, err
	}
	if err := uc.scan(ctx, data); err != nil {
		return nil, err
	}

	docID := uuid.New().String()
	key := fmt.Sprintf("organizations/%s/families/%s/documents/%s", organizationID, familyID, docID)
	if err := uc.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), in.MimeType); err != nil {
		return nil, err
	}

	doc := &entity.FamilyDocument{
		ID:             docID,
		OrganizationID: organizationID,
		FamilyID:       familyID,
		Name:           in.Name,
		DocumentType:   in.DocumentType,
		MimeType:       in.MimeType,
		SizeBytes:      int64(len(data)),
		UploadedBy:     actorID,
		StorageKey:     key,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.Create(doc); err != nil {
		// El objeto ya subió pero los metadatos no: limpiar el huérfano best-effort.
		if delErr := uc.store.Delete(ctx, key); delErr != nil && uc.log != nil {
			uc.log.Warn().Err(delErr).Str("key", key).Msg("no se pudo limpiar el objeto huérfano")
		}
		return nil, err
	}

	uc.auditor.Record(organizationID, actorID, "document", doc.ID, entity.AuditCreate, "documento subido")
	// La respuesta de subida incluye URL firmada fresca: el cliente puede
	// descargar de inmediato sin una segunda petición.
	return uc.toResponse(ctx, doc, true), nil
}

// GetByID devuelve los metadatos de un documento con su URL firmada de descarga.
func (uc *UseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.OrganizationID != organizationID {
		return nil, nil
	}
	return uc.toResponse(ctx, doc, true), nil
}

// ListByFamily lista los documentos de una familia, cada uno con URL firmada.
func (uc *UseCase) ListByFamily(ctx context.Context, organizationID, familyID string) (*dto.DocumentListResponse, error) {
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
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *uc.toResponse(ctx, d, true))
	}
	return &dto.DocumentListResponse{Items: items}, nil
}

// Delete elimina los metadatos y el objeto del storage. Si el objeto no puede
// borrarse se loguea y la eliminación sigue: los metadatos son la fuente de verdad.
func (uc *UseCase) Delete(ctx context.Context, organizationID, actorID, id string) error {
	doc, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if doc == nil || doc.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	if err := uc.store.Delete(ctx, doc.StorageKey); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).Str("key", doc.StorageKey).Msg("no se pudo borrar el objeto del storage")
	}
	uc.auditor.Record(organizationID, actorID, "document", id, entity.AuditDelete, "documento eliminado")
	return nil
}

// scan pasa el contenido por el antivirus. Con scanner nil no hay análisis.
// Si el análisis no pudo hacerse, failClosed decide: rechazar o aceptar con warning.
func (uc *UseCase) scan(ctx context.Context, data []byte) error {
	if uc.scanner == nil {
		return nil
	}
	result, err := uc.scanner.Scan(ctx, data)
	if err != nil {
		if uc.failClosed {
			return fmt.Errorf("%w: el análisis antivirus no está disponible", domain.ErrDocumentRejected)
		}
		if uc.log != nil {
			uc.log.Warn().Err(err).Msg("antivirus no disponible, se acepta el archivo sin analizar")
		}
		return nil
	}
	if result.Infected {
		return fmt.Errorf("%w: contenido infectado (%s)", domain.ErrDocumentRejected, result.Signature)
	}
	return nil
}

func (uc *UseCase) toResponse(ctx context.Context, d *entity.FamilyDocument, withURL bool) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:             d.ID,
		OrganizationID: d.OrganizationID,
		FamilyID:       d.FamilyID,
		Name:           d.Name,
		DocumentType:   d.DocumentType,
		MimeType:       d.MimeType,
		SizeBytes:      d.SizeBytes,
		UploadedBy:     d.UploadedBy,
		CreatedAt:      d.CreatedAt,
	}
	if withURL {
		url, err := uc.store.PresignGet(ctx, d.StorageKey, uc.urlExpiry)
		if err != nil {
			if uc.log != nil {
				uc.log.Warn().Err(err).Str("key", d.StorageKey).Msg("no se pudo firmar la URL de descarga")
			}
		} else {
			resp.DownloadURL = url
		}
	}
	return resp
}
