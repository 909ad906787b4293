package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
// Solo metadatos: el binario vive en el object storage bajo storage_key.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, organization_id, family_id, name, document_type, mime_type, size_bytes, uploaded_by, storage_key, created_at`

// Create persiste los metadatos de un documento.
func (r *DocumentRepo) Create(doc *entity.FamilyDocument) error {
	query := `
		INSERT INTO family_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.OrganizationID, doc.FamilyID, doc.Name, doc.DocumentType,
		doc.MimeType, doc.SizeBytes, doc.UploadedBy, doc.StorageKey, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene los metadatos de un documento por ID.
func (r *DocumentRepo) GetByID(id string) (*entity.FamilyDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM family_documents WHERE id = $1`
	var d entity.FamilyDocument
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.OrganizationID, &d.FamilyID, &d.Name, &d.DocumentType,
		&d.MimeType, &d.SizeBytes, &d.UploadedBy, &d.StorageKey, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// ListByFamily lista los documentos de una familia, más reciente primero.
func (r *DocumentRepo) ListByFamily(familyID string) ([]*entity.FamilyDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM family_documents WHERE family_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, familyID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.FamilyDocument
	for rows.Next() {
		var d entity.FamilyDocument
		if err := rows.Scan(&d.ID, &d.OrganizationID, &d.FamilyID, &d.Name, &d.DocumentType,
			&d.MimeType, &d.SizeBytes, &d.UploadedBy, &d.StorageKey, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina los metadatos de un documento por ID.
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM family_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
