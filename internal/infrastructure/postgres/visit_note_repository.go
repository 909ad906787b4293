package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

var _ repository.VisitNoteRepository = (*VisitNoteRepo)(nil)

// VisitNoteRepo implementación del puerto VisitNoteRepository sobre PostgreSQL.
type VisitNoteRepo struct {
	q Querier
}

// NewVisitNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVisitNoteRepository(q Querier) *VisitNoteRepo {
	return &VisitNoteRepo{q: q}
}

const visitNoteColumns = `id, organization_id, family_id, author_id, date, content, created_at`

// Create persiste una nueva nota de visita.
func (r *VisitNoteRepo) Create(note *entity.VisitNote) error {
	query := `
		INSERT INTO visit_notes (` + visitNoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.OrganizationID, note.FamilyID, note.AuthorID, note.Date, note.Content, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert visit note: %w", err)
	}
	return nil
}

// GetByID obtiene una nota de visita por ID.
func (r *VisitNoteRepo) GetByID(id string) (*entity.VisitNote, error) {
	query := `SELECT ` + visitNoteColumns + ` FROM visit_notes WHERE id = $1`
	var n entity.VisitNote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&n.ID, &n.OrganizationID, &n.FamilyID, &n.AuthorID, &n.Date, &n.Content, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visit note: %w", err)
	}
	return &n, nil
}

// ListByFamily lista las notas de visita de una familia, más reciente primero.
func (r *VisitNoteRepo) ListByFamily(familyID string, limit, offset int) ([]*entity.VisitNote, error) {
	query := `
		SELECT ` + visitNoteColumns + `
		FROM visit_notes WHERE family_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, familyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list visit notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.VisitNote
	for rows.Next() {
		var n entity.VisitNote
		if err := rows.Scan(&n.ID, &n.OrganizationID, &n.FamilyID, &n.AuthorID,
			&n.Date, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan visit note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// Delete elimina una nota de visita por ID.
func (r *VisitNoteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM visit_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete visit note: %w", err)
	}
	return nil
}
