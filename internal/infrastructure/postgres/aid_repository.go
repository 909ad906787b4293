package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

var _ repository.AidRepository = (*AidRepo)(nil)

// AidRepo implementación del puerto AidRepository sobre PostgreSQL.
// Las ayudas son eventos inmutables: no hay Update.
type AidRepo struct {
	q Querier
}

// NewAidRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAidRepository(q Querier) *AidRepo {
	return &AidRepo{q: q}
}

const aidColumns = `id, organization_id, family_id, type, article_id, quantity, date, volunteer_id, source, notes, proof_url, created_at`

// Create persiste una nueva ayuda.
func (r *AidRepo) Create(aid *entity.Aid) error {
	query := `
		INSERT INTO aids (` + aidColumns + `)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		aid.ID, aid.OrganizationID, aid.FamilyID, aid.Type, aid.ArticleID, aid.Quantity,
		aid.Date, aid.VolunteerID, aid.Source, aid.Notes, aid.ProofURL, aid.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert aid: %w", err)
	}
	return nil
}

// GetByID obtiene una ayuda por ID.
func (r *AidRepo) GetByID(id string) (*entity.Aid, error) {
	query := aidSelect + ` WHERE id = $1`
	var a entity.Aid
	err := r.q.QueryRow(context.Background(), query, id).Scan(scanAidTargets(&a)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get aid: %w", err)
	}
	return &a, nil
}

// FindRecentDuplicate busca una ayuda idéntica insertada desde since (guard de
// idempotencia contra el doble submit del mismo formulario). Con matchDate en
// false la fecha se ignora: corresponde a un payload sin date, donde cada
// intento defaultea a su propio time.Now().
func (r *AidRepo) FindRecentDuplicate(aid *entity.Aid, matchDate bool, since time.Time) (*entity.Aid, error) {
	query := aidSelect + `
		WHERE family_id = $1 AND type = $2 AND COALESCE(article_id::text, '') = $3
		  AND quantity = $4 AND (NOT $5 OR date = $6) AND volunteer_id = $7 AND source = $8
		  AND notes = $9 AND created_at > $10
		ORDER BY created_at DESC
		LIMIT 1`
	var a entity.Aid
	err := r.q.QueryRow(context.Background(), query,
		aid.FamilyID, aid.Type, aid.ArticleID, aid.Quantity, matchDate, aid.Date,
		aid.VolunteerID, aid.Source, aid.Notes, since,
	).Scan(scanAidTargets(&a)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find duplicate aid: %w", err)
	}
	return &a, nil
}

const aidSelect = `
	SELECT id, organization_id, family_id, type, COALESCE(article_id::text, ''), quantity,
	       date, volunteer_id, source, notes, proof_url, created_at
	FROM aids`

func scanAidTargets(a *entity.Aid) []any {
	return []any{
		&a.ID, &a.OrganizationID, &a.FamilyID, &a.Type, &a.ArticleID, &a.Quantity,
		&a.Date, &a.VolunteerID, &a.Source, &a.Notes, &a.ProofURL, &a.CreatedAt,
	}
}

// ListByOrganization lista las ayudas de una organización, más reciente primero.
func (r *AidRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Aid, error) {
	query := aidSelect + ` WHERE organization_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list aids: %w", err)
	}
	defer rows.Close()
	return scanAids(rows)
}

// ListByFamily lista las ayudas recibidas por una familia, más reciente primero.
func (r *AidRepo) ListByFamily(familyID string, limit, offset int) ([]*entity.Aid, error) {
	query := aidSelect + ` WHERE family_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, familyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list aids by family: %w", err)
	}
	defer rows.Close()
	return scanAids(rows)
}

// ListByPeriod lista las ayudas del período [from, to] para el informe de exportación.
func (r *AidRepo) ListByPeriod(organizationID string, from, to time.Time) ([]*entity.Aid, error) {
	query := aidSelect + ` WHERE organization_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC`
	rows, err := r.q.Query(context.Background(), query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list aids by period: %w", err)
	}
	defer rows.Close()
	return scanAids(rows)
}

func scanAids(rows pgx.Rows) ([]*entity.Aid, error) {
	var list []*entity.Aid
	for rows.Next() {
		var a entity.Aid
		if err := rows.Scan(scanAidTargets(&a)...); err != nil {
			return nil, fmt.Errorf("scan aid: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina una ayuda por ID (solo admin; no revierte stock ni necesidades).
func (r *AidRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM aids WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete aid: %w", err)
	}
	return nil
}
