package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

var _ repository.InterventionRepository = (*InterventionRepo)(nil)

// InterventionRepo implementación del puerto InterventionRepository sobre PostgreSQL.
type InterventionRepo struct {
	q Querier
}

// NewInterventionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInterventionRepository(q Querier) *InterventionRepo {
	return &InterventionRepo{q: q}
}

const interventionColumns = `id, organization_id, family_id, volunteer_id, scheduled_at, kind, status, notes, created_at, updated_at`

// Create persiste una nueva intervención.
func (r *InterventionRepo) Create(intervention *entity.Intervention) error {
	query := `
		INSERT INTO interventions (` + interventionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		intervention.ID, intervention.OrganizationID, intervention.FamilyID, intervention.VolunteerID,
		intervention.ScheduledAt, intervention.Kind, intervention.Status, intervention.Notes,
		intervention.CreatedAt, intervention.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert intervention: %w", err)
	}
	return nil
}

// GetByID obtiene una intervención por ID.
func (r *InterventionRepo) GetByID(id string) (*entity.Intervention, error) {
	query := `SELECT ` + interventionColumns + ` FROM interventions WHERE id = $1`
	var i entity.Intervention
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.OrganizationID, &i.FamilyID, &i.VolunteerID, &i.ScheduledAt,
		&i.Kind, &i.Status, &i.Notes, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get intervention: %w", err)
	}
	return &i, nil
}

// Update actualiza una intervención existente.
func (r *InterventionRepo) Update(intervention *entity.Intervention) error {
	query := `
		UPDATE interventions SET volunteer_id = $2, scheduled_at = $3, kind = $4, status = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		intervention.ID, intervention.VolunteerID, intervention.ScheduledAt,
		intervention.Kind, intervention.Status, intervention.Notes, intervention.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update intervention: %w", err)
	}
	return nil
}

// List lista las intervenciones de la organización; voluntario y estado vacíos no filtran.
func (r *InterventionRepo) List(organizationID, volunteerID, status string, limit, offset int) ([]*entity.Intervention, error) {
	query := `
		SELECT ` + interventionColumns + `
		FROM interventions
		WHERE organization_id = $1
		  AND ($2 = '' OR volunteer_id = $2::uuid)
		  AND ($3 = '' OR status = $3)
		ORDER BY scheduled_at ASC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, organizationID, volunteerID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Intervention
	for rows.Next() {
		var i entity.Intervention
		if err := rows.Scan(&i.ID, &i.OrganizationID, &i.FamilyID, &i.VolunteerID, &i.ScheduledAt,
			&i.Kind, &i.Status, &i.Notes, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan intervention: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Delete elimina una intervención por ID.
func (r *InterventionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM interventions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete intervention: %w", err)
	}
	return nil
}
