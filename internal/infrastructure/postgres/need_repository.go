package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

var _ repository.NeedRepository = (*NeedRepo)(nil)

// NeedRepo implementación del puerto NeedRepository sobre PostgreSQL.
// Los listados *WithFamily traen el last_visit_at de la familia en un join:
// es insumo del score de prioridad, que se calcula en memoria.
type NeedRepo struct {
	q Querier
}

// NewNeedRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNeedRepository(q Querier) *NeedRepo {
	return &NeedRepo{q: q}
}

const needColumns = `id, organization_id, family_id, type, urgency, status, details, comment, created_at, updated_at`

// Create persiste una nueva necesidad.
func (r *NeedRepo) Create(need *entity.Need) error {
	query := `
		INSERT INTO needs (` + needColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		need.ID, need.OrganizationID, need.FamilyID, need.Type, need.Urgency,
		need.Status, need.Details, need.Comment, need.CreatedAt, need.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert need: %w", err)
	}
	return nil
}

// GetByID obtiene una necesidad por ID.
func (r *NeedRepo) GetByID(id string) (*entity.Need, error) {
	query := `SELECT ` + needColumns + ` FROM needs WHERE id = $1`
	var n entity.Need
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&n.ID, &n.OrganizationID, &n.FamilyID, &n.Type, &n.Urgency,
		&n.Status, &n.Details, &n.Comment, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get need: %w", err)
	}
	return &n, nil
}

// Update actualiza una necesidad existente.
func (r *NeedRepo) Update(need *entity.Need) error {
	query := `
		UPDATE needs SET urgency = $2, status = $3, details = $4, comment = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		need.ID, need.Urgency, need.Status, need.Details, need.Comment, need.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update need: %w", err)
	}
	return nil
}

// UpdateStatus fija solo el estado (avance por conciliación de ayudas).
func (r *NeedRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE needs SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update need status: %w", err)
	}
	return nil
}

const needWithFamilyQuery = `
	SELECT n.id, n.organization_id, n.family_id, n.type, n.urgency, n.status,
	       n.details, n.comment, n.created_at, n.updated_at, f.last_visit_at
	FROM needs n
	JOIN families f ON f.id = n.family_id`

// ListByOrganization lista las necesidades de la organización con el
// last_visit_at de la familia. limit <= 0 trae todo (los listados priorizados
// ordenan por score en memoria y paginan después).
func (r *NeedRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.NeedWithFamily, error) {
	query := needWithFamilyQuery + ` WHERE n.organization_id = $1 ORDER BY n.created_at ASC`
	args := []any{organizationID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list needs: %w", err)
	}
	defer rows.Close()
	return scanNeedsWithFamily(rows)
}

// ListByFamily lista las necesidades de una familia con su last_visit_at.
func (r *NeedRepo) ListByFamily(familyID string) ([]*entity.NeedWithFamily, error) {
	query := needWithFamilyQuery + ` WHERE n.family_id = $1 ORDER BY n.created_at ASC`
	rows, err := r.q.Query(context.Background(), query, familyID)
	if err != nil {
		return nil, fmt.Errorf("list needs by family: %w", err)
	}
	defer rows.Close()
	return scanNeedsWithFamily(rows)
}

func scanNeedsWithFamily(rows pgx.Rows) ([]*entity.NeedWithFamily, error) {
	var list []*entity.NeedWithFamily
	for rows.Next() {
		var n entity.NeedWithFamily
		if err := rows.Scan(&n.ID, &n.OrganizationID, &n.FamilyID, &n.Type, &n.Urgency, &n.Status,
			&n.Details, &n.Comment, &n.CreatedAt, &n.UpdatedAt, &n.FamilyLastVisitAt); err != nil {
			return nil, fmt.Errorf("scan need: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// ListOpenByFamilyAndType devuelve las necesidades abiertas (status != covered)
// de la familia para esa categoría, bloqueadas FOR UPDATE dentro de la tx de ayudas.
func (r *NeedRepo) ListOpenByFamilyAndType(familyID, categoryType string) ([]*entity.Need, error) {
	query := `
		SELECT ` + needColumns + `
		FROM needs
		WHERE family_id = $1 AND type = $2 AND status <> $3
		ORDER BY created_at ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, familyID, categoryType, entity.NeedStatusCovered)
	if err != nil {
		return nil, fmt.Errorf("list open needs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Need
	for rows.Next() {
		var n entity.Need
		if err := rows.Scan(&n.ID, &n.OrganizationID, &n.FamilyID, &n.Type, &n.Urgency,
			&n.Status, &n.Details, &n.Comment, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan need: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// Delete elimina una necesidad por ID.
func (r *NeedRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM needs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete need: %w", err)
	}
	return nil
}
