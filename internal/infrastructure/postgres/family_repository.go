package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
	"github.com/jpvargas/asistencia-api/pkg/normalize"
)

var _ repository.FamilyRepository = (*FamilyRepo)(nil)

// FamilyRepo implementación del puerto FamilyRepository sobre PostgreSQL.
// La columna name_search guarda el nombre normalizado (sin tildes, minúsculas)
// para la búsqueda insensible a acentos; se recalcula en cada escritura.
type FamilyRepo struct {
	q Querier
}

// NewFamilyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFamilyRepository(q Querier) *FamilyRepo {
	return &FamilyRepo{q: q}
}

const familyColumns = `id, organization_id, name, address, phone, email, notes, members_count, last_visit_at, created_at, updated_at`

// Create persiste una nueva familia.
func (r *FamilyRepo) Create(family *entity.Family) error {
	query := `
		INSERT INTO families (` + familyColumns + `, name_search)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		family.ID, family.OrganizationID, family.Name, family.Address, family.Phone,
		family.Email, family.Notes, family.MembersCount, family.LastVisitAt,
		family.CreatedAt, family.UpdatedAt, normalize.Search(family.Name),
	)
	if err != nil {
		return fmt.Errorf("insert family: %w", err)
	}
	return nil
}

// GetByID obtiene una familia por ID.
func (r *FamilyRepo) GetByID(id string) (*entity.Family, error) {
	query := `SELECT ` + familyColumns + ` FROM families WHERE id = $1`
	var f entity.Family
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.OrganizationID, &f.Name, &f.Address, &f.Phone, &f.Email,
		&f.Notes, &f.MembersCount, &f.LastVisitAt, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get family: %w", err)
	}
	return &f, nil
}

// Update actualiza una familia existente (sin tocar last_visit_at).
func (r *FamilyRepo) Update(family *entity.Family) error {
	query := `
		UPDATE families SET name = $2, address = $3, phone = $4, email = $5, notes = $6,
			members_count = $7, updated_at = $8, name_search = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		family.ID, family.Name, family.Address, family.Phone, family.Email,
		family.Notes, family.MembersCount, family.UpdatedAt, normalize.Search(family.Name),
	)
	if err != nil {
		return fmt.Errorf("update family: %w", err)
	}
	return nil
}

// TouchLastVisit fija last_visit_at; solo avanza, nunca retrocede (GREATEST).
func (r *FamilyRepo) TouchLastVisit(id string, visitedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE families SET last_visit_at = GREATEST(COALESCE(last_visit_at, $2), $2), updated_at = now() WHERE id = $1`,
		id, visitedAt,
	)
	if err != nil {
		return fmt.Errorf("touch family last visit: %w", err)
	}
	return nil
}

// ListByOrganization lista las familias de una organización con paginación.
func (r *FamilyRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Family, error) {
	query := `
		SELECT ` + familyColumns + `
		FROM families WHERE organization_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	defer rows.Close()
	return scanFamilies(rows)
}

// Search filtra por nombre normalizado (el llamador ya pasó la query por normalize.Search).
func (r *FamilyRepo) Search(organizationID, normalizedQuery string, limit, offset int) ([]*entity.Family, error) {
	query := `
		SELECT ` + familyColumns + `
		FROM families
		WHERE organization_id = $1 AND name_search LIKE '%' || $2 || '%'
		ORDER BY name ASC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, organizationID, normalizedQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search families: %w", err)
	}
	defer rows.Close()
	return scanFamilies(rows)
}

func scanFamilies(rows pgx.Rows) ([]*entity.Family, error) {
	var list []*entity.Family
	for rows.Next() {
		var f entity.Family
		if err := rows.Scan(&f.ID, &f.OrganizationID, &f.Name, &f.Address, &f.Phone, &f.Email,
			&f.Notes, &f.MembersCount, &f.LastVisitAt, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan family: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Delete elimina una familia por ID (las FK en cascada limpian menores,
// necesidades, notas y documentos).
func (r *FamilyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM families WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete family: %w", err)
	}
	return nil
}

// ── Menores ───────────────────────────────────────────────────────────────────

const childColumns = `id, family_id, first_name, birth_date, school_level, notes, created_at, updated_at`

// CreateChild persiste un menor de la familia.
func (r *FamilyRepo) CreateChild(child *entity.Child) error {
	query := `
		INSERT INTO children (` + childColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		child.ID, child.FamilyID, child.FirstName, child.BirthDate,
		child.SchoolLevel, child.Notes, child.CreatedAt, child.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert child: %w", err)
	}
	return nil
}

// GetChildByID obtiene un menor por ID.
func (r *FamilyRepo) GetChildByID(id string) (*entity.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE id = $1`
	var c entity.Child
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.FamilyID, &c.FirstName, &c.BirthDate, &c.SchoolLevel, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get child: %w", err)
	}
	return &c, nil
}

// ListChildren lista los menores de una familia.
func (r *FamilyRepo) ListChildren(familyID string) ([]*entity.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE family_id = $1 ORDER BY first_name ASC`
	rows, err := r.q.Query(context.Background(), query, familyID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()
	var list []*entity.Child
	for rows.Next() {
		var c entity.Child
		if err := rows.Scan(&c.ID, &c.FamilyID, &c.FirstName, &c.BirthDate,
			&c.SchoolLevel, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateChild actualiza un menor existente.
func (r *FamilyRepo) UpdateChild(child *entity.Child) error {
	query := `
		UPDATE children SET first_name = $2, birth_date = $3, school_level = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		child.ID, child.FirstName, child.BirthDate, child.SchoolLevel, child.Notes, child.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update child: %w", err)
	}
	return nil
}

// DeleteChild elimina un menor por ID.
func (r *FamilyRepo) DeleteChild(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM children WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete child: %w", err)
	}
	return nil
}
