package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL.
// Dentro de la transacción de ayudas el descuento de stock usa GetForUpdate.
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

const articleColumns = `id, organization_id, category_id, name, description, unit, stock_quantity, stock_min, created_at, updated_at`

// Create persiste un nuevo artículo.
func (r *ArticleRepo) Create(article *entity.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		article.ID, article.OrganizationID, article.CategoryID, article.Name, article.Description,
		article.Unit, article.StockQuantity, article.StockMin, article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(id string) (*entity.Article, error) {
	return r.getOne(`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
func (r *ArticleRepo) GetForUpdate(id string) (*entity.Article, error) {
	return r.getOne(`SELECT `+articleColumns+` FROM articles WHERE id = $1 FOR UPDATE`, id)
}

func (r *ArticleRepo) getOne(query string, args ...any) (*entity.Article, error) {
	var a entity.Article
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&a.ID, &a.OrganizationID, &a.CategoryID, &a.Name, &a.Description,
		&a.Unit, &a.StockQuantity, &a.StockMin, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}

// Update actualiza un artículo existente (sin tocar el stock).
func (r *ArticleRepo) Update(article *entity.Article) error {
	query := `
		UPDATE articles SET name = $2, description = $3, unit = $4, stock_min = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		article.ID, article.Name, article.Description, article.Unit, article.StockMin, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// UpdateStock fija la cantidad en stock (el llamador ya aplicó el recorte en 0).
func (r *ArticleRepo) UpdateStock(id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE articles SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update article stock: %w", err)
	}
	return nil
}

// ListByOrganization lista los artículos de una organización con paginación.
func (r *ArticleRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles WHERE organization_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

// ListBelowMin lista los artículos con stock en o por debajo del umbral de reposición.
func (r *ArticleRepo) ListBelowMin(organizationID string) ([]*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles WHERE organization_id = $1 AND stock_quantity <= stock_min
		ORDER BY stock_quantity ASC`
	rows, err := r.q.Query(context.Background(), query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list articles below min: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

func scanArticles(rows pgx.Rows) ([]*entity.Article, error) {
	var list []*entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.OrganizationID, &a.CategoryID, &a.Name, &a.Description,
			&a.Unit, &a.StockQuantity, &a.StockMin, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina un artículo por ID.
func (r *ArticleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
