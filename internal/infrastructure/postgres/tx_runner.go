package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jpvargas/asistencia-api/internal/application/aid"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

var _ aid.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	aidRepo repository.AidRepository,
	familyRepo repository.FamilyRepository,
	articleRepo repository.ArticleRepository,
	needRepo repository.NeedRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	aidRepo := NewAidRepository(tx)
	familyRepo := NewFamilyRepository(tx)
	articleRepo := NewArticleRepository(tx)
	needRepo := NewNeedRepository(tx)

	if err := fn(aidRepo, familyRepo, articleRepo, needRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
