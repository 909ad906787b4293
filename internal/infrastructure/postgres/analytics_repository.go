package postgres

import (
	"context"
	"fmt"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el tablero.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// DashboardCounters calcula los contadores del tablero en una sola pasada.
func (r *AnalyticsRepo) DashboardCounters(organizationID string) (*repository.DashboardCounters, error) {
	query := `
		SELECT
			(SELECT count(*) FROM families WHERE organization_id = $1),
			(SELECT count(*) FROM needs WHERE organization_id = $1 AND status <> $2 AND urgency = $3),
			(SELECT count(*) FROM needs WHERE organization_id = $1 AND status <> $2 AND urgency = $4),
			(SELECT count(*) FROM needs WHERE organization_id = $1 AND status <> $2 AND urgency = $5),
			(SELECT count(*) FROM aids WHERE organization_id = $1 AND date >= date_trunc('month', now())),
			(SELECT count(*) FROM articles WHERE organization_id = $1 AND stock_quantity <= stock_min)`
	var c repository.DashboardCounters
	err := r.q.QueryRow(context.Background(), query,
		organizationID, entity.NeedStatusCovered,
		entity.UrgencyHigh, entity.UrgencyMedium, entity.UrgencyLow,
	).Scan(
		&c.Families, &c.OpenNeedsHigh, &c.OpenNeedsMedium, &c.OpenNeedsLow,
		&c.AidsThisMonth, &c.ArticlesLow,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counters: %w", err)
	}
	return &c, nil
}
