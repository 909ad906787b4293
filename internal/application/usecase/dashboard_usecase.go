package usecase

import (
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// DashboardUseCase contadores agregados para el tablero de operación.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Get devuelve los contadores del tablero para la organización.
func (uc *DashboardUseCase) Get(organizationID string) (*dto.DashboardResponse, error) {
	counters, err := uc.repo.DashboardCounters(organizationID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Families:        counters.Families,
		OpenNeedsHigh:   counters.OpenNeedsHigh,
		OpenNeedsMedium: counters.OpenNeedsMedium,
		OpenNeedsLow:    counters.OpenNeedsLow,
		AidsThisMonth:   counters.AidsThisMonth,
		ArticlesLow:     counters.ArticlesLow,
	}, nil
}
