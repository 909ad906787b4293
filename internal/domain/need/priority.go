// Package need implementa el score de prioridad de necesidades (servicio de dominio).
//
// El score ordena las necesidades abiertas para que los operadores vean primero
// lo más urgente. Es una función pura y determinista de cuatro entradas:
//
//	score = base(urgencia) + envejecimiento(createdAt) + abandono(lastVisitAt)
//	status = partial  -> score * 0.5 (descuento por cobertura parcial)
//	status = covered  -> CoveredScore (centinela; siempre ordena al final)
//
// El término de envejecimiento crece con los días desde createdAt y satura a los
// 60 días (una necesidad muy vieja no crece sin límite). El término de abandono
// sube el score de familias nunca visitadas o sin visita reciente.
package need

import (
	"time"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
)

// Pesos base por urgencia.
const (
	baseHigh   = 100.0
	baseMedium = 60.0
	baseLow    = 30.0
)

// Parámetros de envejecimiento y abandono.
const (
	agingPerDay     = 1.5
	agingCapDays    = 60.0
	neglectPerDay   = 0.5
	neglectCapDays  = 60.0
	neverVisited    = 25.0
	partialDiscount = 0.5
)

// CoveredScore es el score centinela de una necesidad cubierta: ordena después
// de cualquier necesidad abierta, sin importar urgencia ni antigüedad.
const CoveredScore = -1.0

// Umbrales de nivel derivado.
const (
	thresholdCritical = 150.0
	thresholdHigh     = 100.0
	thresholdMedium   = 50.0
)

// Niveles derivados del score.
const (
	LevelLow      = "low"
	LevelMedium   = "medium"
	LevelHigh     = "high"
	LevelCritical = "critical"
)

// ScoreInput son las cuatro entradas del cálculo.
type ScoreInput struct {
	Urgency     string // low, medium, high
	Status      string // pending, partial, covered
	CreatedAt   time.Time
	LastVisitAt *time.Time // de la familia; nil = nunca visitada
}

// Score calcula el score de prioridad evaluado en el instante now.
func Score(in ScoreInput, now time.Time) float64 {
	if in.Status == entity.NeedStatusCovered {
		return CoveredScore
	}

	score := baseWeight(in.Urgency)
	score += agingPerDay * capDays(daysSince(in.CreatedAt, now), agingCapDays)

	if in.LastVisitAt == nil {
		score += neverVisited
	} else {
		score += neglectPerDay * capDays(daysSince(*in.LastVisitAt, now), neglectCapDays)
	}

	if in.Status == entity.NeedStatusPartial {
		score *= partialDiscount
	}
	return score
}

// Level deriva el nivel de prioridad desde el score.
func Level(score float64) string {
	switch {
	case score >= thresholdCritical:
		return LevelCritical
	case score >= thresholdHigh:
		return LevelHigh
	case score >= thresholdMedium:
		return LevelMedium
	default:
		return LevelLow
	}
}

// UrgencyRank rango numérico de la urgencia para desempates (high > medium > low).
func UrgencyRank(urgency string) int {
	switch urgency {
	case entity.UrgencyHigh:
		return 3
	case entity.UrgencyMedium:
		return 2
	case entity.UrgencyLow:
		return 1
	}
	return 0
}

// Ranked es un elemento comparable del listado priorizado.
type Ranked struct {
	ID        string
	Urgency   string
	CreatedAt time.Time
	Score     float64
}

// Less define el orden total del listado: score descendente, luego urgencia
// descendente, luego createdAt ascendente (más vieja primero) y por último ID.
// Dos entradas distintas nunca quedan "empatadas" para el sort consumidor.
func Less(a, b Ranked) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	ra, rb := UrgencyRank(a.Urgency), UrgencyRank(b.Urgency)
	if ra != rb {
		return ra > rb
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func baseWeight(urgency string) float64 {
	switch urgency {
	case entity.UrgencyHigh:
		return baseHigh
	case entity.UrgencyMedium:
		return baseMedium
	default:
		return baseLow
	}
}

// daysSince días (fraccionales) transcurridos desde t hasta now; nunca negativo.
func daysSince(t, now time.Time) float64 {
	d := now.Sub(t).Hours() / 24
	if d < 0 {
		return 0
	}
	return d
}

func capDays(days, maxDays float64) float64 {
	if days > maxDays {
		return maxDays
	}
	return days
}
