package need_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/need"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del score de prioridad de necesidades.
//
// Propiedades que protegen estos tests:
//   - urgencia alta > urgencia baja, a igualdad de las demás entradas
//   - covered siempre ordena al final, sin importar urgencia ni antigüedad
//   - envejecimiento monótono y saturado (sin crecimiento sin límite)
//   - familia nunca visitada puntúa más que familia visitada ayer
//   - partial descuenta respecto a pending
//   - orden total: el comparador nunca deja dos entradas distintas "iguales"
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func baseInput() need.ScoreInput {
	return need.ScoreInput{
		Urgency:     entity.UrgencyMedium,
		Status:      entity.NeedStatusPending,
		CreatedAt:   testNow.Add(-10 * 24 * time.Hour),
		LastVisitAt: nil,
	}
}

func TestScore_UrgenciaAltaSuperaBaja(t *testing.T) {
	high := baseInput()
	high.Urgency = entity.UrgencyHigh
	low := baseInput()
	low.Urgency = entity.UrgencyLow

	assert.Greater(t, need.Score(high, testNow), need.Score(low, testNow),
		"a igualdad de edad y visita, high debe puntuar más que low")
}

func TestScore_Determinista(t *testing.T) {
	in := baseInput()
	s1 := need.Score(in, testNow)
	s2 := need.Score(in, testNow)
	assert.Equal(t, s1, s2, "mismas entradas, mismo score")
}

func TestScore_CoveredSiempreAlFinal(t *testing.T) {
	covered := baseInput()
	covered.Urgency = entity.UrgencyHigh
	covered.Status = entity.NeedStatusCovered
	covered.CreatedAt = testNow.Add(-365 * 24 * time.Hour) // muy vieja

	pending := baseInput()
	pending.Urgency = entity.UrgencyLow
	pending.CreatedAt = testNow // recién creada

	assert.Equal(t, need.CoveredScore, need.Score(covered, testNow))
	assert.Less(t, need.Score(covered, testNow), need.Score(pending, testNow),
		"una covered vieja y urgente debe ordenar después de cualquier abierta")
}

func TestScore_EnvejecimientoMonotono(t *testing.T) {
	newer := baseInput()
	newer.CreatedAt = testNow.Add(-5 * 24 * time.Hour)
	older := baseInput()
	older.CreatedAt = testNow.Add(-30 * 24 * time.Hour)

	assert.GreaterOrEqual(t, need.Score(older, testNow), need.Score(newer, testNow),
		"una necesidad más vieja nunca puntúa menos que una más nueva")
}

func TestScore_EnvejecimientoSatura(t *testing.T) {
	old := baseInput()
	old.CreatedAt = testNow.Add(-90 * 24 * time.Hour)
	veryOld := baseInput()
	veryOld.CreatedAt = testNow.Add(-900 * 24 * time.Hour)

	assert.Equal(t, need.Score(old, testNow), need.Score(veryOld, testNow),
		"pasado el tope de días, envejecer más no suma")
}

func TestScore_FamiliaNuncaVisitadaPuntuaMas(t *testing.T) {
	never := baseInput() // LastVisitAt nil

	yesterday := testNow.Add(-24 * time.Hour)
	visited := baseInput()
	visited.LastVisitAt = &yesterday

	assert.Greater(t, need.Score(never, testNow), need.Score(visited, testNow),
		"familia nunca visitada debe subir el score frente a visitada ayer")
}

func TestScore_PartialDescuentaFrenteAPending(t *testing.T) {
	pending := baseInput()
	partial := baseInput()
	partial.Status = entity.NeedStatusPartial

	sp := need.Score(pending, testNow)
	assert.Equal(t, sp/2, need.Score(partial, testNow),
		"partial aplica el descuento del 50%% sobre el score de pending")
}

func TestScore_NuncaNegativoParaAbiertas(t *testing.T) {
	in := baseInput()
	in.Urgency = entity.UrgencyLow
	in.CreatedAt = testNow // sin envejecimiento
	visited := testNow
	in.LastVisitAt = &visited // sin abandono

	assert.Greater(t, need.Score(in, testNow), 0.0,
		"una necesidad abierta siempre puntúa por encima del centinela covered")
}

func TestLevel_Umbrales(t *testing.T) {
	assert.Equal(t, need.LevelCritical, need.Level(150))
	assert.Equal(t, need.LevelHigh, need.Level(120))
	assert.Equal(t, need.LevelMedium, need.Level(60))
	assert.Equal(t, need.LevelLow, need.Level(10))
	assert.Equal(t, need.LevelLow, need.Level(need.CoveredScore))
}

// ── Comparador ────────────────────────────────────────────────────────────────

func TestLess_OrdenTotal(t *testing.T) {
	early := testNow.Add(-48 * time.Hour)
	late := testNow.Add(-24 * time.Hour)

	items := []need.Ranked{
		{ID: "d", Urgency: entity.UrgencyLow, CreatedAt: late, Score: 40},
		{ID: "b", Urgency: entity.UrgencyHigh, CreatedAt: late, Score: 80},
		{ID: "a", Urgency: entity.UrgencyHigh, CreatedAt: early, Score: 120},
		{ID: "c", Urgency: entity.UrgencyMedium, CreatedAt: early, Score: 80},
		{ID: "e", Urgency: entity.UrgencyLow, CreatedAt: late, Score: need.CoveredScore},
	}
	sort.Slice(items, func(i, j int) bool { return need.Less(items[i], items[j]) })

	got := make([]string, 0, len(items))
	for _, it := range items {
		got = append(got, it.ID)
	}
	// 120 primero; empate en 80 lo gana la urgencia mayor; covered al final.
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
}

func TestLess_EmpateCompletoDesempataPorID(t *testing.T) {
	a := need.Ranked{ID: "a", Urgency: entity.UrgencyHigh, CreatedAt: testNow, Score: 100}
	b := need.Ranked{ID: "b", Urgency: entity.UrgencyHigh, CreatedAt: testNow, Score: 100}

	assert.True(t, need.Less(a, b))
	assert.False(t, need.Less(b, a),
		"el comparador debe dar un orden estricto incluso con score/urgencia/fecha iguales")
}

func TestLess_MasViejaPrimeroAnteEmpate(t *testing.T) {
	early := testNow.Add(-72 * time.Hour)
	late := testNow.Add(-24 * time.Hour)
	a := need.Ranked{ID: "x", Urgency: entity.UrgencyHigh, CreatedAt: early, Score: 100}
	b := need.Ranked{ID: "y", Urgency: entity.UrgencyHigh, CreatedAt: late, Score: 100}

	assert.True(t, need.Less(a, b), "a igual score y urgencia gana la más antigua")
}
