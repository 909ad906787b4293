package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del puerto NeedRepository: solo los métodos que ejercita el listado.
// ──────────────────────────────────────────────────────────────────────────────

type stubNeedRepo struct {
	needs []*entity.NeedWithFamily
}

func (r *stubNeedRepo) Create(*entity.Need) error            { return nil }
func (r *stubNeedRepo) GetByID(string) (*entity.Need, error) { return nil, nil }
func (r *stubNeedRepo) Update(*entity.Need) error            { return nil }
func (r *stubNeedRepo) UpdateStatus(string, string) error    { return nil }
func (r *stubNeedRepo) ListByOrganization(string, int, int) ([]*entity.NeedWithFamily, error) {
	return r.needs, nil
}
func (r *stubNeedRepo) ListByFamily(string) ([]*entity.NeedWithFamily, error) { return r.needs, nil }
func (r *stubNeedRepo) ListOpenByFamilyAndType(string, string) ([]*entity.Need, error) {
	return nil, nil
}
func (r *stubNeedRepo) Delete(string) error { return nil }

func needAt(id, urgency, status string, createdAt time.Time, lastVisit *time.Time) *entity.NeedWithFamily {
	return &entity.NeedWithFamily{
		Need: entity.Need{
			ID:             id,
			OrganizationID: "org-1",
			FamilyID:       "fam-1",
			Urgency:        urgency,
			Status:         status,
			CreatedAt:      createdAt,
			UpdatedAt:      createdAt,
		},
		FamilyLastVisitAt: lastVisit,
	}
}

func newNeedFixture(needs ...*entity.NeedWithFamily) *NeedUseCase {
	uc := NewNeedUseCase(&stubNeedRepo{needs: needs}, nil, nil)
	uc.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return uc
}

func TestList_OrdenadoPorScoreDescendente(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	visited := now.AddDate(0, 0, -1)
	uc := newNeedFixture(
		needAt("n-low", entity.UrgencyLow, entity.NeedStatusPending, now, &visited),
		needAt("n-high", entity.UrgencyHigh, entity.NeedStatusPending, now, &visited),
		needAt("n-medium", entity.UrgencyMedium, entity.NeedStatusPending, now, &visited),
	)

	out, err := uc.List("org-1", "", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "n-high", out.Items[0].ID)
	assert.Equal(t, "n-medium", out.Items[1].ID)
	assert.Equal(t, "n-low", out.Items[2].ID)
	assert.Greater(t, out.Items[0].PriorityScore, out.Items[1].PriorityScore)
}

func TestList_LasCubiertasSiempreAlFinal(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -90)
	uc := newNeedFixture(
		needAt("n-covered", entity.UrgencyHigh, entity.NeedStatusCovered, old, nil),
		needAt("n-open", entity.UrgencyLow, entity.NeedStatusPending, now, nil),
	)

	out, err := uc.List("org-1", "", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "n-open", out.Items[0].ID,
		"una low abierta ordena antes que una high cubierta")
	assert.Equal(t, "n-covered", out.Items[1].ID)
	assert.Negative(t, out.Items[1].PriorityScore)
}

func TestList_PaginaDespuesDeOrdenar(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	visited := now.AddDate(0, 0, -1)
	uc := newNeedFixture(
		needAt("n-low", entity.UrgencyLow, entity.NeedStatusPending, now, &visited),
		needAt("n-high", entity.UrgencyHigh, entity.NeedStatusPending, now, &visited),
		needAt("n-medium", entity.UrgencyMedium, entity.NeedStatusPending, now, &visited),
	)

	out, err := uc.List("org-1", "", 1, 1)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "n-medium", out.Items[0].ID, "la segunda página arranca en el segundo score")
	assert.Equal(t, 3, out.Page.Total)

	out, err = uc.List("org-1", "", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, out.Items, "offset más allá del final devuelve página vacía")
}

func TestList_FiltroPorStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	uc := newNeedFixture(
		needAt("n-1", entity.UrgencyHigh, entity.NeedStatusPending, now, nil),
		needAt("n-2", entity.UrgencyHigh, entity.NeedStatusCovered, now, nil),
	)

	out, err := uc.List("org-1", entity.NeedStatusPending, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "n-1", out.Items[0].ID)
}

func TestList_FamiliaNuncaVisitadaSubeElScore(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	visited := now.AddDate(0, 0, -1)
	uc := newNeedFixture(
		needAt("n-visited", entity.UrgencyMedium, entity.NeedStatusPending, now, &visited),
		needAt("n-never", entity.UrgencyMedium, entity.NeedStatusPending, now, nil),
	)

	out, err := uc.List("org-1", "", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "n-never", out.Items[0].ID,
		"a igual urgencia, la familia nunca visitada ordena primero")
}
