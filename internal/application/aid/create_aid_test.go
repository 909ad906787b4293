package aid_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaid "github.com/jpvargas/asistencia-api/internal/application/aid"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de repositorio. El fakeTxRunner ejecuta el
// callback directamente y simula el rollback restaurando el estado de las
// ayudas si el callback falla.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOrgID    = "org-1"
	testFamilyID = "fam-1"
	testTypeID   = "cat-food"
	testVolID    = "vol-1"
)

type fakeAidRepo struct {
	aids []*entity.Aid
}

func (r *fakeAidRepo) Create(a *entity.Aid) error {
	r.aids = append(r.aids, a)
	return nil
}

func (r *fakeAidRepo) GetByID(id string) (*entity.Aid, error) {
	for _, a := range r.aids {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAidRepo) FindRecentDuplicate(aid *entity.Aid, matchDate bool, since time.Time) (*entity.Aid, error) {
	for _, a := range r.aids {
		if a.FamilyID == aid.FamilyID && a.Type == aid.Type && a.ArticleID == aid.ArticleID &&
			a.Quantity.Equal(aid.Quantity) && (!matchDate || a.Date.Equal(aid.Date)) &&
			a.VolunteerID == aid.VolunteerID && a.Source == aid.Source && a.Notes == aid.Notes &&
			a.CreatedAt.After(since) {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAidRepo) ListByOrganization(string, int, int) ([]*entity.Aid, error) { return r.aids, nil }
func (r *fakeAidRepo) ListByFamily(string, int, int) ([]*entity.Aid, error) { return r.aids, nil }
func (r *fakeAidRepo) ListByPeriod(string, time.Time, time.Time) ([]*entity.Aid, error) {
	return r.aids, nil
}
func (r *fakeAidRepo) Delete(id string) error { return nil }

type fakeFamilyRepo struct {
	families map[string]*entity.Family
}

func (r *fakeFamilyRepo) GetByID(id string) (*entity.Family, error) { return r.families[id], nil }
func (r *fakeFamilyRepo) TouchLastVisit(id string, visitedAt time.Time) error {
	f, ok := r.families[id]
	if !ok {
		return domain.ErrNotFound
	}
	v := visitedAt
	f.LastVisitAt = &v
	f.UpdatedAt = visitedAt
	return nil
}
func (r *fakeFamilyRepo) Create(*entity.Family) error { return nil }
func (r *fakeFamilyRepo) Update(*entity.Family) error { return nil }
func (r *fakeFamilyRepo) ListByOrganization(string, int, int) ([]*entity.Family, error) {
	return nil, nil
}
func (r *fakeFamilyRepo) Search(string, string, int, int) ([]*entity.Family, error) {
	return nil, nil
}
func (r *fakeFamilyRepo) Delete(string) error { return nil }
func (r *fakeFamilyRepo) CreateChild(*entity.Child) error { return nil }
func (r *fakeFamilyRepo) GetChildByID(string) (*entity.Child, error) { return nil, nil }
func (r *fakeFamilyRepo) ListChildren(string) ([]*entity.Child, error) { return nil, nil }
func (r *fakeFamilyRepo) UpdateChild(*entity.Child) error { return nil }
func (r *fakeFamilyRepo) DeleteChild(string) error { return nil }

type fakeArticleRepo struct {
	articles map[string]*entity.Article
}

func (r *fakeArticleRepo) GetByID(id string) (*entity.Article, error) { return r.articles[id], nil }
func (r *fakeArticleRepo) GetForUpdate(id string) (*entity.Article, error) { return r.articles[id], nil }
func (r *fakeArticleRepo) UpdateStock(id string, q decimal.Decimal) error {
	a, ok := r.articles[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.StockQuantity = q
	return nil
}
func (r *fakeArticleRepo) Create(*entity.Article) error { return nil }
func (r *fakeArticleRepo) Update(*entity.Article) error { return nil }
func (r *fakeArticleRepo) ListByOrganization(string, int, int) ([]*entity.Article, error) {
	return nil, nil
}
func (r *fakeArticleRepo) ListBelowMin(string) ([]*entity.Article, error) { return nil, nil }
func (r *fakeArticleRepo) Delete(string) error { return nil }

type fakeNeedRepo struct {
	needs     []*entity.Need
	failOnUpd bool
}

func (r *fakeNeedRepo) ListOpenByFamilyAndType(familyID, catType string) ([]*entity.Need, error) {
	var out []*entity.Need
	for _, n := range r.needs {
		if n.FamilyID == familyID && n.Type == catType && n.Status != entity.NeedStatusCovered {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNeedRepo) UpdateStatus(id, status string) error {
	if r.failOnUpd {
		return errors.New("constraint violation")
	}
	for _, n := range r.needs {
		if n.ID == id {
			n.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeNeedRepo) Create(*entity.Need) error { return nil }
func (r *fakeNeedRepo) GetByID(string) (*entity.Need, error) { return nil, nil }
func (r *fakeNeedRepo) Update(*entity.Need) error { return nil }
func (r *fakeNeedRepo) ListByOrganization(string, int, int) ([]*entity.NeedWithFamily, error) {
	return nil, nil
}
func (r *fakeNeedRepo) ListByFamily(string) ([]*entity.NeedWithFamily, error) { return nil, nil }
func (r *fakeNeedRepo) Delete(string) error { return nil }

// fakeTxRunner ejecuta el callback con los fakes; si falla, restaura el slice de
// ayudas para simular el rollback de la transacción real.
type fakeTxRunner struct {
	aidRepo     *fakeAidRepo
	familyRepo  *fakeFamilyRepo
	articleRepo *fakeArticleRepo
	needRepo    *fakeNeedRepo
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	repository.AidRepository,
	repository.FamilyRepository,
	repository.ArticleRepository,
	repository.NeedRepository,
) error) error {
	snapshot := make([]*entity.Aid, len(tx.aidRepo.aids))
	copy(snapshot, tx.aidRepo.aids)
	if err := fn(tx.aidRepo, tx.familyRepo, tx.articleRepo, tx.needRepo); err != nil {
		tx.aidRepo.aids = snapshot
		return err
	}
	return nil
}

// ── setup ─────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *appaid.CreateAidUseCase
	aids     *fakeAidRepo
	families *fakeFamilyRepo
	articles *fakeArticleRepo
	needs    *fakeNeedRepo
}

func newFixture() *fixture {
	aids := &fakeAidRepo{}
	families := &fakeFamilyRepo{families: map[string]*entity.Family{
		testFamilyID: {ID: testFamilyID, OrganizationID: testOrgID, Name: "Familia Pérez"},
	}}
	articles := &fakeArticleRepo{articles: map[string]*entity.Article{}}
	needs := &fakeNeedRepo{}
	tx := &fakeTxRunner{aidRepo: aids, familyRepo: families, articleRepo: articles, needRepo: needs}
	uc := appaid.NewCreateAidUseCase(tx, families, articles, nil)
	return &fixture{uc: uc, aids: aids, families: families, articles: articles, needs: needs}
}

func baseRequest() dto.CreateAidRequest {
	return dto.CreateAidRequest{
		FamilyID: testFamilyID,
		Type:     testTypeID,
		Source:   entity.AidSourceDonation,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreate_TocaLastVisitDeLaFamilia(t *testing.T) {
	f := newFixture()
	date := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	req := baseRequest()
	req.Date = &date

	out, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
	require.NoError(t, err)
	require.NotNil(t, out)

	fam := f.families.families[testFamilyID]
	require.NotNil(t, fam.LastVisitAt, "registrar la ayuda debe tocar LastVisitAt")
	assert.True(t, fam.LastVisitAt.Equal(date), "LastVisitAt debe quedar en la fecha de la ayuda")
	assert.Len(t, f.aids.aids, 1)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(1)), "la cantidad por defecto es 1")
}

func TestCreate_SinNecesidadQueCoincida_NoHayEfectosSobreNecesidades(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*entity.Need{
		{ID: "n1", FamilyID: testFamilyID, Type: "cat-otro", Status: entity.NeedStatusPending},
	}

	_, err := f.uc.Create(context.Background(), testOrgID, testVolID, baseRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.NeedStatusPending, f.needs.needs[0].Status,
		"una necesidad de otro tipo no debe avanzar")
}

func TestCreate_Idempotencia_DobleSubmitDevuelveLaMismaAyuda(t *testing.T) {
	f := newFixture()
	date := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	req := baseRequest()
	req.Date = &date

	first, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "el segundo submit debe devolver la ayuda existente")
	assert.Len(t, f.aids.aids, 1, "debe quedar exactamente una fila")
}

func TestCreate_Idempotencia_SinFecha_LaFechaDefaulteadaNoRompeElGuard(t *testing.T) {
	f := newFixture()
	req := baseRequest() // sin Date: cada intento defaultea a su propio now

	first, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "el reintento sin fecha debe devolver la ayuda existente")
	assert.Len(t, f.aids.aids, 1, "debe quedar exactamente una fila")
}

func TestCreate_Idempotencia_FechasDistintasDelCliente_SonDosAyudas(t *testing.T) {
	f := newFixture()
	d1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

	req := baseRequest()
	req.Date = &d1
	_, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
	require.NoError(t, err)

	req.Date = &d2
	_, err = f.uc.Create(context.Background(), testOrgID, testVolID, req)
	require.NoError(t, err)

	assert.Len(t, f.aids.aids, 2, "fechas explícitas distintas son entregas distintas")
}

func TestCreate_ConciliacionDeNecesidades_AvanzaUnPasoPorAyuda(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*entity.Need{
		{ID: "n1", FamilyID: testFamilyID, Type: testTypeID, Status: entity.NeedStatusPending},
	}

	dates := []time.Time{
		time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
	}
	expected := []string{entity.NeedStatusPartial, entity.NeedStatusCovered, entity.NeedStatusCovered}

	for i, d := range dates {
		req := baseRequest()
		day := d
		req.Date = &day
		_, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
		require.NoError(t, err)
		assert.Equal(t, expected[i], f.needs.needs[0].Status,
			"tras la ayuda %d el estado debe ser %s", i+1, expected[i])
	}
}

func TestCreate_DescuentoDeStock_RecortadoEnCero(t *testing.T) {
	f := newFixture()
	f.articles.articles["art-1"] = &entity.Article{
		ID: "art-1", OrganizationID: testOrgID,
		StockQuantity: decimal.NewFromInt(2),
	}
	qty := decimal.NewFromInt(5)
	req := baseRequest()
	req.ArticleID = "art-1"
	req.Quantity = &qty

	_, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
	require.NoError(t, err)
	assert.True(t, f.articles.articles["art-1"].StockQuantity.IsZero(),
		"el stock debe quedar en 0, nunca negativo")
}

func TestCreate_FuenteInvalida(t *testing.T) {
	f := newFixture()
	req := baseRequest()
	req.Source = "theft"

	_, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CantidadNoPositiva(t *testing.T) {
	f := newFixture()
	zero := decimal.Zero
	req := baseRequest()
	req.Quantity = &zero

	_, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_FamiliaDeOtraOrganizacion(t *testing.T) {
	f := newFixture()
	f.families.families["fam-ajena"] = &entity.Family{ID: "fam-ajena", OrganizationID: "org-2"}
	req := baseRequest()
	req.FamilyID = "fam-ajena"

	_, err := f.uc.Create(context.Background(), testOrgID, testVolID, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_FalloDentroDeLaTransaccion_NoPersisteNada(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*entity.Need{
		{ID: "n1", FamilyID: testFamilyID, Type: testTypeID, Status: entity.NeedStatusPending},
	}
	f.needs.failOnUpd = true

	out, err := f.uc.Create(context.Background(), testOrgID, testVolID, baseRequest())
	require.Error(t, err, "cualquier paso fallido aborta la transacción completa")
	assert.Nil(t, out)
	assert.Empty(t, f.aids.aids, "la ayuda no debe quedar persistida tras el rollback")
}
