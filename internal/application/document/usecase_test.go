package document_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvargas/asistencia-api/internal/application/document"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

const (
	docTestOrgID    = "00000000-0000-0000-0000-00000000000a"
	docTestFamilyID = "00000000-0000-0000-0000-00000000000b"
	docTestActorID  = "00000000-0000-0000-0000-00000000000c"
)

type fakeDocRepo struct {
	docs         map[string]*entity.FamilyDocument
	failOnCreate bool
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: map[string]*entity.FamilyDocument{}}
}

func (r *fakeDocRepo) Create(doc *entity.FamilyDocument) error {
	if r.failOnCreate {
		return errors.New("insert falló")
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocRepo) GetByID(id string) (*entity.FamilyDocument, error) {
	return r.docs[id], nil
}

func (r *fakeDocRepo) ListByFamily(familyID string) ([]*entity.FamilyDocument, error) {
	var out []*entity.FamilyDocument
	for _, d := range r.docs {
		if d.FamilyID == familyID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) Delete(id string) error {
	delete(r.docs, id)
	return nil
}

type fakeDocFamilyRepo struct {
	families map[string]*entity.Family
}

func (r *fakeDocFamilyRepo) Create(*entity.Family) error { return nil }
func (r *fakeDocFamilyRepo) GetByID(id string) (*entity.Family, error) {
	return r.families[id], nil
}
func (r *fakeDocFamilyRepo) Update(*entity.Family) error { return nil }
func (r *fakeDocFamilyRepo) TouchLastVisit(string, time.Time) error { return nil }
func (r *fakeDocFamilyRepo) Delete(string) error { return nil }
func (r *fakeDocFamilyRepo) CreateChild(*entity.Child) error { return nil }
func (r *fakeDocFamilyRepo) GetChildByID(string) (*entity.Child, error) { return nil, nil }
func (r *fakeDocFamilyRepo) UpdateChild(*entity.Child) error { return nil }
func (r *fakeDocFamilyRepo) DeleteChild(string) error { return nil }
func (r *fakeDocFamilyRepo) ListChildren(string) ([]*entity.Child, error) {
	return nil, nil
}
func (r *fakeDocFamilyRepo) ListByOrganization(string, int, int) ([]*entity.Family, error) {
	return nil, nil
}
func (r *fakeDocFamilyRepo) Search(string, string, int, int) ([]*entity.Family, error) {
	return nil, nil
}

type fakeStore struct {
	objects map[string][]byte
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/signed/" + key, nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

type fakeScanner struct {
	result *document.ScanResult
	err    error
}

func (s *fakeScanner) Scan(context.Context, []byte) (*document.ScanResult, error) {
	return s.result, s.err
}

// newDocFixture arma el caso de uso con una familia de docTestOrgID ya registrada.
func newDocFixture(scanner document.Scanner, failClosed bool) (*document.UseCase, *fakeDocRepo, *fakeStore) {
	repo := newFakeDocRepo()
	store := newFakeStore()
	families := &fakeDocFamilyRepo{families: map[string]*entity.Family{
		docTestFamilyID: {ID: docTestFamilyID, OrganizationID: docTestOrgID, Name: "García"},
	}}
	uc := document.NewUseCase(repo, families, store, scanner, failClosed, 15*time.Minute, nil, nil)
	return uc, repo, store
}

func pdfUpload() dto.UploadDocumentRequest {
	return dto.UploadDocumentRequest{
		Name:         "DNI titular",
		DocumentType: entity.DocTypeID,
		MimeType:     "application/pdf",
		FileData:     base64.StdEncoding.EncodeToString(pdfBytes),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Upload — política antivirus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpload_ContenidoLimpio(t *testing.T) {
	uc, repo, store := newDocFixture(&fakeScanner{result: &document.ScanResult{}}, true)

	out, err := uc.Upload(context.Background(), docTestOrgID, docTestActorID, docTestFamilyID, pdfUpload())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, int64(len(pdfBytes)), out.SizeBytes)
	assert.Contains(t, out.DownloadURL, "https://storage.test/signed/",
		"la respuesta de subida trae una URL firmada fresca")
	assert.Len(t, repo.docs, 1, "debe quedar un registro de metadatos")
	assert.Len(t, store.objects, 1, "el binario debe quedar en el storage")
}

func TestUpload_ContenidoInfectado_Rechazado(t *testing.T) {
	uc, repo, store := newDocFixture(&fakeScanner{
		result: &document.ScanResult{Infected: true, Signature: "Eicar-Signature"},
	}, false)

	out, err := uc.Upload(context.Background(), docTestOrgID, docTestActorID, docTestFamilyID, pdfUpload())
	assert.ErrorIs(t, err, domain.ErrDocumentRejected)
	assert.Contains(t, err.Error(), "Eicar-Signature", "el error debe nombrar la firma detectada")
	assert.Nil(t, out)
	assert.Empty(t, repo.docs, "un archivo infectado no deja metadatos")
	assert.Empty(t, store.objects, "un archivo infectado no llega al storage")
}

func TestUpload_AntivirusCaido_FailClosed_Rechaza(t *testing.T) {
	uc, _, store := newDocFixture(&fakeScanner{err: errors.New("clamd no responde")}, true)

	_, err := uc.Upload(context.Background(), docTestOrgID, docTestActorID, docTestFamilyID, pdfUpload())
	assert.ErrorIs(t, err, domain.ErrDocumentRejected,
		"con fail-closed, sin análisis no entran documentos")
	assert.Empty(t, store.objects)
}

func TestUpload_AntivirusCaido_FailOpen_Acepta(t *testing.T) {
	uc, repo, _ := newDocFixture(&fakeScanner{err: errors.New("clamd no responde")}, false)

	out, err := uc.Upload(context.Background(), docTestOrgID, docTestActorID, docTestFamilyID, pdfUpload())
	require.NoError(t, err, "con fail-open el archivo entra aunque el análisis no pudo hacerse")
	require.NotNil(t, out)
	assert.Len(t, repo.docs, 1)
}

func TestUpload_SinScanner_Acepta(t *testing.T) {
	uc, repo, _ := newDocFixture(nil, true)

	_, err := uc.Upload(context.Background(), docTestOrgID, docTestActorID, docTestFamilyID, pdfUpload())
	require.NoError(t, err, "scanner nil significa antivirus deshabilitado, no fail-closed")
	assert.Len(t, repo.docs, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Upload — consistencia storage/metadatos
// ──────────────────────────────────────────────────────────────────────────────

func TestUpload_FalloDeMetadatos_LimpiaElObjeto(t *testing.T) {
	uc, repo, store := newDocFixture(nil, false)
	repo.failOnCreate = true

	_, err := uc.Upload(context.Background(), docTestOrgID, docTestActorID, docTestFamilyID, pdfUpload())
	assert.Error(t, err)
	assert.Len(t, store.deleted, 1, "el objeto huérfano debe limpiarse del storage")
	assert.Empty(t, store.objects)
}

func TestUpload_FamiliaDeOtraOrganizacion(t *testing.T) {
	uc, _, store := newDocFixture(nil, false)

	_, err := uc.Upload(context.Background(), "otra-org", docTestActorID, docTestFamilyID, pdfUpload())
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"una familia de otra organización se responde como inexistente")
	assert.Empty(t, store.objects)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de lectura — URL firmada por petición
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_IncluyeURLFirmada(t *testing.T) {
	uc, _, _ := newDocFixture(nil, false)

	created, err := uc.Upload(context.Background(), docTestOrgID, docTestActorID, docTestFamilyID, pdfUpload())
	require.NoError(t, err)

	out, err := uc.GetByID(context.Background(), docTestOrgID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Contains(t, out.DownloadURL, "https://storage.test/signed/",
		"la lectura debe traer la URL firmada de descarga")
	assert.Contains(t, out.DownloadURL, created.ID, "la clave del objeto incluye el ID del documento")
}

func TestDelete_BorraMetadatosYObjeto(t *testing.T) {
	uc, repo, store := newDocFixture(nil, false)

	created, err := uc.Upload(context.Background(), docTestOrgID, docTestActorID, docTestFamilyID, pdfUpload())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), docTestOrgID, docTestActorID, created.ID))
	assert.Empty(t, repo.docs)
	assert.Empty(t, store.objects)
}
