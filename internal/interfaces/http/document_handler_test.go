package http_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvargas/asistencia-api/internal/application/document"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	apphttp "github.com/jpvargas/asistencia-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para montar el handler de documentos sin infraestructura real
// ──────────────────────────────────────────────────────────────────────────────

var handlerPDFBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< >>\n%%EOF")

type stubDocRepo struct {
	docs map[string]*entity.FamilyDocument
}

func (r *stubDocRepo) Create(d *entity.FamilyDocument) error {
	r.docs[d.ID] = d
	return nil
}
func (r *stubDocRepo) GetByID(id string) (*entity.FamilyDocument, error) { return r.docs[id], nil }
func (r *stubDocRepo) ListByFamily(string) ([]*entity.FamilyDocument, error) { return nil, nil }
func (r *stubDocRepo) Delete(id string) error {
	delete(r.docs, id)
	return nil
}

type stubFamilyRepo struct {
	families map[string]*entity.Family
}

func (r *stubFamilyRepo) Create(*entity.Family) error { return nil }
func (r *stubFamilyRepo) GetByID(id string) (*entity.Family, error) { return r.families[id], nil }
func (r *stubFamilyRepo) Update(*entity.Family) error { return nil }
func (r *stubFamilyRepo) TouchLastVisit(string, time.Time) error { return nil }
func (r *stubFamilyRepo) ListByOrganization(string, int, int) ([]*entity.Family, error) {
	return nil, nil
}
func (r *stubFamilyRepo) Search(string, string, int, int) ([]*entity.Family, error) {
	return nil, nil
}
func (r *stubFamilyRepo) Delete(string) error { return nil }
func (r *stubFamilyRepo) CreateChild(*entity.Child) error { return nil }
func (r *stubFamilyRepo) GetChildByID(string) (*entity.Child, error) { return nil, nil }
func (r *stubFamilyRepo) ListChildren(string) ([]*entity.Child, error) { return nil, nil }
func (r *stubFamilyRepo) UpdateChild(*entity.Child) error { return nil }
func (r *stubFamilyRepo) DeleteChild(string) error { return nil }

type stubStore struct{}

func (s *stubStore) Put(context.Context, string, io.Reader, int64, string) error { return nil }
func (s *stubStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/signed/" + key, nil
}
func (s *stubStore) Delete(context.Context, string) error { return nil }

type stubScanner struct {
	result *document.ScanResult
}

func (s *stubScanner) Scan(context.Context, []byte) (*document.ScanResult, error) {
	return s.result, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Montaje del app
// ──────────────────────────────────────────────────────────────────────────────

func newDocumentApp(repo *stubDocRepo, scanner document.Scanner) *fiber.App {
	families := &stubFamilyRepo{families: map[string]*entity.Family{
		"fam-1": {ID: "fam-1", OrganizationID: testOrgID},
	}}
	uc := document.NewUseCase(repo, families, &stubStore{}, scanner, true, 15*time.Minute, nil, nil)
	handler := apphttp.NewDocumentHandler(uc)

	app := fiber.New()
	// Identidad ya autenticada, como la dejaría AuthMiddleware
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, testUserID)
		c.Locals(apphttp.LocalOrganizationID, testOrgID)
		c.Locals(apphttp.LocalRole, entity.RoleAdmin)
		return c.Next()
	})
	app.Post("/api/families/:id/documents", handler.Upload)
	app.Get("/api/documents/:id", handler.GetByID)
	return app
}

func uploadBody(t *testing.T) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(dto.UploadDocumentRequest{
		Name:         "dni.pdf",
		DocumentType: entity.DocTypeID,
		MimeType:     "application/pdf",
		FileData:     base64.StdEncoding.EncodeToString(handlerPDFBytes),
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDocument_Inexistente_Retorna404(t *testing.T) {
	app := newDocumentApp(&stubDocRepo{docs: map[string]*entity.FamilyDocument{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/no-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode,
		"un documento inexistente debe responder 404, no 200 con cuerpo null")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "NOT_FOUND")
}

func TestUploadDocument_ContenidoInfectado_Retorna400(t *testing.T) {
	scanner := &stubScanner{result: &document.ScanResult{Infected: true, Signature: "Eicar-Signature"}}
	app := newDocumentApp(&stubDocRepo{docs: map[string]*entity.FamilyDocument{}}, scanner)

	req := httptest.NewRequest(http.MethodPost, "/api/families/fam-1/documents", uploadBody(t))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode,
		"el rechazo por antivirus es corregible por el cliente: 400")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "DOCUMENT_REJECTED")
}

func TestUploadDocument_ContenidoLimpio_Retorna201ConURLFirmada(t *testing.T) {
	scanner := &stubScanner{result: &document.ScanResult{}}
	app := newDocumentApp(&stubDocRepo{docs: map[string]*entity.FamilyDocument{}}, scanner)

	req := httptest.NewRequest(http.MethodPost, "/api/families/fam-1/documents", uploadBody(t))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.DocumentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.DownloadURL, "https://storage.test/signed/",
		"la respuesta de subida debe traer la URL firmada de descarga")
}
