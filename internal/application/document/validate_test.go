package document_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvargas/asistencia-api/internal/application/document"
	"github.com/jpvargas/asistencia-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cabeceras mínimas válidas por formato.
// ──────────────────────────────────────────────────────────────────────────────

var (
	pdfBytes  = []byte("%PDF-1.7\n%contenido")
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	pngBytes  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	gifBytes  = []byte("GIF89a....")
	webpBytes = append([]byte("RIFF\x00\x00\x00\x00WEBP"), []byte("VP8 ")...)
)

func TestDecodeFileData_Base64Crudo(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pdfBytes)

	data, err := document.DecodeFileData(encoded)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, data)
}

func TestDecodeFileData_DataURL(t *testing.T) {
	encoded := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfBytes)

	data, err := document.DecodeFileData(encoded)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, data)
}

func TestDecodeFileData_Base64Invalido(t *testing.T) {
	_, err := document.DecodeFileData("esto no es base64!!!")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecodeFileData_DataURLSinBase64(t *testing.T) {
	_, err := document.DecodeFileData("data:text/plain,hola")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecodeFileData_ArchivoVacio(t *testing.T) {
	_, err := document.DecodeFileData("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecodeFileData_TechoDeTamano(t *testing.T) {
	// El techo aplica sobre los bytes decodificados, no sobre el largo del base64.
	big := make([]byte, document.MaxFileSize+1)
	copy(big, pdfBytes)

	_, err := document.DecodeFileData(base64.StdEncoding.EncodeToString(big))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "5 MiB")

	exact := make([]byte, document.MaxFileSize)
	copy(exact, pdfBytes)
	_, err = document.DecodeFileData(base64.StdEncoding.EncodeToString(exact))
	assert.NoError(t, err, "exactamente 5 MiB debe aceptarse")
}

func TestSniffContentType_FormatosAdmitidos(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"pdf", pdfBytes, "application/pdf"},
		{"jpeg", jpegBytes, "image/jpeg"},
		{"png", pngBytes, "image/png"},
		{"gif", gifBytes, "image/gif"},
		{"webp", webpBytes, "image/webp"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, document.SniffContentType(tc.data))
		})
	}
}

func TestSniffContentType_ContenidoDesconocido(t *testing.T) {
	assert.Empty(t, document.SniffContentType([]byte("MZ\x90\x00 ejecutable")))
	assert.Empty(t, document.SniffContentType([]byte("texto plano")))
}

func TestValidateContent_MimeNoAdmitido(t *testing.T) {
	err := document.ValidateContent("application/zip", pdfBytes)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateContent_LosBytesMandanSobreElMimeDeclarado(t *testing.T) {
	// Un ejecutable renombrado con MIME de PDF debe rechazarse.
	err := document.ValidateContent("application/pdf", []byte("MZ\x90\x00 ejecutable"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un PNG declarado como JPEG tampoco pasa.
	err = document.ValidateContent("image/jpeg", pngBytes)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "image/png")
}

func TestValidateContent_MimeConMayusculasYEspacios(t *testing.T) {
	err := document.ValidateContent("  Application/PDF ", pdfBytes)
	assert.NoError(t, err, "el MIME declarado se normaliza antes de comparar")
}

func TestAllowedMimeType(t *testing.T) {
	for _, mime := range []string{"application/pdf", "image/jpeg", "image/png", "image/gif", "image/webp"} {
		assert.True(t, document.AllowedMimeType(mime), mime)
	}
	for _, mime := range []string{"application/zip", "text/html", "image/svg+xml", ""} {
		assert.False(t, document.AllowedMimeType(mime), mime)
	}
}

func TestValidateContent_WebpCorto(t *testing.T) {
	// Un RIFF truncado antes del tag WEBP no debe detectarse como webp.
	err := document.ValidateContent("image/webp", []byte("RIFF1234"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
