package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jpvargas/asistencia-api/internal/domain"
)

// MaxFileSize techo de tamaño de archivo: 5 MiB sobre los bytes decodificados.
const MaxFileSize = 5 << 20

// Tipos MIME admitidos para documentos de familia.
var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
}

// AllowedMimeType indica si el MIME declarado está en la lista admitida.
func AllowedMimeType(mime string) bool {
	return allowedMimeTypes[strings.ToLower(strings.TrimSpace(mime))]
}

// DecodeFileData acepta una data URL ("data:application/pdf;base64,...") o
// base64 crudo y devuelve los bytes decodificados. El techo de tamaño se
// verifica sobre los bytes reales, no sobre el largo del base64.
func DecodeFileData(fileData string) ([]byte, error) {
	payload := fileData
	if strings.HasPrefix(fileData, "data:") {
		idx := strings.Index(fileData, ",")
		if idx < 0 {
			return nil, fmt.Errorf("%w: data URL malformada", domain.ErrInvalidInput)
		}
		meta := fileData[:idx]
		if !strings.HasSuffix(meta, ";base64") {
			return nil, fmt.Errorf("%w: data URL sin base64", domain.ErrInvalidInput)
		}
		payload = fileData[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: base64 inválido", domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: el archivo supera el máximo de 5 MiB", domain.ErrInvalidInput)
	}
	return data, nil
}

// SniffContentType detecta el tipo real por los bytes mágicos del contenido.
// Devuelve cadena vacía si no corresponde a ningún tipo admitido.
func SniffContentType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return "application/pdf"
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}):
		return "image/png"
	case bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a")):
		return "image/gif"
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "image/webp"
	}
	return ""
}

// ValidateContent verifica que el MIME declarado esté admitido y que los bytes
// mágicos del contenido coincidan con él. El MIME declarado manda sobre la
// extensión del nombre; los bytes mandan sobre el MIME declarado.
func ValidateContent(declaredMime string, data []byte) error {
	if !AllowedMimeType(declaredMime) {
		return fmt.Errorf("%w: tipo de archivo no admitido: %s", domain.ErrInvalidInput, declaredMime)
	}
	sniffed := SniffContentType(data)
	if sniffed == "" {
		return fmt.Errorf("%w: el contenido no corresponde a ningún tipo admitido", domain.ErrInvalidInput)
	}
	if sniffed != strings.ToLower(strings.TrimSpace(declaredMime)) {
		return fmt.Errorf("%w: el contenido (%s) no coincide con el tipo declarado (%s)",
			domain.ErrInvalidInput, sniffed, declaredMime)
	}
	return nil
}
