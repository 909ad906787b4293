package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Search normaliza un texto para búsqueda: minúsculas y sin tildes ni diacríticos.
// "Pérez Ñuñez" -> "perez nunez". Se usa al indexar y al filtrar nombres de familias.
func Search(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		// Si el transform falla (input no UTF-8), nos quedamos con el original
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
