package document

import (
	"context"
	"io"
	"time"
)

// ObjectStore puerto hacia el almacenamiento de objetos. El binario del
// documento vive solo ahí; la API entrega URLs firmadas de corta vida.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// ScanResult resultado del análisis antivirus.
type ScanResult struct {
	Infected bool
	// Signature nombre de la firma detectada (vacío si limpio).
	Signature string
}

// Scanner puerto hacia el antivirus. Scan analiza el contenido completo y
// devuelve el veredicto; un error significa que el análisis no pudo hacerse,
// no que el archivo esté infectado.
type Scanner interface {
	Scan(ctx context.Context, data []byte) (*ScanResult, error)
}
