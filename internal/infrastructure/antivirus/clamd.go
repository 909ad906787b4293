// Package antivirus implementa el puerto document.Scanner contra un demonio
// ClamAV (clamd) por TCP, usando el comando INSTREAM del protocolo de clamd:
// el contenido viaja en chunks con prefijo de longitud big-endian y termina
// con un chunk de longitud cero.
package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jpvargas/asistencia-api/internal/application/document"
)

const chunkSize = 32 << 10

// ClamdScanner cliente INSTREAM de clamd.
type ClamdScanner struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

// NewClamdScanner construye el cliente. addr con formato host:puerto.
func NewClamdScanner(addr string, timeout time.Duration) *ClamdScanner {
	return &ClamdScanner{addr: addr, timeout: timeout}
}

// Scan envía el contenido por INSTREAM y parsea el veredicto. Un error de red
// o de protocolo significa "no se pudo analizar", no "infectado": la política
// fail-open/fail-closed la decide el caso de uso.
func (s *ClamdScanner) Scan(ctx context.Context, data []byte) (*document.ScanResult, error) {
	dialCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	conn, err := s.dialer.DialContext(dialCtx, "tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("antivirus: conectar con clamd: %w", err)
	}
	defer conn.Close()
	if s.timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.timeout))
	}

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return nil, fmt.Errorf("antivirus: enviar comando: %w", err)
	}
	if err := writeChunks(conn, data); err != nil {
		return nil, err
	}

	reply, err := bufio.NewReader(conn).ReadString('\x00')
	if err != nil && reply == "" {
		return nil, fmt.Errorf("antivirus: leer respuesta: %w", err)
	}
	return parseReply(strings.TrimRight(reply, "\x00\n"))
}

// writeChunks envía el contenido en chunks con prefijo uint32 big-endian y
// cierra el stream con un chunk de longitud cero.
func writeChunks(conn net.Conn, data []byte) error {
	var prefix [4]byte
	for len(data) > 0 {
		n := len(data)
		if n > chunkSize {
			n = chunkSize
		}
		binary.BigEndian.PutUint32(prefix[:], uint32(n))
		if _, err := conn.Write(prefix[:]); err != nil {
			return fmt.Errorf("antivirus: enviar chunk: %w", err)
		}
		if _, err := conn.Write(data[:n]); err != nil {
			return fmt.Errorf("antivirus: enviar chunk: %w", err)
		}
		data = data[n:]
	}
	binary.BigEndian.PutUint32(prefix[:], 0)
	if _, err := conn.Write(prefix[:]); err != nil {
		return fmt.Errorf("antivirus: cerrar stream: %w", err)
	}
	return nil
}

// parseReply interpreta la respuesta de clamd:
//
//	"stream: OK"                  -> limpio
//	"stream: Eicar-Test FOUND"    -> infectado, con el nombre de la firma
//	"INSTREAM size limit exceeded. ERROR" -> error de análisis
func parseReply(reply string) (*document.ScanResult, error) {
	reply = strings.TrimSpace(reply)
	switch {
	case strings.HasSuffix(reply, "OK"):
		return &document.ScanResult{}, nil
	case strings.HasSuffix(reply, "FOUND"):
		sig := strings.TrimSuffix(reply, "FOUND")
		sig = strings.TrimSpace(strings.TrimPrefix(sig, "stream:"))
		return &document.ScanResult{Infected: true, Signature: sig}, nil
	}
	return nil, fmt.Errorf("antivirus: respuesta inesperada de clamd: %q", reply)
}
