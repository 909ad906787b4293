package antivirus_test

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvargas/asistencia-api/internal/infrastructure/antivirus"
)

// fakeClamd levanta un listener TCP que habla el protocolo INSTREAM: lee el
// comando y los chunks, y responde con la línea indicada.
func fakeClamd(t *testing.T, reply string, gotData *[]byte) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		// Comando terminado en NUL
		cmd := make([]byte, len("zINSTREAM\x00"))
		if _, err := io.ReadFull(conn, cmd); err != nil {
			return
		}
		// Chunks hasta el de longitud cero
		var payload []byte
		var prefix [4]byte
		for {
			if _, err := io.ReadFull(conn, prefix[:]); err != nil {
				return
			}
			n := binary.BigEndian.Uint32(prefix[:])
			if n == 0 {
				break
			}
			chunk := make([]byte, n)
			if _, err := io.ReadFull(conn, chunk); err != nil {
				return
			}
			payload = append(payload, chunk...)
		}
		if gotData != nil {
			*gotData = payload
		}
		conn.Write([]byte(reply + "\x00"))
	}()
	return ln.Addr().String()
}

func TestScan_Limpio(t *testing.T) {
	var got []byte
	addr := fakeClamd(t, "stream: OK", &got)
	scanner := antivirus.NewClamdScanner(addr, 2*time.Second)

	content := []byte("contenido inocuo de un pdf")
	result, err := scanner.Scan(context.Background(), content)
	require.NoError(t, err)
	assert.False(t, result.Infected)
	assert.Empty(t, result.Signature)
	assert.Equal(t, content, got, "el contenido debe llegar completo al demonio")
}

func TestScan_Infectado(t *testing.T) {
	addr := fakeClamd(t, "stream: Eicar-Signature FOUND", nil)
	scanner := antivirus.NewClamdScanner(addr, 2*time.Second)

	result, err := scanner.Scan(context.Background(), []byte("payload"))
	require.NoError(t, err)
	assert.True(t, result.Infected)
	assert.Equal(t, "Eicar-Signature", result.Signature)
}

func TestScan_RespuestaDeError(t *testing.T) {
	addr := fakeClamd(t, "INSTREAM size limit exceeded. ERROR", nil)
	scanner := antivirus.NewClamdScanner(addr, 2*time.Second)

	result, err := scanner.Scan(context.Background(), []byte("payload"))
	require.Error(t, err, "un ERROR de clamd es fallo de análisis, no veredicto")
	assert.Nil(t, result)
}

func TestScan_DemonioCaido(t *testing.T) {
	// Puerto reservado y cerrado de inmediato: la conexión debe fallar.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	scanner := antivirus.NewClamdScanner(addr, 500*time.Millisecond)
	result, err := scanner.Scan(context.Background(), []byte("payload"))
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestScan_ContenidoGrandeEnVariosChunks(t *testing.T) {
	var got []byte
	addr := fakeClamd(t, "stream: OK", &got)
	scanner := antivirus.NewClamdScanner(addr, 5*time.Second)

	// Más grande que un chunk, para forzar la fragmentación.
	content := make([]byte, 100<<10)
	for i := range content {
		content[i] = byte(i % 251)
	}
	result, err := scanner.Scan(context.Background(), content)
	require.NoError(t, err)
	assert.False(t, result.Infected)
	assert.Equal(t, content, got, "los chunks deben reensamblar el contenido exacto")
}
