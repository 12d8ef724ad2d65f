//go:build linux || darwin

package transport_test

import (
	"testing"

	"github.com/momentics/forkrpc/transport"
)

func TestSocketpairRoundTrip(t *testing.T) {
	a, b, err := transport.Socketpair()
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	defer transport.Close(a)
	defer transport.Close(b)

	if err := transport.WriteFull(a, []byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf := make([]byte, 16)
	n, err := transport.Read(b, buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "ping" {
		t.Fatalf("read %q", buf[:n])
	}
}

func TestCloseWriteDeliversEOF(t *testing.T) {
	a, b, err := transport.Socketpair()
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	defer transport.Close(a)
	defer transport.Close(b)

	if err := transport.CloseWrite(a); err != nil {
		t.Fatalf("close write: %v", err)
	}
	n, err := transport.Read(b, make([]byte, 1))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected EOF, read %d bytes", n)
	}

	// The other direction stays open.
	if err := transport.WriteFull(b, []byte("x")); err != nil {
		t.Fatalf("write after peer half-close: %v", err)
	}
}
