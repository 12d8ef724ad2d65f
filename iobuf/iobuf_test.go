package iobuf_test

import (
	"bytes"
	"testing"

	"github.com/momentics/forkrpc/iobuf"
)

func TestReadBufferGrows(t *testing.T) {
	b := iobuf.NewReadBuffer()
	if b.Cap() != iobuf.InitialReadSize {
		t.Fatalf("initial cap %d, want %d", b.Cap(), iobuf.InitialReadSize)
	}

	// Fill past 1 MiB through the Tail/Advance cycle.
	const target = 1 << 20
	total := 0
	for total < target {
		tail := b.Tail()
		if len(tail) == 0 {
			t.Fatal("Tail returned no headroom")
		}
		for i := range tail {
			tail[i] = byte(total + i)
		}
		b.Advance(len(tail))
		total += len(tail)
	}
	if b.Cap() <= iobuf.InitialReadSize {
		t.Fatalf("cap %d never grew", b.Cap())
	}
	if b.Len() != total {
		t.Fatalf("window %d, want %d", b.Len(), total)
	}

	// Contents survived every regrow.
	win := b.Window()
	for i := 0; i < total; i += 4099 {
		if win[i] != byte(i) {
			t.Fatalf("byte %d corrupted after growth", i)
		}
	}
}

func TestReadBufferDiscardCompacts(t *testing.T) {
	b := iobuf.NewReadBuffer()
	tail := b.Tail()
	copy(tail, "abcdef")
	b.Advance(6)
	b.Discard(4)
	if got := string(b.Window()); got != "ef" {
		t.Fatalf("window %q after discard", got)
	}
	b.Discard(2)
	if b.Len() != 0 {
		t.Fatalf("window not empty after full discard")
	}
	// Empty discard resets offsets so the next Tail sees full headroom.
	if len(b.Tail()) != b.Cap() {
		t.Fatalf("tail %d after reset, want %d", len(b.Tail()), b.Cap())
	}
}

func TestWriteBufferPartialConsume(t *testing.T) {
	var w iobuf.WriteBuffer
	w.Append([]byte("hello "))
	w.Append([]byte("world"))
	w.Consume(6)
	if !bytes.Equal(w.Bytes(), []byte("world")) {
		t.Fatalf("pending %q", w.Bytes())
	}
	w.Consume(5)
	if !w.Empty() {
		t.Fatal("buffer not empty after draining")
	}
}
