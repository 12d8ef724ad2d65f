package protocol_test

import (
	"bytes"
	"testing"

	"github.com/momentics/forkrpc/protocol"
)

func TestFrameRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		{},
		[]byte("x"),
		bytes.Repeat([]byte{0xAB}, 513),
	}
	ids := []uint32{0, 1, 42, 1<<32 - 1}
	for _, id := range ids {
		for _, p := range payloads {
			raw := protocol.AppendFrame(nil, id, p)
			f, n, err := protocol.Decode(raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if n != len(raw) {
				t.Fatalf("consumed %d, want %d", n, len(raw))
			}
			if f.ID != id {
				t.Fatalf("id %d, want %d", f.ID, id)
			}
			if !bytes.Equal(f.Payload, p) && len(p) != 0 {
				t.Fatalf("payload mismatch")
			}
		}
	}
}

func TestDecodeNeedsMoreAtEverySplit(t *testing.T) {
	raw := protocol.EncodeRequest(7, []byte("hello world"))
	for i := 0; i < len(raw); i++ {
		f, n, err := protocol.Decode(raw[:i])
		if err != nil {
			t.Fatalf("prefix %d: %v", i, err)
		}
		if n != 0 {
			t.Fatalf("prefix %d: consumed %d from incomplete frame %+v", i, n, f)
		}
	}
}

func TestDecodeProgress(t *testing.T) {
	// n concatenated frames decode to exactly n frames with no residue.
	var stream []byte
	want := []struct {
		id      uint32
		payload string
	}{
		{1, "first"},
		{0, "event"},
		{2, ""},
		{3, "last"},
	}
	for _, w := range want {
		stream = protocol.AppendFrame(stream, w.id, []byte(w.payload))
	}

	var got int
	for len(stream) > 0 {
		f, n, err := protocol.Decode(stream)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if n == 0 {
			t.Fatalf("stalled with %d bytes of residue", len(stream))
		}
		if f.ID != want[got].id || string(f.Payload) != want[got].payload {
			t.Fatalf("frame %d: got (%d, %q)", got, f.ID, f.Payload)
		}
		stream = stream[n:]
		got++
	}
	if got != len(want) {
		t.Fatalf("decoded %d frames, want %d", got, len(want))
	}
}

func TestEventSentinel(t *testing.T) {
	f, _, err := protocol.Decode(protocol.EncodeEvent([]byte("e")))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !f.IsEvent() {
		t.Error("event frame not recognized")
	}
	f, _, err = protocol.Decode(protocol.EncodeResponse(9, nil))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.IsEvent() {
		t.Error("response frame misread as event")
	}
}
