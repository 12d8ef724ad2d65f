package codec_test

import (
	"bytes"
	"testing"

	"github.com/momentics/forkrpc/codec"
)

func TestStringsRoundTrip(t *testing.T) {
	in := []any{[]byte("alpha"), "beta", []byte{}, []byte{0x00, 0xFF, 0x7F}}
	payload, err := codec.Strings.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := codec.Strings.Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d values, want %d", len(out), len(in))
	}
	want := [][]byte{[]byte("alpha"), []byte("beta"), {}, {0x00, 0xFF, 0x7F}}
	for i, v := range out {
		if !bytes.Equal(v.([]byte), want[i]) {
			t.Errorf("value %d: got %q, want %q", i, v, want[i])
		}
	}
}

func TestStringsRejectsNonString(t *testing.T) {
	if _, err := codec.Strings.Encode([]any{42}); err == nil {
		t.Fatal("expected error for int element")
	}
}

func TestStringsTruncated(t *testing.T) {
	payload, err := codec.Strings.Encode([]any{"hello"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := codec.Strings.Decode(payload[:len(payload)-1]); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	payload, err := codec.JSON.Encode([]any{"progress", float64(3), true})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := codec.JSON.Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out[0].(string) != "progress" || out[1].(float64) != 3 || out[2].(bool) != true {
		t.Fatalf("round trip mismatch: %v", out)
	}
}

func TestJSONEmptyTuple(t *testing.T) {
	payload, err := codec.JSON.Encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(payload) != "[]" {
		t.Fatalf("empty tuple encoded as %q", payload)
	}
	out, err := codec.JSON.Decode(nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("empty payload decoded to %v", out)
	}
}

func TestGobRoundTrip(t *testing.T) {
	in := []any{"name", 7, []byte{1, 2, 3}, map[string]any{"k": "v"}}
	payload, err := codec.Gob.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := codec.Gob.Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out[0].(string) != "name" || out[1].(int) != 7 {
		t.Fatalf("round trip mismatch: %v", out)
	}
	if !bytes.Equal(out[2].([]byte), []byte{1, 2, 3}) {
		t.Fatalf("byte slice mismatch: %v", out[2])
	}
	if out[3].(map[string]any)["k"].(string) != "v" {
		t.Fatalf("map mismatch: %v", out[3])
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{codec.NameStrings, codec.NameJSON, codec.NameGob} {
		if _, err := codec.Lookup(name); err != nil {
			t.Errorf("lookup %q: %v", name, err)
		}
	}
	if _, err := codec.Lookup("sereal"); err == nil {
		t.Error("expected error for unknown serializer")
	}
}
