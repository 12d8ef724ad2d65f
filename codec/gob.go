// File: codec/gob.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/momentics/forkrpc/api"
)

// Gob serializes a tuple as one encoding/gob stream of the value
// slice. Unlike Strings and JSON it round-trips composite Go values,
// including aliased and cyclic structures per gob semantics. Concrete
// types beyond the ones registered below must be gob.Register'ed by
// the application on both endpoints.
var Gob api.Codec = gobCodec{}

func init() {
	gob.Register([]any{})
	gob.Register(map[string]any{})
}

type gobCodec struct{}

func (gobCodec) Encode(values []any) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(values); err != nil {
		return nil, fmt.Errorf("codec: gob encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (gobCodec) Decode(data []byte) ([]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var values []any
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&values); err != nil {
		return nil, fmt.Errorf("codec: gob decode: %w", err)
	}
	return values, nil
}
