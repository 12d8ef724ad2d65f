// File: codec/json.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package codec

import (
	"encoding/json"
	"fmt"

	"github.com/momentics/forkrpc/api"
)

// JSON serializes a tuple as one UTF-8 JSON array whose elements are
// the tuple values. Decoded numbers follow encoding/json defaults
// (float64); an empty payload decodes to an empty tuple.
var JSON api.Codec = jsonCodec{}

type jsonCodec struct{}

func (jsonCodec) Encode(values []any) ([]byte, error) {
	if values == nil {
		values = []any{}
	}
	out, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("codec: json encode: %w", err)
	}
	return out, nil
}

func (jsonCodec) Decode(data []byte) ([]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var values []any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("codec: json decode: %w", err)
	}
	return values, nil
}
