// File: codec/strings.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/momentics/forkrpc/api"
)

// Strings serializes a tuple as a concatenation of uvarint-length-
// prefixed byte strings. Only []byte and string elements are accepted;
// decoded elements are always []byte. Payloads are 8-bit clean.
var Strings api.Codec = stringsCodec{}

type stringsCodec struct{}

func (stringsCodec) Encode(values []any) ([]byte, error) {
	var out []byte
	for i, v := range values {
		var b []byte
		switch s := v.(type) {
		case []byte:
			b = s
		case string:
			b = []byte(s)
		default:
			return nil, fmt.Errorf("codec: strings element %d is %T, want string or []byte", i, v)
		}
		out = binary.AppendUvarint(out, uint64(len(b)))
		out = append(out, b...)
	}
	return out, nil
}

func (stringsCodec) Decode(data []byte) ([]any, error) {
	var values []any
	for len(data) > 0 {
		n, w := binary.Uvarint(data)
		if w <= 0 {
			return nil, fmt.Errorf("codec: strings length prefix truncated")
		}
		data = data[w:]
		if n > uint64(len(data)) {
			return nil, fmt.Errorf("codec: strings element declares %d bytes, %d available", n, len(data))
		}
		b := make([]byte, n)
		copy(b, data[:n])
		values = append(values, b)
		data = data[n:]
	}
	return values, nil
}
