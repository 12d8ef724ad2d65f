// File: fake/codec.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fake

import "fmt"

// Codec fails encode or decode on demand, for exercising the engines'
// serializer-failure paths. With both flags false it degenerates to an
// empty-payload codec.
type Codec struct {
	FailEncode bool
	FailDecode bool
}

func (c *Codec) Encode(values []any) ([]byte, error) {
	if c.FailEncode {
		return nil, fmt.Errorf("fake: encode refused")
	}
	return nil, nil
}

func (c *Codec) Decode(data []byte) ([]any, error) {
	if c.FailDecode {
		return nil, fmt.Errorf("fake: decode refused")
	}
	return nil, nil
}
