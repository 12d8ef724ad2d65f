// Package codec
// Author: momentics <momentics@gmail.com>
//
// The standard serializer pairs usable with the RPC engines, selected
// by value or by name:
//
//	Strings: length-prefixed byte strings, 8-bit clean
//	JSON:    one UTF-8 JSON array per payload
//	Gob:     structured binary via encoding/gob
//
// All three satisfy api.Codec. A serializer error is terminal for the
// connection that hits it; none of the codecs recover or resynchronize.
package codec
