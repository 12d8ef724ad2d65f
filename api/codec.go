// File: api/codec.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Codec is the externally supplied serializer pair. Both endpoints of a
// connection must use the same Codec. Encode and Decode are pure: they
// never retain or mutate engine state, so a single Codec value may be
// shared by any number of connections.
//
// An error from either function is terminal for the connection that
// observed it.
type Codec interface {
	// Encode flattens an argument tuple into one payload.
	Encode(values []any) ([]byte, error)

	// Decode recovers the tuple from a payload produced by Encode.
	Decode(data []byte) ([]any, error)
}
