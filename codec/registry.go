// File: codec/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package codec

import (
	"fmt"

	"github.com/momentics/forkrpc/api"
)

// Serializer names accepted by Lookup.
const (
	NameStrings = "strings"
	NameJSON    = "json"
	NameGob     = "gob"
)

var registry = map[string]api.Codec{
	NameStrings: Strings,
	NameJSON:    JSON,
	NameGob:     Gob,
}

// Lookup selects a serializer by name. Both endpoints of a connection
// must resolve the same name.
func Lookup(name string) (api.Codec, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("codec: unknown serializer %q", name)
	}
	return c, nil
}
