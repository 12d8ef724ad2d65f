// File: child/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package child

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/momentics/forkrpc/api"
	"github.com/momentics/forkrpc/codec"
)

// Options configures a child engine. The zero value selects the
// Strings serializer and a production logger.
type Options struct {
	// Codec must match the serializer the parent was spawned with.
	Codec api.Codec

	// Logger receives engine diagnostics. Defaults to zap's production
	// logger.
	Logger *zap.Logger

	// ExitHook, cooperative mode only, replaces the default process
	// exit after a clean drain: when set, the engine invokes it and
	// ServeCooperative returns instead of calling os.Exit.
	ExitHook func()
}

func (o Options) withDefaults() (Options, error) {
	if o.Codec == nil {
		o.Codec = codec.Strings
	}
	if o.Logger == nil {
		logger, err := zap.NewProduction()
		if err != nil {
			return o, fmt.Errorf("building logger: %w", err)
		}
		o.Logger = logger
	}
	return o, nil
}
