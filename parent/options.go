// File: parent/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package parent

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/momentics/forkrpc/api"
	"github.com/momentics/forkrpc/codec"
	"github.com/momentics/forkrpc/reactor"
)

// Mode selects which child engine the peer is running. It must match:
// the pending-reply bookkeeping differs between the two.
type Mode int

const (
	// ModeBlocking pairs with child.ServeBlocking: responses arrive in
	// strict request order.
	ModeBlocking Mode = iota

	// ModeCooperative pairs with child.ServeCooperative: responses may
	// arrive in any order and are matched by id.
	ModeCooperative
)

func (m Mode) String() string {
	switch m {
	case ModeBlocking:
		return "blocking"
	case ModeCooperative:
		return "cooperative"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Options configures Spawn. Callbacks run on the engine's loop
// goroutine and must not block it.
type Options struct {
	// Mode must match the engine running in the child.
	Mode Mode

	// Codec is the serializer pair, shared with the child. Defaults to
	// codec.Strings.
	Codec api.Codec

	// OnEvent receives every event frame the child emits.
	OnEvent func(values []any)

	// OnError fires at most once, on the terminal failure of the
	// connection. After it fires the handle is unusable and pending
	// replies have been dropped. When absent, errors fall back to
	// OnEvent("error", msg), then to a fatal log.
	OnError func(err error)

	// OnDestroy fires at most once, when the stream ended cleanly with
	// no replies outstanding. Mutually exclusive with OnError.
	OnDestroy func()

	// Logger receives engine diagnostics. Defaults to zap's production
	// logger.
	Logger *zap.Logger

	// Loop, when set, shares an existing reactor with other engines;
	// the caller runs it. When nil the engine owns a loop on its own
	// goroutine.
	Loop *reactor.Loop

	// Init is an opaque value for the external forker that prepares
	// the child; the engine stores it untouched (see Handle.Init).
	Init any
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
