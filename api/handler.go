// File: api/handler.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "time"

// Emitter is the child-side capability for sending out-of-band events
// to the parent. Any handler may emit at any time; events are never
// correlated to a request and never consume a pending reply.
type Emitter interface {
	// Emit serializes values and sends them as one event frame.
	Emit(values ...any) error
}

// AsyncEmitter extends Emitter with the reactor timer surface available
// inside the cooperative child. Scheduled functions run on the engine's
// loop goroutine, so they may call Emit and Done callbacks directly.
type AsyncEmitter interface {
	Emitter

	// AfterFunc schedules f to run once after d.
	AfterFunc(d time.Duration, f func())
}

// Handler is the blocking-mode request function. Exactly one Handler
// invocation is in flight at a time; the returned tuple becomes the
// response. A non-nil error is fatal for the child: no response is
// produced and the engine shuts down with a diagnostic.
type Handler func(em Emitter, args []any) ([]any, error)

// Done completes one cooperative-mode request. The values become the
// response for the request that produced this Done. Each Done must be
// called exactly once; calls after the first are ignored.
type Done func(values ...any)

// AsyncHandler is the cooperative-mode request function. It must not
// block the loop; long work is re-entered through em.AfterFunc. Any
// number of invocations may be outstanding, each holding its own done.
type AsyncHandler func(done Done, em AsyncEmitter, args []any)
