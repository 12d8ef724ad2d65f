// File: fake/emitter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fake

import (
	"sync"
	"time"
)

// Emitter records emitted event tuples and scheduled timers instead of
// touching a socket. Timers do not fire on their own; tests drive them
// with FireTimers.
type Emitter struct {
	mu     sync.Mutex
	events [][]any
	timers []func()
}

// Emit records values as one event.
func (e *Emitter) Emit(values ...any) error {
	e.mu.Lock()
	e.events = append(e.events, values)
	e.mu.Unlock()
	return nil
}

// AfterFunc records f; the delay is ignored.
func (e *Emitter) AfterFunc(_ time.Duration, f func()) {
	e.mu.Lock()
	e.timers = append(e.timers, f)
	e.mu.Unlock()
}

// Events returns the recorded event tuples in emission order.
func (e *Emitter) Events() [][]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]any(nil), e.events...)
}

// FireTimers runs every scheduled function in registration order and
// clears the schedule. Functions scheduled while firing run on the
// next call.
func (e *Emitter) FireTimers() {
	e.mu.Lock()
	due := e.timers
	e.timers = nil
	e.mu.Unlock()
	for _, f := range due {
		f()
	}
}
