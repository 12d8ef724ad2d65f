// File: child/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package child

import (
	"fmt"
	"sync"

	"github.com/momentics/forkrpc/api"
)

// The handler registry maps entry-point names to functions so an
// external forker can select the child's request function by name
// before the engine starts. Registration normally happens from init
// functions; lookups happen once, at engine start.
var (
	regMu         sync.RWMutex
	handlers      = make(map[string]api.Handler)
	asyncHandlers = make(map[string]api.AsyncHandler)
)

// Register installs a blocking-mode handler under name, replacing any
// previous registration.
func Register(name string, h api.Handler) {
	regMu.Lock()
	handlers[name] = h
	regMu.Unlock()
}

// RegisterAsync installs a cooperative-mode handler under name,
// replacing any previous registration.
func RegisterAsync(name string, h api.AsyncHandler) {
	regMu.Lock()
	asyncHandlers[name] = h
	regMu.Unlock()
}

// LookupHandler resolves a blocking-mode handler by name.
func LookupHandler(name string) (api.Handler, error) {
	regMu.RLock()
	h, ok := handlers[name]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("child: no handler registered as %q", name)
	}
	return h, nil
}

// LookupAsync resolves a cooperative-mode handler by name.
func LookupAsync(name string) (api.AsyncHandler, error) {
	regMu.RLock()
	h, ok := asyncHandlers[name]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("child: no async handler registered as %q", name)
	}
	return h, nil
}
