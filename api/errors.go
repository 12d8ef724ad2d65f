// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "fmt"

// Common errors used across the library.
var (
	// ErrClosed reports a call on a handle that has been closed or has
	// entered a terminal error state.
	ErrClosed = fmt.Errorf("engine is closed")

	// ErrUnexpectedEOF reports peer EOF while replies were still
	// outstanding.
	ErrUnexpectedEOF = fmt.Errorf("unexpected eof")

	// ErrProtocol reports a response frame whose id matches no pending
	// request, or a FIFO-order violation in blocking mode.
	ErrProtocol = fmt.Errorf("unexpected data from child")
)
