// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

// EventType is a bitmask of readiness conditions delivered to an fd
// callback.
type EventType uint32

const (
	// EventRead indicates the descriptor is readable.
	EventRead EventType = 1 << iota
	// EventWrite indicates the descriptor is writable.
	EventWrite
	// EventError indicates an error or hangup condition; the owner
	// should attempt a read to collect the error or the EOF.
	EventError
)

// FDCallback receives readiness notifications for one descriptor. It
// always runs on the loop goroutine.
type FDCallback func(ev EventType)
