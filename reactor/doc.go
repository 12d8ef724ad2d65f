// Package reactor
// Author: momentics <momentics@gmail.com>
//
// Single-threaded readiness loop driving the event-driven RPC engines.
// The loop multiplexes readable/writable interest on raw descriptors
// (epoll on Linux), monotonic one-shot timers, and a cross-goroutine
// submit queue woken through an eventfd. Everything except Submit and
// Stop is confined to the loop goroutine.
package reactor
