// Package fake
// Author: momentics <momentics@gmail.com>
//
// Test doubles for handler-level unit tests: a recording emitter with
// manually fired timers, and a codec that fails on demand.
package fake
