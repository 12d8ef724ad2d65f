// Package api
// Author: momentics <momentics@gmail.com>
//
// Shared contract types for the forkrpc library: the serializer pair,
// the child-side handler shapes, the emit capability, and the sentinel
// errors used across parent and child engines.
package api
