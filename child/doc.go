// Package child
// Author: momentics <momentics@gmail.com>
//
// The two child-side protocol engines. ServeBlocking runs one request
// at a time over synchronous syscalls with minimal machinery;
// ServeCooperative multiplexes any number of in-flight requests inside
// a single reactor goroutine, completing each through an explicit done
// callback. Both hand the user function an emit capability for
// out-of-band events, and both half-close their write side before
// exiting so the parent observes a clean EOF.
package child
