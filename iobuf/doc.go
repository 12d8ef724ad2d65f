// Package iobuf
// Author: momentics <momentics@gmail.com>
//
// Rolling I/O buffers shared by all three protocol engines: a read
// buffer that grows geometrically so a single read syscall can always
// make meaningful progress, and an append-only write buffer drained by
// nonblocking writes with partial-write resumption.
package iobuf
