// Package transport
// Author: momentics <momentics@gmail.com>
//
// Raw file-descriptor plumbing for the RPC engines: socketpair
// creation, nonblocking mode, half-close, and thin read/write wrappers
// with EINTR retry and EAGAIN classification. The engines own their
// descriptor exclusively; nothing here is safe for concurrent use on
// one fd.
package transport
