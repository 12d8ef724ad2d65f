// File: iobuf/writebuffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package iobuf

// WriteBuffer holds encoded frames awaiting transmission. Frames are
// appended whole; the front is consumed in arbitrary-sized chunks as
// nonblocking writes succeed, so a partial write simply leaves the
// unsent suffix for the next writable cycle.
type WriteBuffer struct {
	buf []byte
}

// Append queues p after any pending bytes.
func (w *WriteBuffer) Append(p []byte) {
	w.buf = append(w.buf, p...)
}

// Bytes returns the pending bytes in transmission order.
func (w *WriteBuffer) Bytes() []byte { return w.buf }

// Consume drops the n-byte prefix that was written to the socket.
func (w *WriteBuffer) Consume(n int) {
	w.buf = w.buf[:copy(w.buf, w.buf[n:])]
}

// Len returns the number of pending bytes.
func (w *WriteBuffer) Len() int { return len(w.buf) }

// Empty reports whether all queued bytes have been written.
func (w *WriteBuffer) Empty() bool { return len(w.buf) == 0 }
