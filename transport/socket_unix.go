//go:build linux || darwin

// File: transport/socket_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Socketpair returns a connected bidirectional stream pair. One end is
// kept by the parent engine, the other is inherited by (or handed to)
// the child engine. Both ends are close-on-exec; callers clear the flag
// on the descriptor they pass across a fork boundary.
func Socketpair() (parentFD, childFD int, err error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("socketpair: %w", err)
	}
	unix.CloseOnExec(fds[0])
	unix.CloseOnExec(fds[1])
	return fds[0], fds[1], nil
}

// SetNonblock toggles O_NONBLOCK on fd.
func SetNonblock(fd int, nonblocking bool) error {
	return unix.SetNonblock(fd, nonblocking)
}

// CloseWrite half-closes the write side, signalling EOF to the peer
// while leaving the read side open for draining.
func CloseWrite(fd int) error {
	return unix.Shutdown(fd, unix.SHUT_WR)
}

// Close releases the descriptor.
func Close(fd int) error {
	return unix.Close(fd)
}

// Read reads once into p, retrying on EINTR. A zero count with nil
// error is EOF.
func Read(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Read(fd, p)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

// Write writes once from p, retrying on EINTR. Short writes are
// normal; the caller resumes from the unwritten suffix.
func Write(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Write(fd, p)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

// WriteFull writes all of p, looping over partial writes. Intended for
// blocking descriptors.
func WriteFull(fd int, p []byte) error {
	for len(p) > 0 {
		n, err := Write(fd, p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// IsTemporary reports whether err is the nonblocking would-block
// condition rather than a real failure.
func IsTemporary(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}
