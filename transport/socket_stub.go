//go:build !linux && !darwin

// File: transport/socket_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package transport

import "errors"

var errUnsupported = errors.New("transport: this platform is not supported")

func Socketpair() (parentFD, childFD int, err error)   { return 0, 0, errUnsupported }
func SetNonblock(fd int, nonblocking bool) error       { return errUnsupported }
func CloseWrite(fd int) error                          { return errUnsupported }
func Close(fd int) error                               { return errUnsupported }
func Read(fd int, p []byte) (int, error)               { return 0, errUnsupported }
func Write(fd int, p []byte) (int, error)              { return 0, errUnsupported }
func WriteFull(fd int, p []byte) error                 { return errUnsupported }
func IsTemporary(err error) bool                       { return false }
