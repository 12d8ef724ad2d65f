//go:build !linux

// File: reactor/loop_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import (
	"errors"
	"time"
)

// Loop is unavailable on this platform; NewLoop always fails.
type Loop struct{}

// NewLoop returns an error for unsupported platforms.
func NewLoop() (*Loop, error) {
	return nil, errors.New("reactor: this platform is not supported")
}

func (l *Loop) Register(fd int, interest EventType, cb FDCallback) error { return errUnsupported() }
func (l *Loop) Modify(fd int, interest EventType) error                  { return errUnsupported() }
func (l *Loop) Unregister(fd int) error                                  { return errUnsupported() }
func (l *Loop) AfterFunc(d time.Duration, f func()) *Timer               { return &Timer{} }
func (l *Loop) Submit(f func())                                          {}
func (l *Loop) Stop()                                                    {}
func (l *Loop) Run() error                                               { return errUnsupported() }

func errUnsupported() error {
	return errors.New("reactor: this platform is not supported")
}
