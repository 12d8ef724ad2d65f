//go:build linux

// File: reactor/loop_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7)-based loop implementation.

package reactor

import (
	"container/heap"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/eapache/queue"
	"golang.org/x/sys/unix"
)

// Loop is a single-threaded readiness loop. Run executes on exactly
// one goroutine; Register, Modify, Unregister and AfterFunc must be
// called from that goroutine (or before Run starts). Submit and Stop
// are safe from any goroutine.
type Loop struct {
	epfd   int
	wakeFD int

	mu      sync.Mutex
	submits *queue.Queue // of func()

	watches map[int]*fdWatch
	timers  timerHeap
	stopped bool
}

type fdWatch struct {
	interest EventType
	cb       FDCallback
}

// NewLoop constructs an epoll-backed loop with its wakeup eventfd
// already registered.
func NewLoop() (*Loop, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	wakeFD, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		unix.Close(epfd)
		return nil, fmt.Errorf("eventfd: %w", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakeFD)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakeFD, &ev); err != nil {
		unix.Close(epfd)
		unix.Close(wakeFD)
		return nil, fmt.Errorf("epoll ctl add wakeup: %w", err)
	}
	return &Loop{
		epfd:    epfd,
		wakeFD:  wakeFD,
		submits: queue.New(),
		watches: make(map[int]*fdWatch),
	}, nil
}

// Register adds fd to the watch set with the given initial interest.
func (l *Loop) Register(fd int, interest EventType, cb FDCallback) error {
	ev := unix.EpollEvent{Events: epollBits(interest), Fd: int32(fd)}
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl add: %w", err)
	}
	l.watches[fd] = &fdWatch{interest: interest, cb: cb}
	return nil
}

// Modify replaces the interest set for a registered fd.
func (l *Loop) Modify(fd int, interest EventType) error {
	w, ok := l.watches[fd]
	if !ok {
		return fmt.Errorf("reactor: fd %d is not registered", fd)
	}
	if w.interest == interest {
		return nil
	}
	ev := unix.EpollEvent{Events: epollBits(interest), Fd: int32(fd)}
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl mod: %w", err)
	}
	w.interest = interest
	return nil
}

// Unregister removes fd from the watch set.
func (l *Loop) Unregister(fd int) error {
	if _, ok := l.watches[fd]; !ok {
		return nil
	}
	delete(l.watches, fd)
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("epoll ctl del: %w", err)
	}
	return nil
}

// AfterFunc schedules f to run once on the loop goroutine after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) *Timer {
	t := &Timer{when: time.Now().Add(d), f: f}
	heap.Push(&l.timers, t)
	return t
}

// Submit enqueues f to run on the loop goroutine and wakes the loop.
func (l *Loop) Submit(f func()) {
	l.mu.Lock()
	l.submits.Add(f)
	l.mu.Unlock()
	l.wake()
}

// Stop asks the loop to exit after the current dispatch cycle.
func (l *Loop) Stop() {
	l.Submit(func() { l.stopped = true })
}

func (l *Loop) wake() {
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	// EAGAIN means the counter is already nonzero and a wakeup is
	// pending; a closed fd means the loop already exited.
	_, _ = unix.Write(l.wakeFD, buf[:])
}

// Run dispatches readiness events, timers and submitted functions
// until Stop. It owns the calling goroutine for the loop's lifetime.
func (l *Loop) Run() error {
	defer func() {
		unix.Close(l.epfd)
		unix.Close(l.wakeFD)
	}()

	events := make([]unix.EpollEvent, 64)
	for {
		l.runSubmits()
		if l.stopped {
			return nil
		}

		n, err := unix.EpollWait(l.epfd, events, l.timers.next(time.Now()))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("epoll wait: %w", err)
		}

		l.timers.fire(time.Now())

		for i := 0; i < n; i++ {
			fd := int(events[i].Fd)
			if fd == l.wakeFD {
				l.drainWake()
				continue
			}
			w, ok := l.watches[fd]
			if !ok {
				continue
			}
			w.cb(eventBits(events[i].Events))
		}
	}
}

func (l *Loop) runSubmits() {
	for {
		l.mu.Lock()
		if l.submits.Length() == 0 {
			l.mu.Unlock()
			return
		}
		f := l.submits.Remove().(func())
		l.mu.Unlock()
		f()
	}
}

func (l *Loop) drainWake() {
	var buf [8]byte
	_, _ = unix.Read(l.wakeFD, buf[:])
}

func epollBits(interest EventType) uint32 {
	var bits uint32
	if interest&EventRead != 0 {
		bits |= unix.EPOLLIN
	}
	if interest&EventWrite != 0 {
		bits |= unix.EPOLLOUT
	}
	return bits
}

func eventBits(raw uint32) EventType {
	var ev EventType
	if raw&unix.EPOLLIN != 0 {
		ev |= EventRead
	}
	if raw&unix.EPOLLOUT != 0 {
		ev |= EventWrite
	}
	if raw&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
		ev |= EventError
	}
	return ev
}
