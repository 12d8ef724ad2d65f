// File: child/cooperative.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package child

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/forkrpc/api"
	"github.com/momentics/forkrpc/iobuf"
	"github.com/momentics/forkrpc/protocol"
	"github.com/momentics/forkrpc/reactor"
	"github.com/momentics/forkrpc/transport"
)

// ServeCooperative runs the concurrent child engine on fd. Handlers
// complete asynchronously through their done callback, so any number
// of requests may be outstanding and responses may leave out of
// submission order. Events and responses share one outbound buffer:
// the wire carries them in exactly the order the handlers enqueued
// them.
//
// The engine exits once the parent has half-closed, every outstanding
// done has fired and the outbound buffer has drained. The default exit
// is os.Exit(0); Options.ExitHook replaces it, making ServeCooperative
// return instead. Faults return a diagnostic.
func ServeCooperative(fd int, h api.AsyncHandler, opts Options) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}
	log := opts.Logger.Named("child").With(zap.String("engine", "cooperative"))

	if err := transport.SetNonblock(fd, true); err != nil {
		transport.Close(fd)
		return fmt.Errorf("set nonblocking: %w", err)
	}
	loop, err := reactor.NewLoop()
	if err != nil {
		transport.Close(fd)
		return err
	}

	e := &coopEngine{
		fd:       fd,
		loop:     loop,
		codec:    opts.Codec,
		log:      log,
		h:        h,
		rbuf:     iobuf.NewReadBuffer(),
		wbuf:     &iobuf.WriteBuffer{},
		busy:     1, // parent is attached
		readOpen: true,
		interest: reactor.EventRead,
	}
	e.em = &asyncEmitter{e: e}

	if err := loop.Register(fd, reactor.EventRead, e.onReady); err != nil {
		transport.Close(fd)
		loop.Stop()
		_ = loop.Run() // drains the pending Stop and releases the poller
		return err
	}

	runErr := loop.Run()
	transport.Close(fd)
	switch {
	case e.failure != nil:
		log.Error("engine failed", zap.Error(e.failure))
		return e.failure
	case runErr != nil:
		return runErr
	}

	log.Debug("drained, exiting cleanly")
	if opts.ExitHook != nil {
		opts.ExitHook()
		return nil
	}
	os.Exit(0)
	return nil
}

// coopEngine state is confined to the loop goroutine.
type coopEngine struct {
	fd    int
	loop  *reactor.Loop
	codec api.Codec
	log   *zap.Logger
	h     api.AsyncHandler
	em    *asyncEmitter

	rbuf *iobuf.ReadBuffer
	wbuf *iobuf.WriteBuffer

	// busy starts at 1 for the attached parent, gains 1 per inbound
	// request and loses 1 per completed response or on read-side EOF.
	busy     int
	readOpen bool
	interest reactor.EventType
	finished bool
	failure  error
}

func (e *coopEngine) onReady(ev reactor.EventType) {
	if e.finished {
		return
	}
	if ev&(reactor.EventRead|reactor.EventError) != 0 && e.readOpen {
		e.onReadable()
	}
	if e.finished {
		return
	}
	if ev&reactor.EventWrite != 0 {
		e.onWritable()
	}
}

func (e *coopEngine) onReadable() {
	n, err := transport.Read(e.fd, e.rbuf.Tail())
	if err != nil {
		if transport.IsTemporary(err) {
			return
		}
		e.fail(fmt.Errorf("read: %w", err))
		return
	}
	if n == 0 {
		// Parent half-closed: cancel the attachment bias and flush
		// whatever the outstanding handlers still produce.
		e.log.Debug("peer half-closed", zap.Int("busy", e.busy-1))
		e.readOpen = false
		e.setInterest(e.interest &^ reactor.EventRead)
		e.busy--
		e.maybeFinish()
		return
	}
	e.rbuf.Advance(n)

	for !e.finished {
		f, consumed, err := protocol.Decode(e.rbuf.Window())
		if err != nil {
			e.fail(fmt.Errorf("decode frame: %w", err))
			return
		}
		if consumed == 0 {
			return
		}
		e.rbuf.Discard(consumed)
		if f.IsEvent() {
			e.fail(fmt.Errorf("event frame received from parent: %w", api.ErrProtocol))
			return
		}
		args, err := e.codec.Decode(f.Payload)
		if err != nil {
			e.fail(fmt.Errorf("decode request %d: %w", f.ID, err))
			return
		}
		e.busy++
		e.h(e.newDone(f.ID), e.em, args)
	}
}

// newDone binds a response slot to a request id. The callback is
// single-shot; extra invocations are ignored.
func (e *coopEngine) newDone(id uint32) api.Done {
	called := false
	return func(values ...any) {
		if called || e.finished {
			return
		}
		called = true
		payload, err := e.codec.Encode(values)
		if err != nil {
			e.fail(fmt.Errorf("encode response %d: %w", id, err))
			return
		}
		e.wbuf.Append(protocol.EncodeResponse(id, payload))
		e.setInterest(e.interest | reactor.EventWrite)
		e.busy--
		e.maybeFinish()
	}
}

func (e *coopEngine) onWritable() {
	if !e.wbuf.Empty() {
		n, err := transport.Write(e.fd, e.wbuf.Bytes())
		if err != nil {
			if transport.IsTemporary(err) {
				return
			}
			e.fail(fmt.Errorf("write: %w", err))
			return
		}
		e.wbuf.Consume(n)
	}
	if e.wbuf.Empty() {
		e.setInterest(e.interest &^ reactor.EventWrite)
		e.maybeFinish()
	}
}

func (e *coopEngine) maybeFinish() {
	if e.finished || e.busy > 0 || !e.wbuf.Empty() {
		return
	}
	e.finished = true
	transport.CloseWrite(e.fd)
	e.loop.Unregister(e.fd)
	e.loop.Stop()
}

func (e *coopEngine) fail(err error) {
	if e.finished {
		return
	}
	e.finished = true
	e.failure = err
	e.loop.Unregister(e.fd)
	e.loop.Stop()
}

func (e *coopEngine) setInterest(interest reactor.EventType) {
	if e.finished || interest == e.interest {
		return
	}
	if err := e.loop.Modify(e.fd, interest); err != nil {
		e.fail(err)
		return
	}
	e.interest = interest
}

// asyncEmitter enqueues event frames on the shared outbound buffer, so
// events interleave with responses in enqueue order.
type asyncEmitter struct {
	e *coopEngine
}

func (a *asyncEmitter) Emit(values ...any) error {
	e := a.e
	if e.finished {
		return api.ErrClosed
	}
	payload, err := e.codec.Encode(values)
	if err != nil {
		e.fail(fmt.Errorf("encode event: %w", err))
		return err
	}
	e.wbuf.Append(protocol.EncodeEvent(payload))
	e.setInterest(e.interest | reactor.EventWrite)
	return nil
}

func (a *asyncEmitter) AfterFunc(d time.Duration, f func()) {
	a.e.loop.AfterFunc(d, f)
}
