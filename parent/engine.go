// File: parent/engine.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package parent

import (
	"fmt"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momentics/forkrpc/api"
	"github.com/momentics/forkrpc/iobuf"
	"github.com/momentics/forkrpc/protocol"
	"github.com/momentics/forkrpc/reactor"
	"github.com/momentics/forkrpc/transport"
)

const (
	stateRunning int32 = iota
	stateShuttingDown
	stateClosed
)

// Handle is the call surface of a spawned parent engine. Call and
// Close are safe from any goroutine; everything they trigger runs on
// the engine's loop.
type Handle struct {
	e *engine
}

// pendingEntry is one blocking-mode reply slot. Responses must surface
// in FIFO order; the stored id is only checked against the wire.
type pendingEntry struct {
	id    uint32
	reply func(values []any)
}

type engine struct {
	fd       int
	mode     Mode
	codec    api.Codec
	loop     *reactor.Loop
	ownsLoop bool
	log      *zap.Logger

	onEvent   func(values []any)
	onError   func(err error)
	onDestroy func()
	init      any

	// state is written on the loop goroutine and read from callers.
	state atomic.Int32

	rbuf       *iobuf.ReadBuffer
	wbuf       *iobuf.WriteBuffer
	interest   reactor.EventType
	halfClosed bool
	destroyed  bool
	errored    bool

	fifo   *queue.Queue // blocking mode: ordered pendingEntry
	byID   map[uint32]func(values []any)
	ids    map[uint32]struct{}
	nextID uint32
}

// Spawn takes ownership of fd, one end of a connected stream pair
// whose other end is driven by a child engine in the matching mode.
// The descriptor is switched to nonblocking; the engine owns it until
// the connection ends.
func Spawn(fd int, opts Options) (*Handle, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	e := &engine{
		fd:        fd,
		mode:      opts.Mode,
		codec:     opts.Codec,
		onEvent:   opts.OnEvent,
		onError:   opts.OnError,
		onDestroy: opts.OnDestroy,
		init:      opts.Init,
		rbuf:      iobuf.NewReadBuffer(),
		wbuf:      &iobuf.WriteBuffer{},
		interest:  reactor.EventRead,
		fifo:      queue.New(),
		byID:      make(map[uint32]func(values []any)),
		ids:       make(map[uint32]struct{}),
	}
	e.log = opts.Logger.Named("parent").With(
		zap.String("conn", uuid.NewString()[:8]),
		zap.Stringer("mode", opts.Mode),
	)

	if err := transport.SetNonblock(fd, true); err != nil {
		transport.Close(fd)
		return nil, fmt.Errorf("set nonblocking: %w", err)
	}

	if opts.Loop != nil {
		e.loop = opts.Loop
		e.loop.Submit(func() {
			if err := e.loop.Register(fd, e.interest, e.onReady); err != nil {
				e.fatal(fmt.Errorf("register: %w", err))
			}
		})
	} else {
		loop, err := reactor.NewLoop()
		if err != nil {
			transport.Close(fd)
			return nil, err
		}
		e.loop = loop
		e.ownsLoop = true
		if err := loop.Register(fd, e.interest, e.onReady); err != nil {
			transport.Close(fd)
			loop.Stop()
			_ = loop.Run() // drains the pending Stop and releases the poller
			return nil, fmt.Errorf("register: %w", err)
		}
		go func() {
			if err := loop.Run(); err != nil {
				e.log.Error("loop failed", zap.Error(err))
			}
		}()
	}

	e.log.Debug("spawned")
	return &Handle{e: e}, nil
}

// Init returns the opaque value passed through Options.Init.
func (h *Handle) Init() any { return h.e.init }

// Call serializes args, assigns a request id and queues the frame for
// transmission. It never blocks: the reply callback fires later, on
// the loop goroutine, when the matching response arrives. Calling a
// closed or draining handle is a programmer error and reports
// api.ErrClosed.
func (h *Handle) Call(args []any, reply func(values []any)) error {
	e := h.e
	if e.state.Load() != stateRunning {
		return api.ErrClosed
	}
	payload, err := e.codec.Encode(args)
	if err != nil {
		err = fmt.Errorf("encode request: %w", err)
		e.loop.Submit(func() { e.fatal(err) })
		return err
	}
	e.loop.Submit(func() {
		if e.state.Load() != stateRunning {
			// Lost the race against Close or a terminal error.
			e.log.Warn("call dropped, engine no longer running")
			return
		}
		id := e.assignID()
		if e.mode == ModeBlocking {
			e.fifo.Add(pendingEntry{id: id, reply: reply})
		} else {
			e.byID[id] = reply
		}
		e.ids[id] = struct{}{}
		e.wbuf.Append(protocol.EncodeRequest(id, payload))
		e.setInterest(e.interest | reactor.EventWrite)
	})
	return nil
}

// Close releases the handle: no new calls are accepted, outstanding
// requests drain, their replies are still awaited, and the write side
// half-closes once the outbound buffer empties. Idempotent.
func (h *Handle) Close() error {
	e := h.e
	e.loop.Submit(func() {
		if e.state.Load() != stateRunning {
			return
		}
		e.state.Store(stateShuttingDown)
		e.log.Debug("handle released, draining")
		if e.wbuf.Empty() {
			e.halfClose()
		}
	})
	return nil
}

// assignID picks the next request id: monotonic modulo 2^32, skipping
// the event sentinel and every id still pending. The retry loop is
// bounded by the pending count.
func (e *engine) assignID() uint32 {
	for {
		e.nextID++
		if e.nextID == protocol.EventID {
			continue
		}
		if _, dup := e.ids[e.nextID]; !dup {
			return e.nextID
		}
	}
}

func (e *engine) onReady(ev reactor.EventType) {
	if e.destroyed || e.errored {
		return
	}
	if ev&(reactor.EventRead|reactor.EventError) != 0 {
		e.onReadable()
	}
	if e.destroyed || e.errored {
		return
	}
	if ev&reactor.EventWrite != 0 {
		e.onWritable()
	}
}

func (e *engine) onReadable() {
	n, err := transport.Read(e.fd, e.rbuf.Tail())
	if err != nil {
		if transport.IsTemporary(err) {
			return
		}
		e.fatal(fmt.Errorf("read: %w", err))
		return
	}
	if n == 0 {
		if e.pendingCount() > 0 {
			e.fatal(api.ErrUnexpectedEOF)
		} else {
			e.destroy()
		}
		return
	}
	e.rbuf.Advance(n)

	for !e.destroyed && !e.errored {
		f, consumed, err := protocol.Decode(e.rbuf.Window())
		if err != nil {
			e.fatal(fmt.Errorf("decode frame: %w", err))
			return
		}
		if consumed == 0 {
			return
		}
		e.rbuf.Discard(consumed)
		e.dispatch(f)
	}
}

func (e *engine) dispatch(f protocol.Frame) {
	if f.IsEvent() {
		values, err := e.codec.Decode(f.Payload)
		if err != nil {
			e.fatal(fmt.Errorf("decode event: %w", err))
			return
		}
		if e.onEvent == nil {
			e.log.Warn("event dropped, no OnEvent handler")
			return
		}
		e.onEvent(values)
		return
	}

	var reply func(values []any)
	if e.mode == ModeBlocking {
		if e.fifo.Length() == 0 {
			e.fatal(api.ErrProtocol)
			return
		}
		ent := e.fifo.Peek().(pendingEntry)
		if ent.id != f.ID {
			// Child violated FIFO order.
			e.fatal(api.ErrProtocol)
			return
		}
		e.fifo.Remove()
		reply = ent.reply
	} else {
		cb, ok := e.byID[f.ID]
		if !ok {
			e.fatal(api.ErrProtocol)
			return
		}
		delete(e.byID, f.ID)
		reply = cb
	}
	delete(e.ids, f.ID)

	values, err := e.codec.Decode(f.Payload)
	if err != nil {
		e.fatal(fmt.Errorf("decode response %d: %w", f.ID, err))
		return
	}
	reply(values)
}

func (e *engine) onWritable() {
	if !e.wbuf.Empty() {
		n, err := transport.Write(e.fd, e.wbuf.Bytes())
		if err != nil {
			if transport.IsTemporary(err) {
				return
			}
			e.fatal(fmt.Errorf("write: %w", err))
			return
		}
		e.wbuf.Consume(n)
	}
	if e.wbuf.Empty() {
		e.setInterest(e.interest &^ reactor.EventWrite)
		if e.state.Load() == stateShuttingDown {
			e.halfClose()
		}
	}
}

func (e *engine) halfClose() {
	if e.halfClosed {
		return
	}
	e.halfClosed = true
	if err := transport.CloseWrite(e.fd); err != nil {
		e.fatal(fmt.Errorf("half-close: %w", err))
	}
}

// destroy handles the clean end of the stream: peer EOF with nothing
// outstanding.
func (e *engine) destroy() {
	if e.destroyed || e.errored {
		return
	}
	e.destroyed = true
	e.state.Store(stateClosed)
	e.teardown()
	e.log.Debug("destroyed cleanly")
	if e.onDestroy != nil {
		e.onDestroy()
	}
}

// fatal handles every terminal condition. Pending replies are dropped
// without notification; per-call error delivery is explicitly not part
// of this protocol.
func (e *engine) fatal(err error) {
	if e.destroyed || e.errored {
		return
	}
	e.errored = true
	e.state.Store(stateClosed)
	dropped := e.pendingCount()
	e.fifo = queue.New()
	e.byID = make(map[uint32]func(values []any))
	e.ids = make(map[uint32]struct{})
	e.teardown()
	e.log.Error("connection failed", zap.Error(err), zap.Int("dropped_replies", dropped))

	switch {
	case e.onError != nil:
		e.onError(err)
	case e.onEvent != nil:
		e.onEvent([]any{"error", err.Error()})
	default:
		e.log.Fatal("no error handler for terminal failure", zap.Error(err))
	}
}

func (e *engine) teardown() {
	if err := e.loop.Unregister(e.fd); err != nil {
		e.log.Warn("unregister", zap.Error(err))
	}
	transport.Close(e.fd)
	if e.ownsLoop {
		e.loop.Stop()
	}
}

func (e *engine) pendingCount() int {
	if e.mode == ModeBlocking {
		return e.fifo.Length()
	}
	return len(e.byID)
}

func (e *engine) setInterest(interest reactor.EventType) {
	if interest == e.interest {
		return
	}
	if err := e.loop.Modify(e.fd, interest); err != nil {
		e.fatal(fmt.Errorf("modify interest: %w", err))
		return
	}
	e.interest = interest
}
