// File: child/blocking.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package child

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/momentics/forkrpc/api"
	"github.com/momentics/forkrpc/iobuf"
	"github.com/momentics/forkrpc/protocol"
	"github.com/momentics/forkrpc/transport"
)

// ServeBlocking runs the serial child engine on fd until the parent
// half-closes. One request is in flight at a time; responses leave in
// exact request order. Only synchronous syscalls are used.
//
// A clean peer EOF half-closes the write side and returns nil. Every
// fault (read/write error, framing or serializer failure, handler
// error) closes the descriptor and returns a diagnostic; the caller is
// the child process main and is expected to exit nonzero on it.
func ServeBlocking(fd int, h api.Handler, opts Options) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}
	log := opts.Logger.Named("child").With(zap.String("engine", "blocking"))

	if err := transport.SetNonblock(fd, false); err != nil {
		transport.Close(fd)
		return fmt.Errorf("set blocking: %w", err)
	}

	em := &syncEmitter{fd: fd, codec: opts.Codec}
	rbuf := iobuf.NewReadBuffer()

	for {
		n, err := transport.Read(fd, rbuf.Tail())
		if err != nil {
			transport.Close(fd)
			return fmt.Errorf("read: %w", err)
		}
		if n == 0 {
			// Parent is done with us.
			transport.CloseWrite(fd)
			transport.Close(fd)
			log.Debug("peer closed, exiting cleanly")
			return nil
		}
		rbuf.Advance(n)

		for {
			f, consumed, err := protocol.Decode(rbuf.Window())
			if err != nil {
				transport.Close(fd)
				return fmt.Errorf("decode frame: %w", err)
			}
			if consumed == 0 {
				break
			}
			rbuf.Discard(consumed)
			if err := serveOne(fd, h, em, opts, f); err != nil {
				log.Error("request failed", zap.Uint32("id", f.ID), zap.Error(err))
				transport.Close(fd)
				return err
			}
		}
	}
}

func serveOne(fd int, h api.Handler, em api.Emitter, opts Options, f protocol.Frame) error {
	if f.IsEvent() {
		return fmt.Errorf("event frame received from parent: %w", api.ErrProtocol)
	}
	args, err := opts.Codec.Decode(f.Payload)
	if err != nil {
		return fmt.Errorf("decode request %d: %w", f.ID, err)
	}
	values, err := h(em, args)
	if err != nil {
		return fmt.Errorf("handler: %w", err)
	}
	payload, err := opts.Codec.Encode(values)
	if err != nil {
		return fmt.Errorf("encode response %d: %w", f.ID, err)
	}
	if err := transport.WriteFull(fd, protocol.EncodeResponse(f.ID, payload)); err != nil {
		return fmt.Errorf("write response %d: %w", f.ID, err)
	}
	return nil
}

// syncEmitter writes event frames straight to the socket. Emission is
// synchronous, so events a handler emits before returning reach the
// parent ahead of the handler's own response.
type syncEmitter struct {
	fd    int
	codec api.Codec
}

func (e *syncEmitter) Emit(values ...any) error {
	payload, err := e.codec.Encode(values)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := transport.WriteFull(e.fd, protocol.EncodeEvent(payload)); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
