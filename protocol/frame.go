// File: protocol/frame.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import "encoding/binary"

const (
	// HeaderSize is the fixed frame header length: 4-byte id followed
	// by a 4-byte payload length, both network byte order.
	HeaderSize = 8

	// EventID is the id sentinel marking an event frame.
	EventID uint32 = 0

	// MaxPayload is the largest payload a header can declare.
	MaxPayload = 1<<32 - 1
)

// Frame is a decoded unit of transfer. Payload is detached from the
// buffer it was decoded out of.
type Frame struct {
	ID      uint32
	Payload []byte
}

// IsEvent reports whether the frame is an uncorrelated event.
func (f Frame) IsEvent() bool { return f.ID == EventID }

// AppendFrame appends one encoded frame to dst and returns the extended
// slice. All three frame kinds share this shape.
func AppendFrame(dst []byte, id uint32, payload []byte) []byte {
	var hdr [HeaderSize]byte
	binary.BigEndian.PutUint32(hdr[0:4], id)
	binary.BigEndian.PutUint32(hdr[4:8], uint32(len(payload)))
	dst = append(dst, hdr[:]...)
	return append(dst, payload...)
}

// EncodeRequest encodes a parent-to-child request. id must be nonzero.
func EncodeRequest(id uint32, payload []byte) []byte {
	return AppendFrame(nil, id, payload)
}

// EncodeResponse encodes a child-to-parent response. id must be nonzero
// and must echo the request that produced it.
func EncodeResponse(id uint32, payload []byte) []byte {
	return AppendFrame(nil, id, payload)
}

// EncodeEvent encodes an uncorrelated child-to-parent event.
func EncodeEvent(payload []byte) []byte {
	return AppendFrame(nil, EventID, payload)
}

// Decode attempts to decode one frame from the prefix of buf.
// It is a pure function of the prefix. If fewer than
// HeaderSize+declared-length bytes are available it returns
// (Frame{}, 0, nil); the caller reads more and retries. On success the
// returned consumed count covers header plus payload, and the payload
// is copied out so the caller may discard or reuse the buffer.
func Decode(buf []byte) (Frame, int, error) {
	if len(buf) < HeaderSize {
		return Frame{}, 0, nil // incomplete
	}
	id := binary.BigEndian.Uint32(buf[0:4])
	length := binary.BigEndian.Uint32(buf[4:8])
	total := uint64(HeaderSize) + uint64(length)
	if uint64(len(buf)) < total {
		return Frame{}, 0, nil // incomplete
	}
	payload := make([]byte, length)
	copy(payload, buf[HeaderSize:total])
	return Frame{ID: id, Payload: payload}, int(total), nil
}
