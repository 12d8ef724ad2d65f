// Package protocol
// Author: momentics <momentics@gmail.com>
//
// Wire framing for the parent/child RPC stream. One layout is used
// symmetrically in both directions and for all frame kinds:
//
//	uint32 id | uint32 length | payload[length]    (network byte order)
//
// id 0 is reserved for events (child to parent). Frames are the only
// objects on the wire; Decode reassembles them from a rolling buffer
// that may hold partial data.
package protocol
