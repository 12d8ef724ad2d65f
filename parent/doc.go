// Package parent
// Author: momentics <momentics@gmail.com>
//
// The parent-side protocol engine. Spawn takes ownership of one end of
// the inherited socket pair and returns a Handle whose Call method
// issues pipelined requests without ever blocking. Replies, events and
// lifecycle notifications are delivered through callbacks on the
// engine's loop goroutine. Closing the handle drains outstanding
// requests, half-closes the stream and waits for the child's EOF.
package parent
