// File: reactor/timer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"container/heap"
	"time"
)

// Timer is a one-shot timer owned by a Loop. Timers are loop-confined:
// both AfterFunc and Stop must run on the loop goroutine.
type Timer struct {
	when    time.Time
	f       func()
	index   int
	stopped bool
}

// Stop cancels the timer if it has not fired yet.
func (t *Timer) Stop() {
	t.stopped = true
}

// timerHeap orders timers by deadline. Stopped timers are skipped
// lazily when they surface at the root.
type timerHeap []*Timer

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].when.Before(h[j].when) }
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *timerHeap) Push(x any)         { t := x.(*Timer); t.index = len(*h); *h = append(*h, t) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// fire pops and runs every timer due at now. Fired callbacks may push
// new timers.
func (h *timerHeap) fire(now time.Time) {
	for h.Len() > 0 {
		next := (*h)[0]
		if next.stopped {
			heap.Pop(h)
			continue
		}
		if next.when.After(now) {
			return
		}
		heap.Pop(h)
		next.f()
	}
}

// next returns the epoll wait timeout in milliseconds: -1 when no timer
// is armed, otherwise the (rounded-up, non-negative) time until the
// earliest deadline.
func (h timerHeap) next(now time.Time) int {
	if len(h) == 0 {
		return -1
	}
	d := h[0].when.Sub(now)
	if d <= 0 {
		return 0
	}
	ms := (d + time.Millisecond - 1) / time.Millisecond
	return int(ms)
}
