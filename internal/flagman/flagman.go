// Package flagman implements a termination-detection counting latch.
//
// Named after the traffic control workers who manage two-way traffic on
// blind single-lane roads: they count the cars going in and block opposing
// traffic until the same number have come out. Here the "cars" are
// outstanding directory jobs.
package flagman

import "sync"

// Flagman is a one-shot counting latch. It holds an internal mutex while
// the outstanding count is nonzero and releases it the instant the count
// returns to zero, so Wait can block on quiescence without polling or a
// predicate loop.
type Flagman struct {
	completion sync.Mutex
	countMu    sync.Mutex
	count      int
}

// New returns a Flagman with a zero outstanding count.
func New() *Flagman {
	return &Flagman{}
}

// Acquire records one more outstanding job. The first Acquire from zero
// takes the completion lock, so a concurrent Wait blocks until matching
// Releases bring the count back to zero.
func (f *Flagman) Acquire() {
	f.countMu.Lock()
	defer f.countMu.Unlock()
	if f.count == 0 {
		f.completion.Lock()
	}
	f.count++
}

// Release records one job as finished. Releasing a zero counter is a
// silent no-op. The Release that brings the count back to zero drops the
// completion lock, unblocking any waiter.
func (f *Flagman) Release() {
	f.countMu.Lock()
	defer f.countMu.Unlock()
	if f.count == 0 {
		return
	}
	f.count--
	if f.count == 0 {
		f.completion.Unlock()
	}
}

// Wait blocks until the outstanding count reaches zero. It may be called
// from a goroutine that never called Acquire or Release itself.
func (f *Flagman) Wait() {
	f.completion.Lock()
	f.completion.Unlock()
}
