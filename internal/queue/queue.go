// Package queue implements the bounded-priority FIFO that coordinates ff's
// directory-traversal worker pool.
//
// Entries are kept sorted by descending priority, stable within equal
// priorities, matching the teacher's walkItem queue
// (DanielLaubacher-gogrep/internal/walker/walker.go) but generalized from an
// unordered slice to a priority-ordered one, since the original always
// processed items breadth-first in arrival order and this queue must drain
// shallower directories before deeper ones (spec.md §4.4).
package queue

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// maxEntries bounds the weighted semaphore; the queue itself is unbounded
// in practice (directory fan-out rarely approaches this), so this is
// effectively "no cap" rather than true backpressure.
const maxEntries = 1 << 30

// entry is one linked-list node: a payload at a priority.
type entry struct {
	priority int
	payload  any // nil payload marks a terminator
	next     *entry
}

// Queue is a thread-safe, descending-priority FIFO with blocking Get.
type Queue struct {
	sem  *semaphore.Weighted
	mu   sync.Mutex
	head *entry
	tail *entry
}

// New returns an empty Queue.
func New() *Queue {
	// The semaphore starts fully held: each Put's Release(1) makes one unit
	// available, and each Get's Acquire(1) blocks until one is.
	sem := semaphore.NewWeighted(maxEntries)
	_ = sem.Acquire(context.Background(), maxEntries)
	return &Queue{sem: sem}
}

// Put inserts payload so the list remains sorted by descending priority,
// stable among equal priorities (a new entry at an existing priority goes
// after the existing run, preserving insertion order).
func (q *Queue) Put(payload any, priority int) {
	e := &entry{priority: priority, payload: payload}
	q.mu.Lock()
	if q.head == nil || priority > q.head.priority {
		e.next = q.head
		q.head = e
		if e.next == nil {
			q.tail = e
		}
	} else {
		prev := q.head
		for prev.next != nil && prev.next.priority >= priority {
			prev = prev.next
		}
		e.next = prev.next
		prev.next = e
		if e.next == nil {
			q.tail = e
		}
	}
	q.mu.Unlock()
	q.sem.Release(1)
}

// PutHead inserts payload at the head unconditionally, bypassing priority
// comparison — used by the orchestrator to seed root jobs ahead of any
// work a running worker might already have enqueued.
func (q *Queue) PutHead(payload any) {
	e := &entry{payload: payload}
	q.mu.Lock()
	e.next = q.head
	q.head = e
	if e.next == nil {
		q.tail = e
	}
	q.mu.Unlock()
	q.sem.Release(1)
}

// PutTail inserts payload at the tail unconditionally — used for
// terminators, which must strictly follow all work enqueued before
// quiescence.
func (q *Queue) PutTail(payload any) {
	e := &entry{payload: payload}
	q.mu.Lock()
	if q.tail == nil {
		q.head = e
		q.tail = e
	} else {
		q.tail.next = e
		q.tail = e
	}
	q.mu.Unlock()
	q.sem.Release(1)
}

// Get blocks until the queue is non-empty, then removes and returns the
// head payload. A nil payload is a terminator.
func (q *Queue) Get() any {
	// Acquire never fails with context.Background(): no deadline, no
	// cancellation, so the error return can only be nil.
	_ = q.sem.Acquire(context.Background(), 1)
	q.mu.Lock()
	e := q.head
	q.head = e.next
	if q.head == nil {
		q.tail = nil
	}
	q.mu.Unlock()
	return e.payload
}
