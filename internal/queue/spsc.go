// Package queue provides a lock-free unbounded single-producer
// single-consumer FIFO.
//
// Push never blocks and TryPop never waits, so either end may sit on a
// real-time audio thread. Consumed nodes are handed back to the producer and
// reused: once the queue has grown to its working size neither side
// allocates.
package queue

import "sync/atomic"

type node[T any] struct {
	next  atomic.Pointer[node[T]]
	value T
}

// SPSC is an unbounded FIFO safe for exactly one producer goroutine and one
// consumer goroutine. The zero value is not usable; call New.
type SPSC[T any] struct {
	// consumer side
	tail atomic.Pointer[node[T]]

	// producer side
	head     *node[T]
	first    *node[T] // oldest node not yet reused
	tailCopy *node[T] // producer's view of tail
}

// New returns an empty queue.
func New[T any]() *SPSC[T] {
	stub := &node[T]{}
	q := &SPSC[T]{
		head:     stub,
		first:    stub,
		tailCopy: stub,
	}
	q.tail.Store(stub)
	return q
}

// Push appends v. Producer only.
func (q *SPSC[T]) Push(v T) {
	n := q.alloc()
	n.value = v
	n.next.Store(nil)
	q.head.next.Store(n)
	q.head = n
}

// TryPop removes and returns the oldest value, or reports false if the queue
// is empty. Consumer only.
func (q *SPSC[T]) TryPop() (T, bool) {
	tail := q.tail.Load()
	next := tail.next.Load()
	if next == nil {
		var zero T
		return zero, false
	}

	v := next.value
	var zero T
	next.value = zero
	q.tail.Store(next)
	return v, true
}

// alloc returns a node the consumer has finished with, or a new one.
// Nodes strictly before tail are no longer reachable by the consumer.
func (q *SPSC[T]) alloc() *node[T] {
	if q.first != q.tailCopy {
		n := q.first
		q.first = n.next.Load()
		return n
	}
	q.tailCopy = q.tail.Load()
	if q.first != q.tailCopy {
		n := q.first
		q.first = n.next.Load()
		return n
	}
	return &node[T]{}
}
