// This code was adapted from https://github.com/dapr/kit/tree/v0.15.4/
// Copyright (C) 2023 The Dapr Authors
// License: Apache2

// Package eventqueue implements an in-memory queue for delayed events.
// Events are maintained in the order of when they are due, with events due at the same time kept in insertion order.
// The queue is not safe for concurrent use: callers are expected to hold their own lock.
package eventqueue

import (
	"container/heap"
	"time"
)

// Queueable is the interface for items that can be added to the queue.
type Queueable interface {
	// DueTime returns the time the event is scheduled for.
	DueTime() time.Time
}

// Queue is a queue of events ordered by due time.
type Queue[T Queueable] struct {
	heap queueHeap[T]
	seq  uint64
}

// NewQueue returns a new, empty queue.
func NewQueue[T Queueable]() *Queue[T] {
	return &Queue[T]{
		heap: queueHeap[T]{},
	}
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() int {
	return q.heap.Len()
}

// Insert adds a new item to the queue.
func (q *Queue[T]) Insert(item T) {
	q.seq++
	heap.Push(&q.heap, &queueItem[T]{
		value:   item,
		dueTime: item.DueTime(),
		seq:     q.seq,
	})
}

// Peek returns the item that is due first, without removing it.
// The second return value is false if the queue is empty.
func (q *Queue[T]) Peek() (T, bool) {
	if q.heap.Len() == 0 {
		var zero T
		return zero, false
	}
	return q.heap[0].value, true
}

// Pop removes and returns the item that is due first.
// The second return value is false if the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	if q.heap.Len() == 0 {
		var zero T
		return zero, false
	}
	qi := heap.Pop(&q.heap).(*queueItem[T])
	return qi.value, true
}

// RemoveFunc removes all items for which match returns true, and returns the number of items removed.
func (q *Queue[T]) RemoveFunc(match func(T) bool) int {
	var j int
	for i, qi := range q.heap {
		if match(qi.value) {
			continue
		}
		q.heap[j] = q.heap[i]
		j++
	}

	removed := len(q.heap) - j
	if removed == 0 {
		return 0
	}

	// Clear the references to removed items so they can be garbage-collected
	clear(q.heap[j:])
	q.heap = q.heap[:j]
	heap.Init(&q.heap)

	return removed
}

type queueItem[T Queueable] struct {
	value   T
	dueTime time.Time
	seq     uint64
}

// queueHeap implements heap.Interface
type queueHeap[T Queueable] []*queueItem[T]

func (h queueHeap[T]) Len() int {
	return len(h)
}

func (h queueHeap[T]) Less(i, j int) bool {
	if h[i].dueTime.Equal(h[j].dueTime) {
		return h[i].seq < h[j].seq
	}
	return h[i].dueTime.Before(h[j].dueTime)
}

func (h queueHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *queueHeap[T]) Push(x any) {
	*h = append(*h, x.(*queueItem[T]))
}

func (h *queueHeap[T]) Pop() any {
	old := *h
	n := len(old)
	qi := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return qi
}
