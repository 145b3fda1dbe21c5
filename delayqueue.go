// Package delayqueue implements an unbounded blocking queue of delayed items.
// Items are offered with a delay, and they can only be taken from the queue once their delay has elapsed.
// Consumers calling Take block until the item that is due first becomes available, then receive it.
//
// All methods are safe for concurrent use.
package delayqueue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/italypaleale/delayqueue/internal/eventqueue"
	"github.com/italypaleale/delayqueue/internal/waitlist"
)

// DelayQueue is a blocking queue where items are taken in the order of when they are due.
// The zero value is not usable: create instances with New.
type DelayQueue[T comparable] struct {
	lock    sync.Mutex
	queue   *eventqueue.Queue[*DelayedItem[T]]
	waiters waitlist.WaitList

	clock clock.WithTicker
	log   *slog.Logger
}

// New returns a new, empty DelayQueue.
func New[T comparable](opts ...Option) *DelayQueue[T] {
	o := newOptions(opts)
	return &DelayQueue[T]{
		queue: eventqueue.NewQueue[*DelayedItem[T]](),
		clock: o.clock,
		log:   o.logger,
	}
}

// Offer adds a value to the queue, which becomes available after the delay, expressed as an amount of unit.
// A delay that is zero or negative makes the item available immediately.
// Offer never blocks, and it wakes up one consumer blocked in Take, if any.
// It panics if unit is not a valid TimeUnit.
func (q *DelayQueue[T]) Offer(value T, amount int64, unit TimeUnit) {
	if !unit.IsValid() {
		// Indicates a development-time error
		panic(ErrInvalidTimeUnit)
	}

	q.lock.Lock()
	item := newDelayedItem(value, amount, unit, q.clock.Now())
	q.queue.Insert(item)
	q.waiters.SignalOne()
	q.lock.Unlock()

	q.log.Debug("Offered item",
		slog.Int64("delay", amount),
		slog.String("unit", unit.String()),
		slog.Time("due", item.DueTime()),
	)
}

// OfferAfter adds a value to the queue, which becomes available after the given duration.
func (q *DelayQueue[T]) OfferAfter(value T, delay time.Duration) {
	q.Offer(value, int64(delay), Nanoseconds)
}

// Push adds a value to the queue that is available immediately.
func (q *DelayQueue[T]) Push(value T) {
	q.Offer(value, 0, Milliseconds)
}

// Take removes and returns the item that is due first, waiting until its delay has elapsed if necessary.
// If the queue is empty, Take blocks until another goroutine offers an item.
//
// Take has no timeout: if nothing is ever offered, it blocks forever. Use TakeContext to be able to stop waiting.
func (q *DelayQueue[T]) Take() T {
	// The background context is never canceled, so this cannot return an error
	v, _ := q.TakeContext(context.Background())
	return v
}

// TakeContext is like Take, but it stops waiting when the context is canceled, returning the context's error.
func (q *DelayQueue[T]) TakeContext(ctx context.Context) (T, error) {
	var zero T

	q.lock.Lock()
	for {
		// Check if the context was canceled before waiting (again)
		err := ctx.Err()
		if err != nil {
			q.lock.Unlock()
			return zero, err
		}

		// If the head of the queue is due, return it right away
		// Otherwise, start a timer for when it will be due
		var timer clock.Timer
		head, ok := q.queue.Peek()
		if ok {
			remaining := head.Remaining(q.clock.Now())
			if remaining <= 0 {
				q.popLocked()
				q.lock.Unlock()

				q.log.Debug("Took item", slog.Time("due", head.DueTime()))
				return head.value, nil
			}
			timer = q.clock.NewTimer(remaining)
		}

		// Register as a waiter and release the lock while we're blocked
		wake := q.waiters.Add()
		q.lock.Unlock()

		// A nil channel blocks forever, which is what we want when the queue is empty
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-wake:
			// Signaled by a change in the queue
		case <-timerC:
			// The head we were waiting on should be due now
		case <-ctx.Done():
			// Handled at the top of the loop
		}

		if timer != nil {
			timer.Stop()
		}

		q.lock.Lock()

		// If we are still in the list, we woke up for another reason than a signal
		// If we were signaled but are leaving because the context was canceled, pass the signal to the next waiter so it's not lost
		if !q.waiters.Remove(wake) && ctx.Err() != nil {
			q.waiters.SignalOne()
		}

		// Loop and re-evaluate the head, which could have changed while we were waiting
	}
}

// Poll removes and returns the item that is due first, if its delay has elapsed already.
// It never blocks: the second return value is false if no item is due.
func (q *DelayQueue[T]) Poll() (T, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	head, ok := q.queue.Peek()
	if !ok || !head.IsDue(q.clock.Now()) {
		var zero T
		return zero, false
	}

	q.popLocked()
	return head.value, true
}

// Peek returns a copy of the item that is due first, without removing it, regardless of whether it is due already.
// The second return value is false if the queue is empty.
func (q *DelayQueue[T]) Peek() (DelayedItem[T], bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	head, ok := q.queue.Peek()
	if !ok {
		return DelayedItem[T]{}, false
	}
	return *head, true
}

// Remove removes all items whose value is equal to the given one, whether they are due or not.
// It is a no-op if there's no matching item.
func (q *DelayQueue[T]) Remove(value T) {
	q.RemoveFunc(func(v T) bool {
		return v == value
	})
}

// RemoveFunc removes all items for which match returns true, whether they are due or not, and returns the number of items removed.
// The match function is invoked while the queue is locked, so it must not call methods on the queue.
func (q *DelayQueue[T]) RemoveFunc(match func(T) bool) int {
	q.lock.Lock()
	n := q.queue.RemoveFunc(func(item *DelayedItem[T]) bool {
		return match(item.value)
	})

	// Even if nothing was removed, wake a waiter so it re-evaluates what it's waiting on
	q.waiters.SignalOne()
	q.lock.Unlock()

	q.log.Debug("Removed items", slog.Int("count", n))
	return n
}

// Len returns the number of items in the queue, including those not due yet.
func (q *DelayQueue[T]) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return q.queue.Len()
}

// Waiters returns the number of goroutines currently blocked waiting for an item.
func (q *DelayQueue[T]) Waiters() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return q.waiters.Len()
}

// Removes the head of the queue.
// Must be called while holding the lock.
func (q *DelayQueue[T]) popLocked() {
	q.queue.Pop()

	// If there are more items, wake up another waiter so it starts waiting on the new head
	if q.queue.Len() > 0 {
		q.waiters.SignalOne()
	}
}
