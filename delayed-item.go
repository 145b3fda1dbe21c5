package delayqueue

import (
	"math"
	"time"
)

// DelayedItem is a payload scheduled to become available after a delay.
// All fields are fixed when the item is created; only the remaining delay changes, as time passes.
type DelayedItem[T any] struct {
	value      T
	amount     int64
	unit       TimeUnit
	enqueuedAt time.Time
	dueTime    time.Time
}

func newDelayedItem[T any](value T, amount int64, unit TimeUnit, now time.Time) *DelayedItem[T] {
	return &DelayedItem[T]{
		value:      value,
		amount:     amount,
		unit:       unit,
		enqueuedAt: now,
		dueTime:    now.Add(scaleDuration(amount, unit)),
	}
}

// Value returns the payload.
func (i DelayedItem[T]) Value() T {
	return i.value
}

// Amount returns the delay amount, in the item's unit.
func (i DelayedItem[T]) Amount() int64 {
	return i.amount
}

// Unit returns the unit the delay is expressed in.
func (i DelayedItem[T]) Unit() TimeUnit {
	return i.unit
}

// EnqueuedAt returns the time the item was offered.
func (i DelayedItem[T]) EnqueuedAt() time.Time {
	return i.enqueuedAt
}

// DueTime returns the time at which the item becomes available.
func (i DelayedItem[T]) DueTime() time.Time {
	return i.dueTime
}

// Remaining returns how long until the item is due, at the given time.
// The value is negative if the item is overdue.
func (i DelayedItem[T]) Remaining(now time.Time) time.Duration {
	return i.dueTime.Sub(now)
}

// RemainingDelay returns the remaining delay expressed in the item's own unit, that is the delay amount minus the whole units elapsed since the item was enqueued.
// The value is ≤ 0 once the item is due.
func (i DelayedItem[T]) RemainingDelay(now time.Time) int64 {
	remaining := i.Remaining(now)
	if remaining <= 0 {
		// Truncates towards zero, so an overdue item is reported as 0 until a whole unit has passed
		return int64(remaining / i.unit.Duration())
	}

	// Round up so an item that is not due yet never reports a remaining delay of 0
	d := i.unit.Duration()
	return int64((remaining + d - 1) / d)
}

// IsDue returns true if the item's remaining delay is zero or less at the given time.
func (i DelayedItem[T]) IsDue(now time.Time) bool {
	return !i.dueTime.After(now)
}

// Before returns true if the item is due before the other one.
// Items in different units are compared on the same time scale.
func (i DelayedItem[T]) Before(other *DelayedItem[T]) bool {
	return i.dueTime.Before(other.dueTime)
}

// Converts an amount of units to a Duration, saturating instead of overflowing.
func scaleDuration(amount int64, unit TimeUnit) time.Duration {
	d := int64(unit.Duration())
	switch {
	case amount > 0 && amount > math.MaxInt64/d:
		return time.Duration(math.MaxInt64)
	case amount < 0 && amount < math.MinInt64/d:
		return time.Duration(math.MinInt64)
	default:
		return time.Duration(amount * d)
	}
}
