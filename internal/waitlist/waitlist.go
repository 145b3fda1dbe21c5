package waitlist

// WaitList manages a FIFO list of waiters, that are woken up one at a time.
// It is not safe for concurrent use: the owner is expected to guard it with its own lock, which waiters must release before blocking on their channel.
type WaitList struct {
	// Queue of waiting channels
	queue []chan struct{}
}

// Add registers a new waiter at the end of the list.
// The returned channel is closed when the waiter is signaled.
func (w *WaitList) Add() <-chan struct{} {
	ch := make(chan struct{})
	w.queue = append(w.queue, ch)
	return ch
}

// Remove unregisters a waiter that stopped waiting for another reason, such as a timeout.
// It returns false if the waiter was not in the list anymore, which means it was signaled already.
func (w *WaitList) Remove(ch <-chan struct{}) bool {
	var (
		j     int
		found bool
	)
	for i, c := range w.queue {
		if c == ch {
			found = true
			continue
		}
		w.queue[j] = w.queue[i]
		j++
	}
	clear(w.queue[j:])
	w.queue = w.queue[:j]

	return found
}

// SignalOne wakes up the waiter that has been waiting the longest.
// It returns false if there was no waiter.
func (w *WaitList) SignalOne() bool {
	if len(w.queue) == 0 {
		return false
	}

	next := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]

	close(next)
	return true
}

// Len returns the number of waiters.
func (w *WaitList) Len() int {
	return len(w.queue)
}
