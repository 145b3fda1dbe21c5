package testutil

import (
	"sync/atomic"
	"testing"
	"time"
)

// WaitForGoroutines waits until counter reaches the wanted value, which goroutines increment once they've started.
// It fails the test after about 1s.
func WaitForGoroutines(t *testing.T, want int32, counter *atomic.Int32) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for counter.Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("Waited too long for goroutines to start: %d of %d started", counter.Load(), want)
		}
		time.Sleep(500 * time.Microsecond)
	}
}
