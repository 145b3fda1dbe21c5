package testutil

import (
	"bytes"
	"sync"
)

// ConcurrentBuffer is a bytes.Buffer that's safe for concurrent use.
// It's used to capture the output of loggers that are invoked from multiple goroutines.
type ConcurrentBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (cb *ConcurrentBuffer) Write(p []byte) (n int, err error) {
	cb.m.Lock()
	defer cb.m.Unlock()
	return cb.b.Write(p)
}

func (cb *ConcurrentBuffer) String() string {
	cb.m.Lock()
	defer cb.m.Unlock()
	return cb.b.String()
}
