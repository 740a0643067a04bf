package core

import (
	"sync/atomic"
	"time"
)

// Delay blocks for a fixed interval so a loopback path can settle.
// Implementations are not interruptible.
type Delay interface {
	Wait()
}

// Sleep waits a wall-clock duration. Used when an OS scheduler is present.
type Sleep time.Duration

// Wait sleeps for d.
func (d Sleep) Wait() {
	time.Sleep(time.Duration(d))
}

// Spin busy-waits a number of loop iterations. The length in time depends
// on the CPU clock; counts are picked empirically for the target.
type Spin uint32

// spinSink is stored on every iteration so the loop cannot be optimised away
var spinSink uint32

// Wait spins for n iterations.
func (n Spin) Wait() {
	for i := uint32(0); i < uint32(n); i++ {
		atomic.StoreUint32(&spinSink, i)
	}
}

// DelayFunc adapts an ordinary function to the Delay interface
type DelayFunc func()

// Wait calls f.
func (f DelayFunc) Wait() {
	f()
}
