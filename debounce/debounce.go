// Package debounce collapses bursts of calls into a single trailing call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays fn until wait has passed without another Call. Only the
// argument of the last Call reaches fn. There is no leading-edge mode and no
// maximum wait.
type Debouncer[T any] struct {
	mu      sync.Mutex
	wait    time.Duration
	fn      func(T)
	timer   *time.Timer
	gen     uint64
	pending bool
	arg     T
	running int
	idle    *sync.Cond
}

// New creates a Debouncer for fn
func New[T any](wait time.Duration, fn func(T)) *Debouncer[T] {
	d := &Debouncer[T]{
		wait: wait,
		fn:   fn,
	}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Call schedules fn(arg), replacing any pending call
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.arg = arg
	d.pending = true
	d.timer = time.AfterFunc(d.wait, func() {
		d.fire(gen)
	})
}

// Cancel discards the pending call, if any, without running it
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	d.pending = false
	var zero T
	d.arg = zero
}

// Flush runs the pending call immediately on the calling goroutine.
// It reports whether there was anything to run.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	d.stopLocked()
	d.gen++
	arg := d.take()
	d.mu.Unlock()

	d.run(arg)
	return true
}

// Wait blocks until no call is running. A call still waiting for its quiet
// window is not started; use Flush for that.
func (d *Debouncer[T]) Wait() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.running > 0 {
		d.idle.Wait()
	}
}

// Pending reports whether a call is waiting for its quiet window
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// fire runs on the timer goroutine. A timer that was superseded after it
// already fired sees a newer generation and does nothing.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	arg := d.take()
	d.mu.Unlock()

	d.run(arg)
}

func (d *Debouncer[T]) run(arg T) {
	defer func() {
		d.mu.Lock()
		d.running--
		if d.running == 0 {
			d.idle.Broadcast()
		}
		d.mu.Unlock()
	}()
	d.fn(arg)
}

// take clears the pending state, marks a call as running and returns its
// argument. Caller holds mu.
func (d *Debouncer[T]) take() T {
	arg := d.arg
	var zero T
	d.arg = zero
	d.pending = false
	d.running++
	return arg
}

func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
