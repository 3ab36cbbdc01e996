package viewstate

import (
	"sync"
	"time"
)

// DefaultDebounce matches the delay list pages wait after the last keystroke.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer runs only the most recently scheduled function, once the quiet
// period has elapsed without another Schedule call.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	running sync.WaitGroup
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule replaces any pending function with fn.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.running.Done()
	}
	d.running.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.running.Done()
		fn()
	})
}

// Stop drops the pending function and waits for one that already started.
// Later Schedule calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.running.Done()
	}
	d.mu.Unlock()
	d.running.Wait()
}
