package composer

import (
	"sync"
	"time"
)

// Debounce windows. Classification runs on every keystroke and gets the
// tightest window; canned responses hit the remote service with free text and
// get the widest.
const (
	classifyDebounce = 100 * time.Millisecond
	lookupDebounce   = 300 * time.Millisecond
	cannedDebounce   = 500 * time.Millisecond
)

// debouncer coalesces rapid calls into the last one and tags each fire with a
// generation. A completion that reports a stale generation must be discarded;
// that is what guarantees last-issued-wins instead of last-completed-wins.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// fire schedules fn after delay, cancelling any pending call. fn receives the
// generation it was issued with.
func (d *debouncer) fire(delay time.Duration, fn func(gen uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(delay, func() {
		fn(gen)
	})
}

// current reports whether gen is still the latest issued call.
func (d *debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen == gen
}

// stop cancels any pending call and invalidates in-flight generations.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
