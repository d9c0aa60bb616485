package geocode

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs at most one call per key, on the trailing edge of a quiet
// window. A newer Trigger for the same key stops the pending timer and
// cancels the context of a call that is already running.
type Debouncer struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*debounced
	closed  bool

	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

type debounced struct {
	timer  *time.Timer
	cancel context.CancelFunc
}

func NewDebouncer(window time.Duration) *Debouncer {
	base, stop := context.WithCancel(context.Background())
	return &Debouncer{
		window:  window,
		pending: make(map[string]*debounced),
		base:    base,
		stop:    stop,
	}
}

func (d *Debouncer) Trigger(key string, fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if prev, ok := d.pending[key]; ok {
		d.supersede(prev)
	}

	ctx, cancel := context.WithCancel(d.base)
	call := &debounced{cancel: cancel}
	d.pending[key] = call

	d.wg.Add(1)
	call.timer = time.AfterFunc(d.window, func() {
		d.run(key, call, ctx, fn)
	})
}

// Cancel drops the pending call for key and cancels it if it is already running.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if call, ok := d.pending[key]; ok {
		d.supersede(call)
		delete(d.pending, key)
	}
}

// supersede must be called with d.mu held.
func (d *Debouncer) supersede(call *debounced) {
	if call.timer.Stop() {
		// never fired, so run will not balance the WaitGroup
		d.wg.Done()
	}
	call.cancel()
}

func (d *Debouncer) run(key string, call *debounced, ctx context.Context, fn func(ctx context.Context)) {
	defer d.wg.Done()
	defer func() {
		d.mu.Lock()
		if d.pending[key] == call {
			delete(d.pending, key)
		}
		d.mu.Unlock()
		call.cancel()
	}()

	if ctx.Err() != nil {
		return
	}
	fn(ctx)
}

// Close cancels everything pending or running and waits for running calls to return.
func (d *Debouncer) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for key, call := range d.pending {
		d.supersede(call)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	d.stop()
	d.wg.Wait()
}
