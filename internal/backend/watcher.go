package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/popular-movies/internal/netcheck"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindConnectivity Kind = iota
)

// Event conveys the result of one poll.
type Event struct {
	Kind   Kind
	Online bool
	At     time.Time
}

// Watcher polls the connectivity gate at a fixed interval and publishes
// events for the header status indicator. Fetches never read from it; they
// query the gate themselves.
type Watcher struct {
	gate     netcheck.Gate
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// minPollGap bounds how often the gate can be queried by the poller.
const minPollGap = 250 * time.Millisecond

// NewWatcher creates a watcher that checks gate every interval. An interval
// of zero or less creates an idle watcher whose events channel is already
// closed.
func NewWatcher(gate netcheck.Gate, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		gate:     gate,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	if gate != nil && interval > 0 {
		w.startConnectivityPoller()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current check
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startConnectivityPoller() {
	throttle := newThrottle(minPollGap)
	w.wg.Add(1)
	go w.poll(KindConnectivity, func(ctx context.Context) (bool, bool) {
		if !throttle.wait(ctx) {
			return false, false
		}
		return w.gate.IsOnline(), true
	})
}

func (w *Watcher) poll(kind Kind, check func(context.Context) (online, ok bool)) {
	defer w.wg.Done()

	emit := func() bool {
		online, ok := check(w.ctx)
		if !ok {
			return false
		}
		evt := Event{Kind: kind, Online: online, At: time.Now()}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
