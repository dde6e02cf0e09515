package auth

import (
	"sync"
	"time"
)

// DefaultIdleTimeout matches the original application's fixed value.
// Callers should configure their own; see config.
const DefaultIdleTimeout = 60 * time.Second

// idleCheckInterval is the resolution of the idle check. Variable so
// tests can tighten it.
var idleCheckInterval = time.Second

// IdleWatcher forces a sign-out once no activity has been reported for
// the configured timeout. The UI layer calls Touch on every user input
// event; the watcher checks elapsed idle time once per second.
//
// A watcher is a scoped resource: acquire it when the session starts and
// Stop it on sign-out or teardown, or its goroutine leaks.
type IdleWatcher struct {
	timeout   time.Duration
	onTimeout func()

	mu   sync.Mutex
	last time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewIdleWatcher starts a watcher that calls onTimeout once elapsed idle
// time exceeds timeout. onTimeout fires at most once; the watcher stops
// itself afterwards.
func NewIdleWatcher(timeout time.Duration, onTimeout func()) *IdleWatcher {
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	w := &IdleWatcher{
		timeout:   timeout,
		onTimeout: onTimeout,
		last:      time.Now(),
		stop:      make(chan struct{}),
	}
	go w.run()
	return w
}

// Touch records user activity, resetting the idle clock.
func (w *IdleWatcher) Touch() {
	w.mu.Lock()
	w.last = time.Now()
	w.mu.Unlock()
}

// Stop cancels the watcher. Safe to call more than once.
func (w *IdleWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

func (w *IdleWatcher) run() {
	ticker := time.NewTicker(idleCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.mu.Lock()
			idle := time.Since(w.last)
			w.mu.Unlock()
			if idle > w.timeout {
				w.Stop()
				w.onTimeout()
				return
			}
		}
	}
}
