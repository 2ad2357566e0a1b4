package mirror

import (
	"sync"
	"time"
)

// throttle enforces a sliding-window request budget: at most limit
// requests per window, with attempts spaced out by the ticker.
type throttle struct {
	limit  int
	window time.Duration
	ticker *time.Ticker

	mu       sync.Mutex
	attempts []time.Time
}

func newThrottle(limit int, window time.Duration) *throttle {
	return &throttle{
		limit:  limit,
		window: window,
		ticker: time.NewTicker(window / time.Duration(limit)),
	}
}

func (t *throttle) stop() {
	t.ticker.Stop()
}

// wait blocks until the window has room for one more request.
func (t *throttle) wait() {
	for range t.ticker.C {
		t.mu.Lock()
		att := t.attempts
		if len(att) < t.limit || time.Since(att[0]) > t.window {
			att = append(att, time.Now())
			if len(att) > t.limit {
				att = att[1:]
			}
			t.attempts = att
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
	}
}
