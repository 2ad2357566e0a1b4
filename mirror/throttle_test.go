package mirror

import (
	"testing"
	"time"
)

func TestThrottleAdmitsWithinLimit(t *testing.T) {
	th := newThrottle(100, 100*time.Millisecond)
	defer th.stop()

	done := make(chan struct{})
	go func() {
		th.wait()
		th.wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("wait did not admit requests under the limit")
	}
}

func TestThrottleStopSilencesTicker(t *testing.T) {
	th := newThrottle(100, 100*time.Millisecond)
	th.wait()
	th.stop()

	// A tick queued before Stop may still be buffered; drain it.
	select {
	case <-th.ticker.C:
	default:
	}
	select {
	case <-th.ticker.C:
		t.Error("ticker fired after stop")
	case <-time.After(20 * time.Millisecond):
	}
}
