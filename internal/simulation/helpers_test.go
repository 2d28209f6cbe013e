package simulation

import (
	"sync"
	"testing"
	"time"
)

// recordingSleeper returns immediately and remembers every requested delay.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleeper) Sleep(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
}

func (r *recordingSleeper) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.delays))
	copy(out, r.delays)
	return out
}

// gateSleeper blocks every Sleep until the test releases it.
type gateSleeper struct {
	entered chan time.Duration
	release chan struct{}
}

func newGateSleeper() *gateSleeper {
	return &gateSleeper{
		entered: make(chan time.Duration, 16),
		release: make(chan struct{}),
	}
}

func (g *gateSleeper) Sleep(d time.Duration) {
	g.entered <- d
	<-g.release
}

// waitEntered blocks until the timeline reaches a delay and returns it.
func (g *gateSleeper) waitEntered(t *testing.T) time.Duration {
	t.Helper()
	select {
	case d := <-g.entered:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the timeline to reach a delay")
		return 0
	}
}

// open releases the current and every later Sleep call.
func (g *gateSleeper) open() {
	close(g.release)
}
