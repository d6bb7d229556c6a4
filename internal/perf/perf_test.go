package perf

import (
	"testing"
	"time"
)

func TestTimeNoOpWhenDisabled(t *testing.T) {
	if enabled {
		t.Skip("SCROLLVIEW_PROFILE set in environment")
	}
	done := Time("test")
	done()
	mu.Lock()
	defer mu.Unlock()
	if len(stats) != 0 {
		t.Fatal("disabled profiling must not collect stats")
	}
}

func TestRecordAggregates(t *testing.T) {
	old := enabled
	enabled = true
	defer func() {
		enabled = old
		mu.Lock()
		stats = map[string]*stat{}
		mu.Unlock()
	}()

	record("op", 10*time.Millisecond)
	record("op", 30*time.Millisecond)

	mu.Lock()
	s := stats["op"]
	mu.Unlock()
	if s == nil {
		t.Fatal("stat not created")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count != 2 || s.max != 30*time.Millisecond {
		t.Fatalf("count=%d max=%v", s.count, s.max)
	}
	if got := p95Locked(s); got != 30*time.Millisecond {
		t.Fatalf("p95 = %v", got)
	}
}
