// Package perf is lightweight opt-in timing instrumentation. It is off unless
// SCROLLVIEW_PROFILE is set; when on, aggregated timings are written to the
// log every few seconds.
package perf

import (
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tuikit/scrollview/internal/logging"
)

const (
	sampleWindow = 256
	logInterval  = 5 * time.Second
)

type stat struct {
	mu      sync.Mutex
	count   int64
	total   time.Duration
	max     time.Duration
	samples []time.Duration
	idx     int
	full    bool
}

var (
	enabled bool
	lastLog atomic.Int64

	mu    sync.Mutex
	stats = map[string]*stat{}
)

func init() {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("SCROLLVIEW_PROFILE")))
	enabled = raw != "" && raw != "0" && raw != "false" && raw != "no"
}

// Enabled reports whether profiling is on.
func Enabled() bool {
	return enabled
}

// Time returns a function that records elapsed time when invoked.
func Time(name string) func() {
	if !enabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		record(name, time.Since(start))
	}
}

func record(name string, d time.Duration) {
	mu.Lock()
	s, ok := stats[name]
	if !ok {
		s = &stat{samples: make([]time.Duration, sampleWindow)}
		stats[name] = s
	}
	mu.Unlock()

	s.mu.Lock()
	s.count++
	s.total += d
	if d > s.max {
		s.max = d
	}
	s.samples[s.idx] = d
	s.idx++
	if s.idx >= len(s.samples) {
		s.idx = 0
		s.full = true
	}
	s.mu.Unlock()

	maybeLog()
}

func maybeLog() {
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < logInterval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	Flush()
}

// Flush logs and resets all collected stats.
func Flush() {
	if !enabled {
		return
	}

	mu.Lock()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]*stat, len(names))
	for i, name := range names {
		entries[i] = stats[name]
	}
	mu.Unlock()

	for i, s := range entries {
		s.mu.Lock()
		if s.count == 0 {
			s.mu.Unlock()
			continue
		}
		count := s.count
		avg := time.Duration(int64(s.total) / count)
		max := s.max
		p95 := p95Locked(s)
		s.count, s.total, s.max, s.idx, s.full = 0, 0, 0, 0, false
		s.mu.Unlock()

		logging.Info("PERF %s count=%d avg=%s p95=%s max=%s", names[i], count, avg, p95, max)
	}
}

func p95Locked(s *stat) time.Duration {
	n := s.idx
	if s.full {
		n = len(s.samples)
	}
	if n == 0 {
		return 0
	}
	window := make([]time.Duration, n)
	copy(window, s.samples[:n])
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	pos := int(math.Ceil(0.95*float64(n))) - 1
	if pos < 0 {
		pos = 0
	}
	return window[pos]
}
