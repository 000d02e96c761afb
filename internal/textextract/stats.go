package textextract

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at       time.Time
	ext      string
	duration time.Duration
	failed   bool
}

// StatsSnapshot aggregates parse samples still inside the window.
type StatsSnapshot struct {
	WindowSeconds float64        `json:"window_seconds"`
	Count         int            `json:"count"`
	Failures      int            `json:"failures"`
	ByExtension   map[string]int `json:"by_extension"`
	MinMs         float64        `json:"min_ms"`
	MaxMs         float64        `json:"max_ms"`
	AvgMs         float64        `json:"avg_ms"`
	P50Ms         float64        `json:"p50_ms"`
	P95Ms         float64        `json:"p95_ms"`
	P99Ms         float64        `json:"p99_ms"`
}

// Stats keeps document parse timings for a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
	now     func() time.Time
}

func NewStats(window time.Duration) *Stats {
	if window <= 0 {
		window = time.Hour
	}
	return &Stats{
		samples: make([]sample, 0, 256),
		window:  window,
		now:     time.Now,
	}
}

// Record adds one parse attempt. Negative durations are clamped to zero.
func (s *Stats) Record(ext string, d time.Duration, failed bool) {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{at: now, ext: ext, duration: d, failed: failed})
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	snap := StatsSnapshot{
		WindowSeconds: s.window.Seconds(),
		ByExtension:   make(map[string]int),
	}
	if len(s.samples) == 0 {
		return snap
	}

	ms := make([]float64, 0, len(s.samples))
	var sum float64
	for _, sm := range s.samples {
		v := float64(sm.duration) / float64(time.Millisecond)
		ms = append(ms, v)
		sum += v
		snap.ByExtension[sm.ext]++
		if sm.failed {
			snap.Failures++
		}
	}
	slices.Sort(ms)

	snap.Count = len(ms)
	snap.MinMs = ms[0]
	snap.MaxMs = ms[len(ms)-1]
	snap.AvgMs = sum / float64(len(ms))
	snap.P50Ms = percentile(ms, 50)
	snap.P95Ms = percentile(ms, 95)
	snap.P99Ms = percentile(ms, 99)
	return snap
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	keep := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.at.Before(cutoff) {
			keep = append(keep, sm)
		}
	}
	s.samples = keep
}

// percentile interpolates linearly between closest ranks of sorted values.
func percentile(sorted []float64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return sorted[0]
	case pct >= 100:
		return sorted[len(sorted)-1]
	}
	idx := float64(len(sorted)-1) * pct / 100
	lower := int(idx)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	w := idx - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*w
}
