package textextract

import (
	"testing"
	"time"
)

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	for _, ms := range []int{100, 200, 300, 400, 500} {
		stats.Record(".docx", time.Duration(ms)*time.Millisecond, false)
	}
	stats.Record(".pdf", 300*time.Millisecond, true)

	snap := stats.Snapshot()
	if snap.Count != 6 {
		t.Fatalf("expected count=6, got %d", snap.Count)
	}
	if snap.Failures != 1 {
		t.Fatalf("expected failures=1, got %d", snap.Failures)
	}
	if snap.ByExtension[".docx"] != 5 || snap.ByExtension[".pdf"] != 1 {
		t.Fatalf("expected 5 docx and 1 pdf, got %v", snap.ByExtension)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%v max=%v", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %v", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %v", snap.P50Ms)
	}
	if snap.P95Ms != 475 {
		t.Fatalf("expected p95=475, got %v", snap.P95Ms)
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewStats(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	stats.now = func() time.Time { return now }

	stats.Record(".docx", 100*time.Millisecond, false)
	now = now.Add(2 * time.Minute)

	if snap := stats.Snapshot(); snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.Record(".docx", 200*time.Millisecond, false)
	snap := stats.Snapshot()
	if snap.Count != 1 || snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected one fresh 200ms sample, got %+v", snap)
	}
}

func TestStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(".docx", -10*time.Millisecond, false)
	snap := stats.Snapshot()
	if snap.Count != 1 || snap.MaxMs != 0 {
		t.Fatalf("expected one clamped sample, got %+v", snap)
	}
}

func TestStatsEmptySnapshot(t *testing.T) {
	snap := NewStats(0).Snapshot()
	if snap.Count != 0 || snap.WindowSeconds != 3600 {
		t.Fatalf("expected empty snapshot with 1h window, got %+v", snap)
	}
	if snap.ByExtension == nil {
		t.Fatal("expected non-nil extension map")
	}
}
