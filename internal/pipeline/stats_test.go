package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/orderscan/internal/doctree"
	"github.com/dgallion1/orderscan/internal/ordermode"
)

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(ModeSearch, 100, 0)
	stats.Record(ModeSearch, 200, 0)
	stats.Record(ModeSearch, 300, 0)
	stats.Record(ModeSearch, 400, 0)
	stats.Record(ModeSearch, 500, 0)

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewStats(10 * time.Millisecond)
	stats.Record(ModeSearch, 100, 0)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.Record(ModeSearch, 200, 0)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(ModeSearch, -10, 0)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestStatsRecordRun(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.RecordRun(&Result{Mode: ModeSearch, Items: make([]doctree.Item, 3)}, 1500*time.Microsecond)
	stats.RecordRun(&Result{Mode: ModeParagraphs, Matches: make([]ordermode.Match, 2)}, 42*time.Millisecond)
	snap := stats.Snapshot()
	if snap.Count != 2 || snap.MinMs != 1 || snap.MaxMs != 42 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Matches != 5 {
		t.Errorf("matches = %d, want 5", snap.Matches)
	}
}

func TestStatsByMode(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(ModeSearch, 100, 1)
	stats.Record(ModeSearch, 300, 1)
	stats.Record(ModeNames, 50, 4)

	snap := stats.Snapshot()
	if len(snap.ByMode) != 2 {
		t.Fatalf("expected 2 modes, got %v", snap.ByMode)
	}
	search := snap.ByMode[ModeSearch]
	if search.Count != 2 || search.AvgMs != 200 {
		t.Errorf("search bucket = %+v", search)
	}
	names := snap.ByMode[ModeNames]
	if names.Count != 1 || names.MinMs != 50 {
		t.Errorf("names bucket = %+v", names)
	}
	if _, ok := snap.ByMode[ModeParagraphs]; ok {
		t.Error("unexpected paragraphs bucket")
	}
	if snap.Count != 3 || snap.MinMs != 50 || snap.MaxMs != 300 {
		t.Errorf("overall = %+v", snap.Latency)
	}
}

func TestStatsEmptySnapshot(t *testing.T) {
	snap := NewStats(time.Hour).Snapshot()
	if snap.Count != 0 || snap.ByMode == nil {
		t.Errorf("unexpected empty snapshot: %+v", snap)
	}
}
