package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	mode       Mode
	durationMs int64
	matches    int
}

// Latency summarises run durations.
type Latency struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// StatsSnapshot is a point-in-time aggregate of recent runs, overall and
// per mode.
type StatsSnapshot struct {
	Latency
	Matches int              `json:"matches"`
	ByMode  map[Mode]Latency `json:"by_mode"`
}

// Stats tracks recent processing runs within a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *Stats) Record(mode Mode, durationMs int64, matches int) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		mode:       mode,
		durationMs: durationMs,
		matches:    matches,
	})
}

// RecordRun records a finished run, its duration rounded down to whole
// milliseconds.
func (s *Stats) RecordRun(res *Result, d time.Duration) {
	s.Record(res.Mode, d.Milliseconds(), res.MatchCount())
}

func (s *Stats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := StatsSnapshot{ByMode: map[Mode]Latency{}}
	if len(s.samples) == 0 {
		return snap
	}

	all := make([]int64, 0, len(s.samples))
	byMode := make(map[Mode][]int64)
	for _, sm := range s.samples {
		all = append(all, sm.durationMs)
		byMode[sm.mode] = append(byMode[sm.mode], sm.durationMs)
		snap.Matches += sm.matches
	}
	snap.Latency = summarize(all)
	for mode, values := range byMode {
		snap.ByMode[mode] = summarize(values)
	}
	return snap
}

// summarize sorts values in place.
func summarize(values []int64) Latency {
	var sum int64
	for _, v := range values {
		sum += v
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return Latency{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	if lower == upper {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
