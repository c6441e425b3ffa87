package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	hash := "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
	for i, mode := range []string{"search", "names", "paragraphs"} {
		_, err := s.Record(ctx, Run{
			DocHash:   hash,
			Filename:  "order.docx",
			Mode:      mode,
			Query:     "в наказі",
			Matches:   i + 1,
			Anomalies: i,
			Duration:  1500 * time.Millisecond,
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	runs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Mode != "paragraphs" || runs[1].Mode != "names" {
		t.Errorf("runs not newest first: %s, %s", runs[0].Mode, runs[1].Mode)
	}
	if runs[0].Matches != 3 || runs[0].Anomalies != 2 {
		t.Errorf("counts = %d/%d", runs[0].Matches, runs[0].Anomalies)
	}
	if runs[0].Duration != 1500*time.Millisecond {
		t.Errorf("duration = %v", runs[0].Duration)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	n, err := s.CountByHash(ctx, hash)
	if err != nil {
		t.Fatalf("CountByHash: %v", err)
	}
	if n != 3 {
		t.Errorf("CountByHash = %d, want 3", n)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Record(context.Background(), Run{DocHash: "h", Filename: "f", Mode: "search"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	runs, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 persisted run, got %d", len(runs))
	}
}
