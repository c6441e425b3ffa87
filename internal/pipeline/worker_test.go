package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/orderscan/internal/config"
	"github.com/dgallion1/orderscan/internal/history"
	"github.com/dgallion1/orderscan/internal/parser"
	"github.com/dgallion1/orderscan/internal/roster"
)

const orderText = `1. Про призначення

1.1. Призначити на посади:

сержант

ШОСТАК Олександр Володимирович

2. Про відпустки

Надати відпустку ПЕТРЕНКУ Івану Івановичу`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProcessor(t *testing.T, hist *history.Store) *Processor {
	t.Helper()
	return NewProcessor(ProcessorConfig{
		Parsers:          parser.Options{},
		DirectiveKeyword: "в наказі",
		History:          hist,
		StatsWindow:      time.Hour,
	}, testLogger())
}

func indexes(res *Result) []int {
	var idx []int
	for _, it := range res.Items {
		idx = append(idx, it.Index)
	}
	return idx
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestProcessor_Search(t *testing.T) {
	p := newTestProcessor(t, nil)
	var phases []JobStatus
	res, err := p.Run(context.Background(), Request{
		Mode:     ModeSearch,
		Filename: "order.txt",
		Data:     []byte(orderText),
		Keywords: []string{"відпуст"},
	}, func(s JobStatus) { phases = append(phases, s) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := indexes(res); !sameInts(got, []int{4, 5}) {
		t.Errorf("items = %v, want [4 5]", got)
	}
	if res.Paragraphs != 6 {
		t.Errorf("paragraphs = %d, want 6", res.Paragraphs)
	}
	if res.ContentHash != ContentHashHex([]byte(orderText)) {
		t.Error("content hash mismatch")
	}
	if len(res.Lines) == 0 {
		t.Error("expected laid-out lines")
	}
	want := []JobStatus{StatusParsing, StatusMatching, StatusRendering}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d = %q, want %q", i, phases[i], want[i])
		}
	}
	if p.Stats().Snapshot().Count != 1 {
		t.Error("expected one latency sample")
	}
}

func TestProcessor_Names(t *testing.T) {
	p := newTestProcessor(t, nil)
	res, err := p.Run(context.Background(), Request{
		Mode:     ModeNames,
		Filename: "order.txt",
		Data:     []byte(orderText),
		Names:    []string{"старший солдат ШОСТАК Олександр Володимирович"},
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := indexes(res); !sameInts(got, []int{0, 1, 2, 3}) {
		t.Fatalf("items = %v, want [0 1 2 3]", got)
	}
	last := res.Items[len(res.Items)-1]
	if len(last.MatchedNames) != 1 || last.MatchedNames[0] != "Шостак Олександр Володимирович" {
		t.Errorf("matched names = %v", last.MatchedNames)
	}
}

func TestProcessor_ParagraphsFromText(t *testing.T) {
	p := newTestProcessor(t, nil)
	res, err := p.Run(context.Background(), Request{
		Mode:  ModeParagraphs,
		Text:  "Зміни в наказі щодо ШОСТАКА Олександра.\n\nІнший абзац про Шостака Олександра.",
		Names: []string{"Шостак Олександр"},
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Matches) != 1 || res.MatchCount() != 1 {
		t.Fatalf("matches = %+v", res.Matches)
	}
	if !strings.HasPrefix(res.Matches[0].Paragraph, "Зміни в наказі") {
		t.Errorf("paragraph = %q", res.Matches[0].Paragraph)
	}
	if len(res.Lines) != 1 {
		t.Errorf("lines = %+v", res.Lines)
	}
}

func TestProcessor_Anomalies(t *testing.T) {
	p := newTestProcessor(t, nil)
	res, err := p.Run(context.Background(), Request{
		Mode:     ModeSearch,
		Filename: "order.txt",
		Data:     []byte("1.1. Підпункт без пункту\n\nтекст"),
		Keywords: []string{"текст"},
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Anomalies) != 1 || res.Anomalies[0].Index != 0 {
		t.Errorf("anomalies = %+v", res.Anomalies)
	}
}

func TestProcessor_Errors(t *testing.T) {
	p := newTestProcessor(t, nil)
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"no keyword", Request{Mode: ModeSearch, Filename: "a.txt", Data: []byte("x"), Keywords: []string{" "}}, ErrInvalidRequest},
		{"no document", Request{Mode: ModeNames, Names: []string{"Коваль Андрій"}}, ErrInvalidRequest},
		{"no filename", Request{Mode: ModeSearch, Data: []byte("x"), Keywords: []string{"x"}}, ErrInvalidRequest},
		{"empty roster", Request{Mode: ModeNames, Filename: "a.txt", Data: []byte("x"), Names: []string{"", "ПІБ"}}, roster.ErrNoNames},
		{"unknown mode", Request{Mode: "tree", Filename: "a.txt", Data: []byte("x")}, ErrInvalidRequest},
		{"unsupported format", Request{Mode: ModeSearch, Filename: "a.xls", Data: []byte("x"), Keywords: []string{"x"}}, parser.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Run(context.Background(), tt.req, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProcessor_ExtractError(t *testing.T) {
	p := newTestProcessor(t, nil)
	_, err := p.Run(context.Background(), Request{
		Mode:     ModeSearch,
		Filename: "broken.docx",
		Data:     []byte("not a zip"),
		Keywords: []string{"x"},
	}, nil)
	var ee *parser.ExtractError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *parser.ExtractError, got %v", err)
	}
}

func TestProcessor_Cancelled(t *testing.T) {
	p := newTestProcessor(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Run(ctx, Request{
		Mode:     ModeSearch,
		Filename: "order.txt",
		Data:     []byte(orderText),
		Keywords: []string{"відпуст"},
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestProcessor_RecordsHistory(t *testing.T) {
	hist, err := history.Open(":memory:")
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	defer hist.Close()

	p := newTestProcessor(t, hist)
	if _, err := p.Run(context.Background(), Request{
		Mode:     ModeSearch,
		Filename: "order.txt",
		Data:     []byte(orderText),
		Keywords: []string{"відпуст", "призначення"},
	}, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	runs, err := hist.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.Mode != "search" || r.Query != "відпуст, призначення" || r.Filename != "order.txt" {
		t.Errorf("unexpected run: %+v", r)
	}
	if r.DocHash != ContentHashHex([]byte(orderText)) {
		t.Errorf("doc hash = %q", r.DocHash)
	}

	res, err := p.Run(context.Background(), Request{
		Mode:     ModeNames,
		Filename: "copy.txt",
		Data:     []byte(orderText),
		Names:    []string{"Петренко Іван Іванович"},
	}, nil)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res.SeenBefore != 1 {
		t.Errorf("seen before = %d, want 1", res.SeenBefore)
	}
}

func TestProcessor_SeenBeforeWithoutHistory(t *testing.T) {
	p := newTestProcessor(t, nil)
	res, err := p.Run(context.Background(), Request{
		Mode:     ModeSearch,
		Filename: "order.txt",
		Data:     []byte(orderText),
		Keywords: []string{"відпуст"},
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.SeenBefore != 0 {
		t.Errorf("seen before = %d, want 0", res.SeenBefore)
	}
}

func TestOrchestrator_ProcessesJob(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 4, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, newTestProcessor(t, nil), testLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob(Request{
		Mode:     ModeSearch,
		Filename: "order.txt",
		Data:     []byte(orderText),
		Keywords: []string{"відпуст"},
	})
	if err := o.Submit(job); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		snap := o.GetJob(job.ID).Snapshot()
		if snap.Status == StatusCompleted {
			if snap.Progress.Matches != 2 {
				t.Errorf("matches = %d, want 2", snap.Progress.Matches)
			}
			break
		}
		if snap.Status == StatusFailed {
			t.Fatalf("job failed: %v", snap.Progress.Errors)
		}
		if time.Now().After(deadline) {
			t.Fatalf("job did not finish, status %q", snap.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	res, doc := job.Result()
	if res == nil || !bytes.HasPrefix(doc, []byte("PK")) {
		t.Fatalf("expected a .docx result, got %d bytes", len(doc))
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, newTestProcessor(t, nil), testLogger())
	// Workers are not started, so the queue never drains.
	first := NewJob(Request{Mode: ModeSearch})
	if err := o.Submit(first); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	second := NewJob(Request{Mode: ModeSearch})
	err := o.Submit(second)
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	if s := second.Snapshot(); s.Status != StatusFailed || s.Phase != "queue_full" {
		t.Errorf("unexpected snapshot: %+v", s)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("queue depth = %d, want 1", o.QueueDepth())
	}
	if o.GetJob(second.ID) == nil {
		t.Error("rejected job should still be visible")
	}
	o.Stop()
}
