package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/orderscan/internal/declension"
	"github.com/dgallion1/orderscan/internal/doctree"
	"github.com/dgallion1/orderscan/internal/history"
	"github.com/dgallion1/orderscan/internal/order"
	"github.com/dgallion1/orderscan/internal/ordermode"
	"github.com/dgallion1/orderscan/internal/parser"
	"github.com/dgallion1/orderscan/internal/render"
	"github.com/dgallion1/orderscan/internal/roster"
)

// ErrInvalidRequest marks requests missing required inputs.
var ErrInvalidRequest = errors.New("invalid request")

// Request is the input of one processing run.
type Request struct {
	Mode     Mode
	Filename string
	// Data holds the document bytes. In paragraphs mode Text may be given
	// instead.
	Data     []byte
	Text     string
	Keywords []string
	Names    []string
}

// Query summarises the request for logs and history.
func (r Request) Query() string {
	if r.Mode == ModeSearch {
		return strings.Join(r.Keywords, ", ")
	}
	return fmt.Sprintf("%d names", len(r.Names))
}

// Validate checks that the inputs the mode needs are present.
func (r Request) Validate() error {
	switch r.Mode {
	case ModeSearch:
		for _, k := range r.Keywords {
			if strings.TrimSpace(k) != "" {
				return r.validateDocument()
			}
		}
		return fmt.Errorf("%w: keyword is required", ErrInvalidRequest)
	case ModeNames, ModeParagraphs:
		for _, n := range r.Names {
			if strings.TrimSpace(n) != "" {
				return r.validateDocument()
			}
		}
		return fmt.Errorf("%w: %w", ErrInvalidRequest, roster.ErrNoNames)
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, r.Mode)
	}
}

func (r Request) validateDocument() error {
	if len(r.Data) > 0 {
		if r.Filename == "" {
			return fmt.Errorf("%w: filename is required", ErrInvalidRequest)
		}
		return nil
	}
	if r.Mode == ModeParagraphs && strings.TrimSpace(r.Text) != "" {
		return nil
	}
	return fmt.Errorf("%w: document is required", ErrInvalidRequest)
}

// Result is the outcome of one processing run.
type Result struct {
	Mode        Mode              `json:"mode"`
	Filename    string            `json:"filename,omitempty"`
	ContentHash string            `json:"content_hash"`
	Paragraphs  int               `json:"paragraphs"`
	Items       []doctree.Item    `json:"items,omitempty"`
	Matches     []ordermode.Match `json:"matches,omitempty"`
	Anomalies   []doctree.Anomaly `json:"anomalies"`
	Lines       []render.Line     `json:"-"`
	DurationMs  int64             `json:"duration_ms"`
	// SeenBefore counts earlier runs over the same document. Zero when
	// history is disabled.
	SeenBefore  int               `json:"seen_before"`
}

// MatchCount is the number of found items or selected paragraphs.
func (r *Result) MatchCount() int {
	if r.Mode == ModeParagraphs {
		return len(r.Matches)
	}
	return len(r.Items)
}

// Processor runs requests synchronously. It is safe for concurrent use.
type Processor struct {
	parsers parser.Options
	dict    *declension.Dictionary
	finder  *ordermode.Finder
	history *history.Store
	stats   *Stats
	log     *slog.Logger
}

// ProcessorConfig configures a Processor. Nil Dictionary selects the built-in
// one and nil History disables run logging.
type ProcessorConfig struct {
	Parsers          parser.Options
	Dictionary       *declension.Dictionary
	DirectiveKeyword string
	History          *history.Store
	StatsWindow      time.Duration
}

func NewProcessor(cfg ProcessorConfig, log *slog.Logger) *Processor {
	dict := cfg.Dictionary
	if dict == nil {
		dict = declension.Default()
	}
	return &Processor{
		parsers: cfg.Parsers,
		dict:    dict,
		finder:  ordermode.NewFinder(cfg.DirectiveKeyword, dict),
		history: cfg.History,
		stats:   NewStats(cfg.StatsWindow),
		log:     log,
	}
}

// Stats returns processing latency stats.
func (p *Processor) Stats() *Stats {
	return p.stats
}

// History returns the run log, or nil when disabled.
func (p *Processor) History() *history.Store {
	return p.history
}

// Dictionary returns the name dictionary used for matching.
func (p *Processor) Dictionary() *declension.Dictionary {
	return p.dict
}

// Run parses the document, builds or splits it, matches and lays out the
// result. onPhase, if non-nil, is called as each phase starts.
func (p *Processor) Run(ctx context.Context, req Request, onPhase func(JobStatus)) (*Result, error) {
	if onPhase == nil {
		onPhase = func(JobStatus) {}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	log := p.log.With("mode", req.Mode, "filename", req.Filename)

	var names []string
	if req.Mode != ModeSearch {
		var err error
		names, err = roster.FromStrings(req.Names)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}

	// Phase 1: Parse
	onPhase(StatusParsing)
	res := &Result{Mode: req.Mode, Filename: req.Filename, Anomalies: []doctree.Anomaly{}}
	var paras []doctree.Paragraph
	if len(req.Data) > 0 {
		var err error
		paras, err = p.parsers.Extract(bytes.NewReader(req.Data), req.Filename)
		if err != nil {
			return nil, err
		}
		res.ContentHash = ContentHashHex(req.Data)
	} else {
		res.ContentHash = ContentHashHex([]byte(req.Text))
	}
	res.Paragraphs = len(paras)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 2: Match
	onPhase(StatusMatching)
	switch req.Mode {
	case ModeSearch, ModeNames:
		tree := order.ParseStructure(paras)
		for _, a := range tree.Anomalies {
			log.Warn("structure anomaly", "kind", a.Kind, "index", a.Index)
		}
		if len(tree.Anomalies) > 0 {
			res.Anomalies = tree.Anomalies
		}
		if req.Mode == ModeSearch {
			res.Items = order.FindAny(tree, req.Keywords)
		} else {
			res.Items = order.FindNames(tree, names, p.dict)
		}
	case ModeParagraphs:
		text := req.Text
		if len(req.Data) > 0 {
			text = parser.Text(paras)
		}
		res.Matches = p.finder.FindOrderParagraphs(text, names)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 3: Layout
	onPhase(StatusRendering)
	if req.Mode == ModeParagraphs {
		res.Lines = render.Paragraphs(res.Matches)
	} else {
		res.Lines = render.Layout(res.Items)
	}

	elapsed := time.Since(start)
	res.DurationMs = elapsed.Milliseconds()
	p.stats.RecordRun(res, elapsed)
	log.Info("processed document",
		"paragraphs", res.Paragraphs,
		"matches", res.MatchCount(),
		"anomalies", len(res.Anomalies),
		"duration_ms", res.DurationMs)

	if p.history != nil {
		seen, err := p.history.CountByHash(ctx, res.ContentHash)
		if err != nil {
			log.Warn("history lookup failed", "error", err)
		}
		res.SeenBefore = seen
		if seen > 0 {
			log.Info("document seen before", "runs", seen)
		}
		_, err = p.history.Record(ctx, history.Run{
			DocHash:   res.ContentHash,
			Filename:  req.Filename,
			Mode:      string(req.Mode),
			Query:     req.Query(),
			Matches:   res.MatchCount(),
			Anomalies: len(res.Anomalies),
			Duration:  elapsed,
		})
		if err != nil {
			log.Warn("history record failed", "error", err)
		}
	}
	return res, nil
}

// Worker processes queued jobs.
type Worker struct {
	proc *Processor
	log  *slog.Logger
}

func NewWorker(proc *Processor, log *slog.Logger) *Worker {
	return &Worker{proc: proc, log: log}
}

// Process runs the job and renders its .docx result.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "mode", job.Mode)

	phase := StatusQueued
	res, err := w.proc.Run(ctx, job.Request(), func(s JobStatus) {
		phase = s
		job.SetStatus(s, string(s))
	})
	if err != nil {
		log.Error("processing failed", "phase", phase, "error", err)
		job.fail(string(phase), err)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteDocx(&buf, res.Lines); err != nil {
		log.Error("render failed", "error", err)
		job.fail(string(StatusRendering), fmt.Errorf("render: %w", err))
		return
	}
	job.complete(res, buf.Bytes())
	log.Info("job completed", "matches", res.MatchCount(), "bytes", buf.Len())
}
