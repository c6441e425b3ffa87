package pipeline

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Mode selects what a job looks for in the document.
type Mode string

const (
	ModeSearch     Mode = "search"     // keyword search over the order tree
	ModeNames      Mode = "names"      // roster search over the order tree
	ModeParagraphs Mode = "paragraphs" // directive paragraphs naming roster members
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeSearch, ModeNames, ModeParagraphs:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, s)
}

// JobStatus represents the state of a processing job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusMatching  JobStatus = "matching"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single document run.
type Job struct {
	mu sync.Mutex

	ID     string `json:"job_id"`
	Mode   Mode   `json:"mode"`
	Status JobStatus
	Phase  string

	Filename string `json:"filename"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	req    Request
	result *Result
	docx   []byte
	errors []string
}

// Progress counts what the run found.
type Progress struct {
	Paragraphs int      `json:"paragraphs"`
	Matches    int      `json:"matches"`
	Anomalies  int      `json:"anomalies"`
	Errors     []string `json:"errors"`
}

// NewJob creates a queued job for req.
func NewJob(req Request) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Mode:      req.Mode,
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  req.Filename,
		CreatedAt: now,
		UpdatedAt: now,
		req:       req,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// Request returns the job's input.
func (j *Job) Request() Request {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.req
}

// complete stores the result and rendered document and drops the input bytes.
func (j *Job) complete(res *Result, docx []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.docx = docx
	j.req.Data = nil
	j.ContentHash = res.ContentHash
	j.Progress.Paragraphs = res.Paragraphs
	j.Progress.Matches = res.MatchCount()
	j.Progress.Anomalies = len(res.Anomalies)
	j.Status = StatusCompleted
	j.Phase = "done"
	j.UpdatedAt = time.Now()
}

// fail marks the job failed and drops the input bytes.
func (j *Job) fail(phase string, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err.Error())
	j.Progress.Errors = j.errors
	j.req.Data = nil
	j.Status = StatusFailed
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// Result returns the run result and rendered .docx, or nil before completion.
func (j *Job) Result() (*Result, []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.docx
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Mode        Mode      `json:"mode"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	Progress    Progress  `json:"progress"`
	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.Progress.Errors))
	copy(errs, j.Progress.Errors)
	return JobSnapshot{
		ID:       j.ID,
		Mode:     j.Mode,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Progress: Progress{
			Paragraphs: j.Progress.Paragraphs,
			Matches:    j.Progress.Matches,
			Anomalies:  j.Progress.Anomalies,
			Errors:     errs,
		},
		ContentHash: j.ContentHash,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
