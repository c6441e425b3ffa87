package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/orderscan/internal/parser"
	"github.com/dgallion1/orderscan/internal/pipeline"
	"github.com/dgallion1/orderscan/internal/roster"
	"github.com/go-chi/chi/v5"
)

// statusError carries the HTTP status for request validation failures.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &statusError{code: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

// readRequest reads the multipart form shared by the sync and async
// endpoints: file (or text), repeated keyword, repeated names and a roster
// file.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request, mode pipeline.Mode) (pipeline.Request, error) {
	req := pipeline.Request{Mode: mode}

	// Two uploads plus form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.cfg.MaxUploadBytes+1024*1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return req, badRequest("invalid multipart form: %s", err)
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		req.Filename = sanitizeFilename(header.Filename)
		if !parser.IsSupportedExtension(req.Filename) {
			return req, fmt.Errorf("%w: %q", parser.ErrUnsupportedFormat, filepath.Ext(req.Filename))
		}
		req.Data, err = s.readUpload(file)
		if err != nil {
			return req, err
		}
	case errors.Is(err, http.ErrMissingFile):
		req.Text = r.FormValue("text")
	default:
		return req, badRequest("file: %s", err)
	}

	form := r.MultipartForm.Value
	req.Keywords = form["keyword"]
	req.Names = form["names"]

	rf, rh, err := r.FormFile("roster")
	switch {
	case err == nil:
		defer rf.Close()
		data, err := s.readUpload(rf)
		if err != nil {
			return req, err
		}
		names, err := roster.Read(bytes.NewReader(data), sanitizeFilename(rh.Filename))
		if err != nil {
			return req, fmt.Errorf("roster: %w", err)
		}
		req.Names = append(req.Names, names...)
	case !errors.Is(err, http.ErrMissingFile):
		return req, badRequest("roster: %s", err)
	}
	return req, nil
}

func (s *Server) readUpload(f multipart.File) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, &statusError{code: http.StatusInternalServerError, msg: "failed to read file"}
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, &statusError{
			code: http.StatusRequestEntityTooLarge,
			msg:  fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes),
		}
	}
	return data, nil
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	req, err := s.readRequest(w, r, "")
	if err != nil {
		s.writeError(w, err)
		return
	}
	req.Mode, err = pipeline.ParseMode(r.FormValue("mode"))
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	job := pipeline.NewJob(req)
	if err := s.orchestrator.Submit(job); err != nil {
		s.writeError(w, err)
		return
	}

	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":     snap.ID,
		"mode":       snap.Mode,
		"status":     snap.Status,
		"poll_url":   fmt.Sprintf("/api/jobs/%s", snap.ID),
		"result_url": fmt.Sprintf("/api/jobs/%s/result", snap.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	res, doc := job.Result()
	if res == nil {
		snap := job.Snapshot()
		jsonError(w, fmt.Sprintf("job is %s", snap.Status), http.StatusConflict)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		writeJSONResult(w, res)
		return
	}
	writeDocx(w, resultFilename(res.Filename), doc)
}

// writeError maps pipeline, parser and roster errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var se *statusError
	var ee *parser.ExtractError
	switch {
	case errors.As(err, &se):
		jsonError(w, se.msg, se.code)
	case errors.Is(err, parser.ErrUnsupportedFormat), errors.Is(err, roster.ErrUnsupportedFormat):
		jsonError(w, err.Error(), http.StatusUnsupportedMediaType)
	case errors.As(err, &ee):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, pipeline.ErrInvalidRequest), errors.Is(err, roster.ErrNoNames):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, pipeline.ErrQueueFull):
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		jsonError(w, "request cancelled", http.StatusServiceUnavailable)
	default:
		s.log.Error("request failed", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeDocx(w http.ResponseWriter, filename string, doc []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Write(doc)
}

// resultFilename names the output after the input document.
func resultFilename(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if base == "" {
		base = "result"
	}
	return base + "_result.docx"
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
