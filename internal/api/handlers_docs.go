package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dgallion1/orderscan/internal/doctree"
	"github.com/dgallion1/orderscan/internal/order"
	"github.com/dgallion1/orderscan/internal/ordermode"
	"github.com/dgallion1/orderscan/internal/pipeline"
	"github.com/dgallion1/orderscan/internal/render"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.handleSync(w, r, pipeline.ModeSearch)
}

func (s *Server) handleNames(w http.ResponseWriter, r *http.Request) {
	s.handleSync(w, r, pipeline.ModeNames)
}

func (s *Server) handleParagraphs(w http.ResponseWriter, r *http.Request) {
	s.handleSync(w, r, pipeline.ModeParagraphs)
}

// handleSync processes the upload in the request goroutine. The format query
// parameter selects json (default), docx or md output.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request, mode pipeline.Mode) {
	format := r.URL.Query().Get("format")
	switch format {
	case "", "json", "docx", "md":
	default:
		jsonError(w, "format must be json, docx or md", http.StatusBadRequest)
		return
	}

	req, err := s.readRequest(w, r, mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.proc.Run(r.Context(), req, nil)
	if err != nil {
		s.writeError(w, err)
		return
	}

	switch format {
	case "docx":
		var buf bytes.Buffer
		if err := render.WriteDocx(&buf, res.Lines); err != nil {
			s.writeError(w, err)
			return
		}
		writeDocx(w, resultFilename(res.Filename), buf.Bytes())
	case "md":
		md, err := s.markdown.Render(res.Lines)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(md))
	default:
		writeJSONResult(w, res)
	}
}

// writeJSONResult writes res with empty result lists as [] rather than null.
func writeJSONResult(w http.ResponseWriter, res *pipeline.Result) {
	body := map[string]any{
		"mode":         res.Mode,
		"content_hash": res.ContentHash,
		"paragraphs":   res.Paragraphs,
		"anomalies":    res.Anomalies,
		"duration_ms":  res.DurationMs,
		"seen_before":  res.SeenBefore,
	}
	if res.Mode == pipeline.ModeParagraphs {
		matches := res.Matches
		if matches == nil {
			matches = []ordermode.Match{}
		}
		body["matches"] = matches
	} else {
		items := res.Items
		if items == nil {
			items = []doctree.Item{}
		}
		body["items"] = items
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// handleForms lists the inflected forms a name is searched under.
func (s *Server) handleForms(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		jsonError(w, "name query parameter is required", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":  name,
		"forms": s.proc.Dictionary().AllForms(name),
	})
}

// handleRanks lists the rank labels that separate a name from its point.
func (s *Server) handleRanks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ranks": order.RankTitles()})
}
