package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dgallion1/orderscan/internal/history"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"processing":  s.proc.Stats().Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	store := s.proc.History()
	if store == nil {
		jsonError(w, "history is disabled", http.StatusServiceUnavailable)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			jsonError(w, "limit must be between 1 and 1000", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := store.Recent(r.Context(), limit)
	if err != nil {
		s.log.Error("history query failed", "error", err)
		jsonError(w, "failed to read history", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"runs": runs})
}
