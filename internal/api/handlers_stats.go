package api

import (
	"net/http"
)

func (s *Server) handleExtractStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"timeout_ms": s.cfg.DocParseTimeout.Milliseconds(),
		"stats":      s.extractor.Stats().Snapshot(),
	})
}
