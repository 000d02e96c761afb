package api

import (
	"net/http"
)

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	bundle, found := s.content.Content(r.Context(), urlParam(r, "location"), urlParam(r, "person"))
	if !found && s.cfg.MissingPersonNotFound {
		jsonError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// handleContact serves a person's contact card, or the location's own when
// the person segment is the location sentinel.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.content.Contact(r.Context(), urlParam(r, "location"), urlParam(r, "person")))
}
