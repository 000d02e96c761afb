package api

import (
	"net/http"

	"github.com/dgallion1/roster/internal/web"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.cfg.IndexFile != "" {
		http.ServeFile(w, r, s.cfg.IndexFile)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(web.IndexHTML)
}

// handleLocations lists locations; a missing data root yields [].
func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Locations(r.Context()))
}

// handlePeople lists the people of a location; an unknown location yields [].
func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.People(r.Context(), urlParam(r, "location")))
}
