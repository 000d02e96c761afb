package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dgallion1/roster/internal/imageproc"
	"github.com/dgallion1/roster/internal/media"
	"github.com/dgallion1/roster/internal/store"
)

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "filename")
	s.serveFile(w, r, []string{urlParam(r, "location"), urlParam(r, "person"), name}, name)
}

func (s *Server) handleContactFile(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "filename")
	dir := s.content.ContactPath(urlParam(r, "location"), urlParam(r, "person"))
	s.serveFile(w, r, append(dir, name), name)
}

// serveFile streams a file under the data root. This is the only route
// where a missing target is reported as 404. Images accept ?w= to get a
// downscaled copy.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, segs []string, name string) {
	width := 0
	if v := r.URL.Query().Get("w"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "w must be a positive integer", http.StatusBadRequest)
			return
		}
		width = min(n, s.cfg.MaxImageWidth)
	}

	f, info, err := s.store.Open(segs...)
	if err != nil {
		if !store.IsAbsent(err) {
			s.log.Error("open file", "path", segs, "error", err)
		}
		jsonError(w, "not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	if width > 0 && s.classify.IsImage(name) {
		resized, err := imageproc.FitWidth(f, name, width)
		if err == nil {
			w.Header().Set("Content-Type", resized.ContentType)
			http.ServeContent(w, r, name, info.ModTime(), bytes.NewReader(resized.Data))
			return
		}
		if !errors.Is(err, imageproc.ErrUnsupportedFormat) {
			s.log.Warn("resize image", "path", segs, "error", err)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			jsonError(w, "failed to read file", http.StatusInternalServerError)
			return
		}
	}

	if ct := media.ContentType(name); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	http.ServeContent(w, r, name, info.ModTime(), f)
}
