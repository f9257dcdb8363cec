package api

import (
	"net/http"
	"path/filepath"
)

// handleHome serves the front-end entry page from the static dir.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.StaticDir, "index.html"))
}
