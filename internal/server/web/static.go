package web

import "net/http"

func (s *Server) manifest(w http.ResponseWriter, r *http.Request) {
	s.serveStatic(w, "static/manifest.json", "application/manifest+json")
}

func (s *Server) serviceWorker(w http.ResponseWriter, r *http.Request) {
	s.serveStatic(w, "static/sw.js", "text/javascript; charset=utf-8")
}

func (s *Server) serveStatic(w http.ResponseWriter, path, contentType string) {
	data, err := staticFS.ReadFile(path)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}
