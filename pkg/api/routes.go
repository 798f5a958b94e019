package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// API routes with method-specific routing
	mux.HandleFunc("GET /api/search", s.HandleSearch)
	mux.HandleFunc("GET /api/content", s.HandleContent)
	mux.HandleFunc("GET /api/years", s.HandleYears)
	mux.HandleFunc("GET /api/quarters", s.HandleQuarters)
	mux.HandleFunc("GET /api/courses", s.HandleCourses)
	mux.HandleFunc("GET /api/schedule", s.HandleSchedule)
	mux.HandleFunc("GET /api/github/contributions", s.HandleContributions)
	mux.HandleFunc("GET /api/github/repos", s.HandleRepos)
	mux.HandleFunc("GET /api/nowplaying", s.HandleNowPlaying)
	mux.HandleFunc("GET /api/nowplaying/ws", s.HandleNowPlayingWS)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
