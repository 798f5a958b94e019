package api

import (
	"encoding/json"
	"net/http"

	"github.com/klauspost/compress/gzhttp"

	"github.com/ashutoshsundresh/folio/pkg/content"
	"github.com/ashutoshsundresh/folio/pkg/contrib"
	"github.com/ashutoshsundresh/folio/pkg/log"
	"github.com/ashutoshsundresh/folio/pkg/nowplaying"
	"github.com/ashutoshsundresh/folio/pkg/search"
	"github.com/ashutoshsundresh/folio/pkg/storage"
)

type Server struct {
	index   *search.Index
	catalog *storage.Catalog
	store   *content.Store
	github  *contrib.Client     // nil when GitHub is not configured
	playing *nowplaying.Service // nil when now-playing is not configured
	logger  *log.Logger
}

func NewServer(index *search.Index, catalog *storage.Catalog, store *content.Store) *Server {
	return &Server{
		index:   index,
		catalog: catalog,
		store:   store,
		logger:  log.ForService("api"),
	}
}

// EnableGitHub turns on the contributions proxy and repository routes.
func (s *Server) EnableGitHub(client *contrib.Client) {
	s.github = client
}

// EnableNowPlaying turns on the music widget routes.
func (s *Server) EnableNowPlaying(svc *nowplaying.Service) {
	s.playing = svc
}

// Handler returns the full route tree wrapped with CORS and gzip.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return gzhttp.GzipHandler(CorsMiddleware(mux))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
