// internal/httpserver/server.go
//
// HTTP wiring for the Letterdrop backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Match endpoints: the four view intents (select-mode, submit-guess,
//     request-share, request-restart) plus a state read.
//   - Stats endpoint: lifetime stats with streak risk/milestone decoration.
//   - WebSocket state stream: reveal ticks originate server-side, so every
//     transition is pushed to subscribed clients (ws.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the session cookie works).
//   - Players are anonymous: a signed session cookie keys all persisted state
//     (session.go). The view never mutates state directly; it only posts intents.

package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/skyblue-will/letterdrop/internal/game"
	"github.com/skyblue-will/letterdrop/internal/persist"
	"github.com/skyblue-will/letterdrop/internal/words"
)

// Config carries the tunables the server needs beyond its dependencies.
type Config struct {
	JWTSecret    string
	ClientOrigin string
	Game         game.Config // reveal/settle timings passed to each match
}

// Server bundles router, persistence adapter, live matches, and subscribers.
type Server struct {
	r       *chi.Mux
	persist *persist.Adapter
	cfg     Config

	mu      sync.Mutex
	matches map[string]*game.Match            // live match per player
	subs    map[string]map[*wsClient]struct{} // websocket subscribers per player
}

// New constructs a Server, installs middleware, and registers routes.
func New(p *persist.Adapter, cfg Config) *Server {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev_secret_change_me"
	}
	s := &Server{
		r:       chi.NewRouter(),
		persist: p,
		cfg:     cfg,
		matches: make(map[string]*game.Match),
		subs:    make(map[string]map[*wsClient]struct{}),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsForOrigin(cfg.ClientOrigin)) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"letterdrop","endpoints":["/health","POST /match/new","POST /match/guess","GET /match","GET /match/share","POST /match/restart","GET /stats","GET /ws"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleDebugWords)

	// Match intents + reads (routes_match.go)
	s.r.Post("/match/new", s.handleNewMatch)
	s.r.Get("/match", s.handleGetMatch)
	s.r.Post("/match/guess", s.handleGuess)
	s.r.Post("/match/restart", s.handleRestart)
	s.r.Get("/match/share", s.handleShare)
	s.r.Get("/stats", s.handleStats)

	// WebSocket state stream (ws.go)
	s.r.Get("/ws", s.handleWS)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleDebugWords reports the loaded dictionary size.
func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"words": words.Count()})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsForOrigin enables credentialed CORS for a single origin.
func corsForOrigin(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
