// internal/httpserver/server.go
//
// HTTP server wiring for the blister pack game backend.
// Responsibilities:
//   - Router + middleware (request IDs, logging, panic recovery, timeouts,
//     metrics, rate limiting, JSON, CORS).
//   - Public endpoints: "/", "/health", "/catalog", "/howto", "/leaderboard", "/metrics".
//   - Session endpoints: POST /sessions, then token-gated
//     GET/DELETE /sessions/{id}, POST /sessions/{id}/{place,remove,reset},
//     GET /sessions/{id}/results.
//
// Notes:
//   - Live game state lives in the session store; only finished-round
//     summaries reach the database.
//   - User-facing text is chosen per request from ?lang= or Accept-Language.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pillgame/apps/go-server/internal/catalog"
	"github.com/robalobadob/pillgame/apps/go-server/internal/feedback"
	"github.com/robalobadob/pillgame/apps/go-server/internal/metrics"
	"github.com/robalobadob/pillgame/apps/go-server/internal/results"
	"github.com/robalobadob/pillgame/apps/go-server/internal/store"
)

var endpoints = []string{
	"GET /health", "GET /catalog", "GET /howto", "GET /leaderboard", "GET /metrics",
	"POST /sessions", "GET /sessions/{id}", "DELETE /sessions/{id}",
	"POST /sessions/{id}/place", "POST /sessions/{id}/remove", "POST /sessions/{id}/reset",
	"GET /sessions/{id}/results",
}

// Options are the tunables the server needs from configuration.
type Options struct {
	JWTSecret      string
	SessionTTL     time.Duration
	ClientOrigin   string
	RateLimitRPS   float64
	RateLimitBurst int64
	Production     bool
}

// Server bundles router, session store, results store and catalog.
type Server struct {
	r       *chi.Mux
	store   store.Store
	results *results.Store // nil disables result recording
	cat     *catalog.Catalog
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, res *results.Store, cat *catalog.Catalog, opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, results: res, cat: cat, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)
	s.r.Use(s.cors) // answers preflights before the limiter sees them
	if opts.RateLimitRPS > 0 {
		s.r.Use(newRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).middleware)
	}
	s.r.Use(metrics.Metrics) // prometheus request metrics; 429s are counted by the limiter

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"service": "pillgame-go", "endpoints": endpoints})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// --- static content ---
	s.r.Get("/catalog", s.handleCatalog)
	s.r.Get("/howto", s.handleHowTo)
	s.r.Get("/leaderboard", s.handleLeaderboard)

	// --- sessions ---
	s.mountSessions()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// HTTPServer returns an *http.Server for addr that serves this router.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ static -------------------------------------

// conditionView and medicationView pair a catalog entry with its localized label.
type conditionView struct {
	catalog.Condition
	Label string `json:"label"`
}
type medicationView struct {
	catalog.Medication
	Label string `json:"label"`
}
type catalogRes struct {
	Lang        string           `json:"lang"`
	Dir         string           `json:"dir"`
	Conditions  []conditionView  `json:"conditions"`
	Medications []medicationView `json:"medications"`
}

// handleCatalog returns the static catalog with localized labels.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	tr := translator(r)
	res := catalogRes{Lang: tr.Lang(), Dir: tr.Dir()}
	for _, c := range s.cat.Conditions {
		res.Conditions = append(res.Conditions, conditionView{Condition: c, Label: tr.Condition(c.Key)})
	}
	for _, m := range s.cat.Medications {
		res.Medications = append(res.Medications, medicationView{Medication: m, Label: tr.Medication(m.Name)})
	}
	writeJSON(w, http.StatusOK, res)
}

// handleHowTo returns the localized how-to-play panel.
func (s *Server) handleHowTo(w http.ResponseWriter, r *http.Request) {
	tr := translator(r)
	writeJSON(w, http.StatusOK, map[string]any{"lang": tr.Lang(), "dir": tr.Dir(), "howTo": tr.HowTo()})
}

// handleLeaderboard returns the best finished rounds (?limit=1..100, default 20).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r, 20, 100)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid_limit")
		return
	}
	if s.results == nil {
		writeJSON(w, http.StatusOK, map[string]any{"top": []results.Result{}})
		return
	}
	top, err := s.results.Leaderboard(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"top": top})
}

// ------------------------------- small util --------------------------------

// translator picks the feedback locale for a request.
func translator(r *http.Request) *feedback.Translator {
	return feedback.For(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeErr writes {"error": code}.
func writeErr(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
