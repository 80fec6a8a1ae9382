// internal/httpserver/routes_sessions.go
//
// HTTP routes for playing one round.
//   - POST   /sessions              → deal a fresh board, returns id + token
//   - GET    /sessions/{id}         → current snapshot
//   - DELETE /sessions/{id}         → abandon the session
//   - POST   /sessions/{id}/place   → put a pill into a blister slot
//   - POST   /sessions/{id}/remove  → take a pill back out (-10)
//   - POST   /sessions/{id}/reset   → deal again, score back to zero
//   - GET    /sessions/{id}/results → finished rounds recorded for this session
//
// Every {id} route needs the token returned by POST /sessions, either as
// "Authorization: Bearer" or the session cookie.
// Finished rounds are persisted when a placement fills the board.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pillgame/apps/go-server/internal/game"
	"github.com/robalobadob/pillgame/apps/go-server/internal/metrics"
	"github.com/robalobadob/pillgame/apps/go-server/internal/results"
	"github.com/robalobadob/pillgame/apps/go-server/internal/store"
)

const (
	maxPlayerLen  = 24
	defaultPlayer = "anonymous"
	maxBodyBytes  = 1 << 12
)

// mountSessions registers all /sessions routes.
func (s *Server) mountSessions() {
	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/place", s.handlePlace)
			r.Post("/remove", s.handleRemove)
			r.Post("/reset", s.handleReset)
			r.Get("/results", s.handleSessionResults)
		})
	})
}

// -----------------------------------------------------------------------------
// views

// stateView is the snapshot sent to clients.
type stateView struct {
	SessionID string     `json:"sessionId"`
	Player    string     `json:"player"`
	StartedAt time.Time  `json:"startedAt"`
	Game      *game.Game `json:"game"`
}

func viewOf(sess *store.Session) stateView {
	return stateView{SessionID: sess.ID, Player: sess.Player, StartedAt: sess.StartedAt, Game: sess.Game}
}

// createRes is returned by POST /sessions.
type createRes struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	State     stateView `json:"state"`
}

// transitionRes is returned by place, remove and reset.
// Event and Message are the last feedback line; Events and Messages list
// all of them (a board-filling placement yields two).
type transitionRes struct {
	Error      string           `json:"error,omitempty"`
	Outcome    game.Outcome     `json:"outcome"`
	Event      string           `json:"event"`
	Events     []game.Event     `json:"events"`
	Message    string           `json:"message"`
	Messages   []string         `json:"messages"`
	Lang       string           `json:"lang"`
	Dir        string           `json:"dir"`
	Delta      int              `json:"delta"`
	Completion *game.Completion `json:"completion,omitempty"`
	State      stateView        `json:"state"`
}

// -----------------------------------------------------------------------------
// handlers

type createReq struct {
	Player string `json:"player"`
}

// handleCreateSession deals a new board and issues the session token.
// The body is optional; an empty player name becomes "anonymous".
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var p createReq
	if err := decodeBody(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request")
		return
	}
	player, err := normalizePlayer(p.Player)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_player")
		return
	}

	sess, err := s.store.Create(r.Context(), player, game.New(s.cat))
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeErr(w, http.StatusInternalServerError, "internal_error")
		return
	}
	metrics.SessionsActive.Set(float64(s.store.Len()))

	token, exp, err := s.signSessionToken(sess.ID, player)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeErr(w, http.StatusInternalServerError, "internal_error")
		return
	}
	s.setSessionCookie(w, token, exp)

	log.Info().Str("session", sess.ID).Str("player", player).Msg("session created")
	writeJSON(w, http.StatusCreated, createRes{SessionID: sess.ID, Token: token, ExpiresAt: exp, State: viewOf(sess)})
}

// handleGetSession returns the current snapshot.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), sessionID(r))
	if err != nil {
		writeErr(w, http.StatusNotFound, "session_not_found")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

// handleDeleteSession drops the session and its cookie.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), sessionID(r)); err != nil {
		writeErr(w, http.StatusNotFound, "session_not_found")
		return
	}
	metrics.SessionsActive.Set(float64(s.store.Len()))
	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var in game.PlaceIntent
	if err := decodeBody(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request")
		return
	}
	s.transition(w, r, in)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	var in game.RemoveIntent
	if err := decodeBody(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request")
		return
	}
	s.transition(w, r, in)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, game.ResetIntent{})
}

// handleSessionResults lists the finished rounds of this session.
func (s *Server) handleSessionResults(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeJSON(w, http.StatusOK, map[string]any{"results": []results.Result{}})
		return
	}
	rows, err := s.results.BySession(r.Context(), sessionID(r))
	if err != nil {
		log.Error().Err(err).Msg("session results")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": rows})
}

// transition applies one intent and writes the localized outcome.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, in game.Intent) {
	id := sessionID(r)
	sess, res, err := s.store.Apply(r.Context(), id, in)
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "session_not_found")
		return
	}

	status, code := transitionStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("session", id).Msg("transition failed")
		writeErr(w, status, code)
		return
	}
	if errors.Is(err, game.ErrTokenNotAvailable) {
		log.Debug().Str("session", id).Interface("intent", in).Msg("token not available")
	}
	metrics.ObserveResult(res)

	if err == nil && res.Completion != nil {
		s.recordResult(r, sess, res)
	}

	tr := translator(r)
	events := res.Events()
	if events == nil {
		events = []game.Event{}
	}
	msgs := tr.Messages(res)
	out := transitionRes{
		Error:      code,
		Outcome:    res.Outcome,
		Events:     events,
		Messages:   msgs,
		Lang:       tr.Lang(),
		Dir:        tr.Dir(),
		Delta:      res.Delta,
		Completion: res.Completion,
		State:      viewOf(sess),
	}
	if n := len(events); n > 0 {
		out.Event = events[n-1].String()
		out.Message = msgs[n-1]
	}
	writeJSON(w, status, out)
}

// recordResult persists a finished round. Failures are logged only.
func (s *Server) recordResult(r *http.Request, sess *store.Session, res game.Result) {
	if s.results == nil {
		return
	}
	row := results.Result{
		SessionID: sess.ID,
		Player:    sess.Player,
		Score:     sess.Game.Score,
		Correct:   res.Completion.Correct,
		Total:     res.Completion.Total,
		Perfect:   res.Completion.Perfect,
		ElapsedMs: sess.Elapsed(sess.UpdatedAt).Milliseconds(),
	}
	id, err := s.results.Insert(r.Context(), row)
	if err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("record round result")
		return
	}
	log.Info().Int64("result", id).Str("session", sess.ID).Int("score", row.Score).
		Bool("perfect", row.Perfect).Msg("round completed")
}

// transitionStatus maps an engine rejection to a status and error code.
func transitionStatus(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, game.ErrSlotOccupied):
		return http.StatusConflict, "slot_occupied"
	case errors.Is(err, game.ErrTokenNotAvailable):
		return http.StatusConflict, "token_not_available"
	case errors.Is(err, game.ErrContainerNotFound):
		return http.StatusNotFound, "container_not_found"
	case errors.Is(err, game.ErrSlotNotFound):
		return http.StatusNotFound, "slot_not_found"
	}
	return http.StatusInternalServerError, "internal_error"
}

// -----------------------------------------------------------------------------
// helpers

// decodeBody decodes a small JSON body into v. An empty body is allowed.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// normalizePlayer trims a display name and checks its length and alphabet.
// Letters of any script, digits, space, '_' and '-' are allowed.
func normalizePlayer(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultPlayer, nil
	}
	if utf8.RuneCountInString(name) > maxPlayerLen {
		return "", errors.New("player name too long")
	}
	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-') {
			return "", errors.New("player name: letters, digits, space, '_' or '-' only")
		}
	}
	return name, nil
}

// queryLimit parses ?limit= within [1, hi], falling back to def when absent.
func queryLimit(r *http.Request, def, hi int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > hi {
		return 0, false
	}
	return n, true
}
