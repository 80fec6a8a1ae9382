package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/pillgame/apps/go-server/internal/game"
)

func TestObserveResult(t *testing.T) {
	beforeCorrect := testutil.ToFloat64(Transitions.WithLabelValues("correct"))
	beforePartial := testutil.ToFloat64(Completions.WithLabelValues("partial"))

	ObserveResult(game.Result{Outcome: game.OutcomeCorrect})
	ObserveResult(game.Result{Outcome: game.OutcomeCorrect, Completion: &game.Completion{Correct: 6, Total: 8}})

	assert.Equal(t, beforeCorrect+2, testutil.ToFloat64(Transitions.WithLabelValues("correct")))
	assert.Equal(t, beforePartial+1, testutil.ToFloat64(Completions.WithLabelValues("partial")))
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestTotals.WithLabelValues("GET", "/sessions/{id}", "418"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestTotals.WithLabelValues("GET", "/sessions/{id}", "418")))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestInFlight))
}
