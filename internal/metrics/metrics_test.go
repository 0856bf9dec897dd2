package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRegistry(t *testing.T) {
	before := testutil.ToFloat64(registryRequestsTotal.WithLabelValues("login", OutcomeRejected))
	ObserveRegistry("login", OutcomeRejected, 120*time.Millisecond)
	after := testutil.ToFloat64(registryRequestsTotal.WithLabelValues("login", OutcomeRejected))
	assert.Equal(t, before+1, after)
}

func TestGateRedirect(t *testing.T) {
	before := testutil.ToFloat64(gateRedirectsTotal.WithLabelValues("admin"))
	GateRedirect("admin")
	assert.Equal(t, before+1, testutil.ToFloat64(gateRedirectsTotal.WithLabelValues("admin")))
}

func TestInstrument_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418")))
}

func TestHandler_ServesMetrics(t *testing.T) {
	ObserveRegistry("summary", OutcomeOK, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "registry_requests_total")
}
