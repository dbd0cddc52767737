package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/healthz", "/healthz"},
		{"/metrics", "/metrics"},
		{"/api/solve", "/api/solve"},
		{"/api/observations", "/api/observations"},
		{"/api/observations.geojson", "/api/observations.geojson"},
		{"/api/geodesic", "/api/geodesic"},

		{"/api/diagram/moon-1.webp", "/api/diagram/{name}"},
		{"/api/diagram/other.webp", "/api/diagram/{name}"},

		{"/wp-admin", "other"},
		{"/.env", "other"},
		{"/api/v2/solve", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizeRoute(tt.path); got != tt.want {
				t.Errorf("normalizeRoute(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestObserveSolution(t *testing.T) {
	before := testutil.ToFloat64(solutionsTotal.WithLabelValues(OutcomeNoConvergence))
	ObserveSolution(OutcomeNoConvergence, 100)
	after := testutil.ToFloat64(solutionsTotal.WithLabelValues(OutcomeNoConvergence))

	if after-before != 1 {
		t.Errorf("no_convergence counter delta = %v, want 1", after-before)
	}
}

func TestMiddleware_RecordsStatus(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	counter := httpRequestsTotal.WithLabelValues("other", http.MethodGet, "418")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/teapot", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", w.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("counter delta = %v, want 1", got)
	}
}
