package server

import (
	"net/http"

	"github.com/woozymasta/parallax/internal/metrics"
)

// Routes returns the instrumented handler tree.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/observations", s.HandleObservations)
	mux.HandleFunc("/api/observations.geojson", s.HandleGeoJSON)
	mux.HandleFunc("/api/diagram/", s.HandleDiagram)
	mux.HandleFunc("/api/solve", s.HandleSolve)
	mux.HandleFunc("/api/geodesic", s.HandleGeodesic)
	mux.HandleFunc("/healthz", s.HandleHealth)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/", s.HandleIndex)

	return RequestLogger(metrics.Middleware(mux))
}
