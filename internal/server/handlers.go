// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/woozymasta/parallax/internal/config"
	"github.com/woozymasta/parallax/internal/geo"
	"github.com/woozymasta/parallax/internal/report"
)

// maxBodyBytes bounds the POST /api/solve payload.
const maxBodyBytes = 64 << 10

// HandleIndex serves the main HTML page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleObservations serves the solved observation catalog.
func (s *ServerContext) HandleObservations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "application/json", s.Report)
}

// HandleGeoJSON serves the stations and baselines as GeoJSON.
func (s *ServerContext) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "application/geo+json", s.GeoJSON)
}

// HandleDiagram serves a pre-rendered diagram: /api/diagram/{name}.webp
func (s *ServerContext) HandleDiagram(w http.ResponseWriter, r *http.Request) {
	file := strings.TrimPrefix(r.URL.Path, "/api/diagram/")
	name, ok := strings.CutSuffix(file, ".webp")
	if !ok || name == "" || strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}

	data, ok := s.Diagrams[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// HandleSolve solves a single observation posted as JSON.
func (s *ServerContext) HandleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var o config.Observation
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode observation: %w", err))
		return
	}
	if o.Name == "" {
		o.Name = "request"
	}
	if o.Target == "" {
		o.Target = s.Config.Target
	}

	check := config.Config{Observations: []config.Observation{o}}
	if err := check.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, "application/json", report.Solve(o))
}

type geodesicResponse struct {
	DistanceM  float64 `json:"distance_m"`
	Iterations int     `json:"iterations"`
	Coincident bool    `json:"coincident"`
}

// HandleGeodesic returns the WGS84 distance between two points given as
// lat1, lon1, lat2 and lon2 query parameters.
func (s *ServerContext) HandleGeodesic(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var vals [4]float64
	for i, key := range []string{"lat1", "lon1", "lat2", "lon2"} {
		v, err := strconv.ParseFloat(q.Get(key), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid %s: %q", key, q.Get(key)))
			return
		}
		vals[i] = v
	}

	p1 := geo.Point{Lat: vals[0], Lon: vals[1]}
	p2 := geo.Point{Lat: vals[2], Lon: vals[3]}

	g, err := geo.WGS84.Inverse(p1, p2)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	writeJSON(w, http.StatusOK, "application/json", geodesicResponse{
		DistanceM:  g.DistanceM,
		Iterations: g.Iterations,
		Coincident: g.Coincident,
	})
}

// HandleHealth reports liveness.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "application/json", map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, contentType string, v interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, "application/json", map[string]string{"error": err.Error()})
}
