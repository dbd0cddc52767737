// Package report solves configured observations and exports the results.
package report

import (
	"errors"
	"math"
	"time"

	"github.com/woozymasta/parallax/internal/config"
	"github.com/woozymasta/parallax/internal/geo"
	"github.com/woozymasta/parallax/internal/metrics"
	"github.com/woozymasta/parallax/internal/parallax"

	"github.com/rs/zerolog/log"
)

// Report is the solved observation catalog.
type Report struct {
	Title     string  `json:"title,omitempty" yaml:"title,omitempty"`
	Generated string  `json:"generated" yaml:"generated"`
	Entries   []Entry `json:"entries" yaml:"entries"`
}

// Entry is one solved observation. Distances that are not finite numbers
// are reported as null.
type Entry struct {
	Name     string         `json:"name" yaml:"name"`
	Target   string         `json:"target,omitempty" yaml:"target,omitempty"`
	Time     string         `json:"time,omitempty" yaml:"time,omitempty"`
	Stations []StationEntry `json:"stations" yaml:"stations"`

	ArcKm       *float64 `json:"arc_km" yaml:"arc_km"`
	BaselineKm  *float64 `json:"baseline_km" yaml:"baseline_km"`
	ParallaxDeg *float64 `json:"parallax_deg" yaml:"parallax_deg"`
	DistAKm     *float64 `json:"dist_a_km" yaml:"dist_a_km"`
	DistBKm     *float64 `json:"dist_b_km" yaml:"dist_b_km"`
	MeanKm      *float64 `json:"mean_km" yaml:"mean_km"`

	Iterations int    `json:"iterations" yaml:"iterations"`
	Outcome    string `json:"outcome" yaml:"outcome"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`

	solution parallax.Solution
}

// StationEntry echoes the resolved station inputs.
type StationEntry struct {
	Name     string  `json:"name" yaml:"name"`
	Lat      float64 `json:"lat" yaml:"lat"`
	Lon      float64 `json:"lon" yaml:"lon"`
	RA       float64 `json:"ra" yaml:"ra"`
	Dec      float64 `json:"dec" yaml:"dec"`
	Altitude float64 `json:"alt" yaml:"alt"`
}

// OK reports whether the entry holds a usable pair of distances.
func (e Entry) OK() bool {
	return e.Outcome == metrics.OutcomeOK
}

// Solution returns the raw solver output.
func (e Entry) Solution() parallax.Solution {
	return e.solution
}

// Build solves every observation of cfg. When limit is not empty only the
// named observations are solved, in the order given.
func Build(cfg *config.Config, limit []string) Report {
	toSolve := cfg.Observations

	if len(limit) > 0 {
		toSolve = make([]config.Observation, 0, len(limit))
		seen := make(map[string]bool)

		for _, name := range limit {
			if seen[name] {
				continue
			}
			seen[name] = true

			if o, ok := cfg.Find(name); ok {
				toSolve = append(toSolve, o)
			} else {
				log.Error().
					Str("name", name).
					Msg("Observation specified in --limit not found in configuration")
			}
		}
	}

	r := Report{
		Title:     cfg.Title,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Entries:   make([]Entry, 0, len(toSolve)),
	}

	for _, o := range toSolve {
		r.Entries = append(r.Entries, Solve(o))
	}

	return r
}

// Solve runs the two-station pipeline for a single observation.
func Solve(o config.Observation) Entry {
	e := Entry{
		Name:   o.Name,
		Target: o.Target,
		Time:   o.Time,
	}

	s1, s2, err := o.Pair()
	if err != nil {
		e.Outcome = metrics.OutcomeError
		e.Error = err.Error()
		metrics.ObserveSolution(e.Outcome, 0)

		log.Error().Err(err).Str("observation", o.Name).Msg("Failed to resolve stations")
		return e
	}

	for i, s := range []parallax.Station{s1, s2} {
		e.Stations = append(e.Stations, StationEntry{
			Name:     o.Stations[i].Name,
			Lat:      s.Position.Lat,
			Lon:      s.Position.Lon,
			RA:       s.Sky.RA,
			Dec:      s.Sky.Dec,
			Altitude: s.Sky.Altitude,
		})
	}

	sol, err := parallax.Solve(s1, s2)
	e.solution = sol
	e.Iterations = sol.Iterations

	switch {
	case errors.Is(err, geo.ErrNoConvergence):
		e.Outcome = metrics.OutcomeNoConvergence
		e.Error = err.Error()
	case err != nil:
		e.Outcome = metrics.OutcomeError
		e.Error = err.Error()
	case !sol.Valid():
		e.Outcome = metrics.OutcomeDegenerate
		e.Error = "degenerate geometry: zero parallax angle"
	default:
		e.Outcome = metrics.OutcomeOK
	}

	e.ArcKm = finite(sol.ArcKm)
	e.BaselineKm = finite(sol.BaselineKm)
	e.ParallaxDeg = finite(sol.Parallax)
	e.DistAKm = finite(sol.DistA)
	e.DistBKm = finite(sol.DistB)
	e.MeanKm = finite(sol.Mean())

	metrics.ObserveSolution(e.Outcome, e.Iterations)

	if e.OK() {
		log.Info().
			Str("observation", e.Name).
			Str("target", e.Target).
			Float64("baseline_km", sol.BaselineKm).
			Float64("parallax_deg", sol.Parallax).
			Float64("dist_a_km", sol.DistA).
			Float64("dist_b_km", sol.DistB).
			Int("iterations", sol.Iterations).
			Msg("Observation solved")
	} else {
		log.Warn().
			Str("observation", e.Name).
			Str("outcome", e.Outcome).
			Str("error", e.Error).
			Int("iterations", sol.Iterations).
			Msg("Observation not solved")
	}

	return e
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
