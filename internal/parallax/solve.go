package parallax

import (
	"fmt"
	"math"

	"github.com/woozymasta/parallax/internal/geo"
)

// Solution is the full result of a two-station distance estimate.
type Solution struct {
	Triangle

	ArcKm      float64 `json:"arc_km"`     // geodesic surface distance
	Iterations int     `json:"iterations"` // geodesic solver iterations
}

// Mean returns the average of the two station distances.
func (s Solution) Mean() float64 {
	return (s.DistA + s.DistB) / 2
}

// Solve runs the full pipeline: geodesic baseline, chord conversion,
// parallax angle and triangulation.
//
// When the geodesic solver does not converge the error wraps
// geo.ErrNoConvergence and the NaN baseline is carried through, so every
// distance in the returned Solution is NaN.
func Solve(s1, s2 Station) (Solution, error) {
	g, gerr := geo.WGS84.Inverse(s1.Position, s2.Position)

	arcKm := g.DistanceM / 1000
	chordKm := geo.ChordDistance(arcKm)
	p := Angle(s1.Sky.RA, s1.Sky.Dec, s2.Sky.RA, s2.Sky.Dec)

	sol := Solution{
		Triangle:   SolveTriangle(s1.Sky.Altitude, s2.Sky.Altitude, p, chordKm),
		ArcKm:      arcKm,
		Iterations: g.Iterations,
	}

	if gerr != nil {
		return sol, fmt.Errorf("baseline between %v and %v: %w", s1.Position, s2.Position, gerr)
	}

	return sol, nil
}

// DistanceToTarget returns the distance in kilometers from each station
// to the observed target.
//
// Identical stations give a zero baseline and a zero parallax, so both
// distances are NaN.
func DistanceToTarget(s1, s2 Station) (distA, distB float64, err error) {
	sol, err := Solve(s1, s2)
	return sol.DistA, sol.DistB, err
}

// Valid reports whether both distances are finite numbers.
func (s Solution) Valid() bool {
	for _, v := range []float64{s.DistA, s.DistB} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
