package parallax

import (
	"math"

	"github.com/woozymasta/parallax/internal/geo"
)

// Triangle holds every angle (degrees) and side (km) of the station /
// target geometry.
//
// A and B are the stations, O the Earth centre, M the target and N the
// intersection of the local horizon lines at A and B. The model assumes
// OA = OB and that M lies above the chord AB on the far side of N, so the
// altitudes at A and B add to the angles the horizon makes with the chord.
type Triangle struct {
	ANB float64 `json:"anb"` // apex of the horizon-line triangle
	AOB float64 `json:"aob"` // central angle between the stations
	OAB float64 `json:"oab"`
	OBA float64 `json:"oba"`
	NAB float64 `json:"nab"` // horizon below chord at A
	NBA float64 `json:"nba"` // horizon below chord at B
	MAB float64 `json:"mab"` // target angle at A
	MBA float64 `json:"mba"` // target angle at B

	Parallax   float64 `json:"parallax"`    // AMB
	BaselineKm float64 `json:"baseline_km"` // AB chord
	DistA      float64 `json:"dist_a_km"`   // AM
	DistB      float64 `json:"dist_b_km"`   // BM
}

// SolveTriangle derives the auxiliary angles from the two altitudes and
// the parallax angle, then applies the law of sines with the chord
// baseline as reference side.
//
// Inputs are not validated. Values inconsistent with the assumed
// configuration give finite but meaningless distances, and a zero
// parallax yields NaN or Inf.
func SolveTriangle(alt1, alt2, parallaxDeg, baselineKm float64) Triangle {
	t := Triangle{Parallax: parallaxDeg, BaselineKm: baselineKm}

	// angle sums: ANB + NAB + NBA = 180, ANBO has right angles at A and B
	t.ANB = alt1 + alt2 + parallaxDeg
	t.AOB = 180 - t.ANB
	t.OAB = (180 - t.AOB) / 2
	t.OBA = t.OAB
	t.NAB = 90 - t.OAB
	t.NBA = 90 - t.OBA
	t.MAB = t.NAB + alt1
	t.MBA = t.NBA + alt2

	sinP := math.Sin(geo.Radians(parallaxDeg))
	t.DistA = baselineKm * math.Sin(geo.Radians(t.MBA)) / sinP
	t.DistB = baselineKm * math.Sin(geo.Radians(t.MAB)) / sinP

	return t
}

// Triangulate returns the distances (km) from station A and station B to
// the target. See SolveTriangle for the geometry.
func Triangulate(alt1, alt2, parallaxDeg, baselineKm float64) (distA, distB float64) {
	t := SolveTriangle(alt1, alt2, parallaxDeg, baselineKm)
	return t.DistA, t.DistB
}
