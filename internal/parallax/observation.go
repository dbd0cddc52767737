// Package parallax estimates the distance to a distant object seen
// simultaneously from two ground stations.
package parallax

import (
	"math"

	"github.com/woozymasta/parallax/internal/geo"
)

// Observation is the sky position and elevation of the target as seen
// from one station at one instant. All values are in degrees.
type Observation struct {
	RA       float64 `json:"ra" yaml:"ra"`             // right ascension
	Dec      float64 `json:"dec" yaml:"dec"`           // declination
	Altitude float64 `json:"altitude" yaml:"altitude"` // elevation above the local horizon
}

// Station pairs an observer position with its simultaneous observation.
type Station struct {
	Position geo.Point   `json:"position" yaml:"position"`
	Sky      Observation `json:"sky" yaml:"sky"`
}

// Angle returns the separation in degrees between two (RA, Dec) pairs.
//
// It is the planar Pythagorean difference of the coordinates, not a
// great-circle separation, and degrades at large separations or close to
// the celestial poles.
func Angle(ra1, dec1, ra2, dec2 float64) float64 {
	dRA := math.Abs(ra2 - ra1)
	dDec := math.Abs(dec1 - dec2)

	return math.Sqrt(dRA*dRA + dDec*dDec)
}
