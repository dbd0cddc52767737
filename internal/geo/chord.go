package geo

import "math"

// ChordDistance converts a surface arc length in kilometers into the
// straight-line distance through the Earth, treating the arc as part of a
// circle of radius MeanEarthRadiusKm. The input is not validated.
func ChordDistance(arcKm float64) float64 {
	r := MeanEarthRadiusKm
	theta := arcKm / r

	// law of cosines on the central angle
	return math.Sqrt(2*r*r - 2*r*r*math.Cos(theta))
}
