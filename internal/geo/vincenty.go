package geo

import (
	"errors"
	"math"
)

const (
	// MaxIterations bounds the lambda iteration of the inverse solver.
	MaxIterations = 100

	// Tolerance is the lambda change (radians) accepted as converged.
	Tolerance = 1e-12
)

// ErrNoConvergence is returned when the inverse solver exhausts
// MaxIterations without meeting Tolerance, typically for nearly
// antipodal points.
var ErrNoConvergence = errors.New("geodesic: vincenty inverse failed to converge")

// Geodesic is the outcome of an inverse geodesic computation.
type Geodesic struct {
	DistanceM  float64 // surface distance in meters, millimeter precision
	Iterations int     // lambda updates performed
	Coincident bool    // sin(sigma) was exactly zero
}

// Distance returns the surface distance in meters between p1 and p2 on
// WGS84. On ErrNoConvergence the distance is NaN.
func Distance(p1, p2 Point) (float64, error) {
	g, err := WGS84.Inverse(p1, p2)
	return g.DistanceM, err
}

// Inverse solves the inverse geodesic problem between p1 and p2 using
// Vincenty's iterative method.
//
// Coincident points return a zero distance without iterating to
// convergence. Paths along the equator, where cos²α is zero, use
// cos(2σm) = 0.
func (e Ellipsoid) Inverse(p1, p2 Point) (Geodesic, error) {
	a, b, f := e.A, e.B, e.F

	L := Radians(p2.Lon - p1.Lon)
	U1 := math.Atan((1 - f) * math.Tan(Radians(p1.Lat)))
	U2 := math.Atan((1 - f) * math.Tan(Radians(p2.Lat)))

	sinU1, cosU1 := math.Sin(U1), math.Cos(U1)
	sinU2, cosU2 := math.Sin(U2), math.Cos(U2)

	lambda := L
	var sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM float64

	converged := false
	iter := 0
	for iter < MaxIterations {
		sinLambda := math.Sin(lambda)
		cosLambda := math.Cos(lambda)

		sinSigma = math.Sqrt((cosU2*sinLambda)*(cosU2*sinLambda) +
			(cosU1*sinU2-sinU1*cosU2*cosLambda)*(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			return Geodesic{Iterations: iter, Coincident: true}, nil
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha

		cos2SigmaM = 0
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
		lambdaPrev := lambda
		lambda = L + (1-C)*f*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		iter++

		if math.Abs(lambda-lambdaPrev) <= Tolerance {
			converged = true
			break
		}
	}

	if !converged {
		return Geodesic{DistanceM: math.NaN(), Iterations: iter}, ErrNoConvergence
	}

	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	s := b * A * (sigma - deltaSigma)

	return Geodesic{
		DistanceM:  math.Round(s*1000) / 1000,
		Iterations: iter,
	}, nil
}
