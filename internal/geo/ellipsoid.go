// Package geo handles geodetic positions, ellipsoidal distances and
// geographic export structures.
package geo

// Point is a geodetic position on the ellipsoid in decimal degrees.
// Latitude is expected in [-90, 90] and longitude in [-180, 180]; values
// outside the range are not rejected and produce undefined but
// deterministic results.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Ellipsoid holds the parameters of a reference ellipsoid.
type Ellipsoid struct {
	A float64 // semi-major axis (meters)
	B float64 // semi-minor axis (meters)
	F float64 // flattening
}

// WGS84 is the World Geodetic System 1984 ellipsoid.
var WGS84 = Ellipsoid{
	A: 6378137.0,
	B: 6356752.3142,
	F: 1.0 / 298.257223563,
}

// MeanEarthRadiusKm is the sphere radius used when turning a surface arc
// into a chord. It is not derived from WGS84.
const MeanEarthRadiusKm = 6356.7523142
