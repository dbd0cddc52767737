package parallax

import (
	"math"
	"testing"

	"github.com/woozymasta/parallax/internal/geo"
)

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}

// rayIntersection places A at the origin and B at (c, 0) and intersects
// the rays leaving A at angle mab and B at angle mba, independently of
// the law of sines.
func rayIntersection(c, mab, mba float64) (distA, distB float64) {
	ta := math.Tan(geo.Radians(mab))
	tb := math.Tan(geo.Radians(mba))
	x := c * tb / (ta + tb)
	y := x * ta
	return math.Hypot(x, y), math.Hypot(c-x, y)
}

func TestTriangulate_SyntheticTriangle(t *testing.T) {
	// Central angle 20: the horizon dips 10 below the chord at each station.
	// MAB = 60, MBA = 70, so the parallax is 50.
	const (
		baseline = 100.0
		alt1     = 50.0
		alt2     = 60.0
		p        = 50.0
	)

	wantA, wantB := rayIntersection(baseline, 60, 70)
	gotA, gotB := Triangulate(alt1, alt2, p, baseline)

	if relErr(gotA, wantA) > 1e-6 {
		t.Errorf("distA = %v, want %v", gotA, wantA)
	}
	if relErr(gotB, wantB) > 1e-6 {
		t.Errorf("distB = %v, want %v", gotB, wantB)
	}
}

func TestSolveTriangle_AuxiliaryAngles(t *testing.T) {
	tri := SolveTriangle(50, 60, 50, 100)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"ANB", tri.ANB, 160},
		{"AOB", tri.AOB, 20},
		{"OAB", tri.OAB, 80},
		{"OBA", tri.OBA, 80},
		{"NAB", tri.NAB, 10},
		{"NBA", tri.NBA, 10},
		{"MAB", tri.MAB, 60},
		{"MBA", tri.MBA, 70},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	// triangle AMB closes
	if sum := tri.MAB + tri.MBA + tri.Parallax; math.Abs(sum-180) > 1e-9 {
		t.Errorf("MAB + MBA + parallax = %v, want 180", sum)
	}
}

func TestTriangulate_LunarScale(t *testing.T) {
	// ~8000 km chord, 1.5 degree parallax puts the target near lunar distance.
	distA, distB := Triangulate(40, 35, 1.5, 8000)

	if relErr(distA, 305120.8746917427) > 1e-6 {
		t.Errorf("distA = %v, want ~305120.87", distA)
	}
	if relErr(distB, 305469.8596890567) > 1e-6 {
		t.Errorf("distB = %v, want ~305469.86", distB)
	}
}

func TestTriangulate_ZeroParallax(t *testing.T) {
	distA, distB := Triangulate(30, 30, 0, 0)
	if !math.IsNaN(distA) || !math.IsNaN(distB) {
		t.Errorf("zero baseline and parallax = (%v, %v), want NaN", distA, distB)
	}

	distA, _ = Triangulate(30, 30, 0, 100)
	if !math.IsInf(distA, 0) {
		t.Errorf("zero parallax with baseline = %v, want Inf", distA)
	}
}
