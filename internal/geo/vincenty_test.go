package geo

import (
	"errors"
	"math"
	"testing"
)

func TestDistance_ReferenceVector(t *testing.T) {
	// Land's End to John o' Groats.
	p1 := Point{Lat: 50.06632, Lon: -5.71475}
	p2 := Point{Lat: 58.64402, Lon: -3.07009}

	d, err := Distance(p1, p2)
	if err != nil {
		t.Fatalf("Distance returned error: %v", err)
	}
	if math.Abs(d-969954.166) > 0.002 {
		t.Errorf("Distance = %.3f m, want ~969954.166 m", d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := []struct {
		name   string
		p1, p2 Point
	}{
		{"uk", Point{50.06632, -5.71475}, Point{58.64402, -3.07009}},
		{"transatlantic", Point{40.7128, -74.006}, Point{51.5074, -0.1278}},
		{"southern", Point{-33.9249, 18.4241}, Point{-37.8136, 144.9631}},
		{"cross equator", Point{10, 20}, Point{-15, 35}},
		{"equatorial", Point{0, 10}, Point{0, 20}},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			d1, err1 := Distance(tt.p1, tt.p2)
			d2, err2 := Distance(tt.p2, tt.p1)
			if err1 != nil || err2 != nil {
				t.Fatalf("unexpected errors: %v, %v", err1, err2)
			}
			if math.Abs(d1-d2) > 0.001 {
				t.Errorf("asymmetric distance: %.3f vs %.3f", d1, d2)
			}
		})
	}
}

func TestDistance_Identity(t *testing.T) {
	points := []Point{
		{0, 0},
		{51.4769, -0.0005},
		{-89.5, 120},
		{45, 180},
	}

	for _, p := range points {
		g, err := WGS84.Inverse(p, p)
		if err != nil {
			t.Fatalf("Inverse(%v, %v) error: %v", p, p, err)
		}
		if g.DistanceM != 0 {
			t.Errorf("Inverse(%v, %v) = %f, want 0", p, p, g.DistanceM)
		}
		if !g.Coincident {
			t.Errorf("Inverse(%v, %v) not flagged coincident", p, p)
		}
	}
}

func TestDistance_Equatorial(t *testing.T) {
	// cos²α is zero along the equator; the result must stay finite.
	tests := []struct {
		p1, p2 Point
		want   float64
	}{
		{Point{0, 0}, Point{0, 90}, 10018754.171},
		{Point{0, 10}, Point{0, 20}, 1113194.908},
	}

	for _, tt := range tests {
		d, err := Distance(tt.p1, tt.p2)
		if err != nil {
			t.Fatalf("Distance(%v, %v) error: %v", tt.p1, tt.p2, err)
		}
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Fatalf("Distance(%v, %v) = %v, want finite", tt.p1, tt.p2, d)
		}
		if math.Abs(d-tt.want) > 0.002 {
			t.Errorf("Distance(%v, %v) = %.3f, want %.3f", tt.p1, tt.p2, d, tt.want)
		}
	}
}

func TestDistance_NoConvergence(t *testing.T) {
	// Nearly antipodal points where lambda keeps oscillating.
	g, err := WGS84.Inverse(Point{0, 0}, Point{0.5, 179.5})
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("err = %v, want ErrNoConvergence", err)
	}
	if !math.IsNaN(g.DistanceM) {
		t.Errorf("distance = %f, want NaN", g.DistanceM)
	}
	if g.Iterations != MaxIterations {
		t.Errorf("iterations = %d, want %d", g.Iterations, MaxIterations)
	}
}

func TestDistance_ConvergesWithinLimit(t *testing.T) {
	g, err := WGS84.Inverse(Point{40.7128, -74.006}, Point{51.5074, -0.1278})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Iterations < 1 || g.Iterations >= MaxIterations {
		t.Errorf("iterations = %d, want within (0, %d)", g.Iterations, MaxIterations)
	}
	if math.Abs(g.DistanceM-5585233.579) > 0.002 {
		t.Errorf("distance = %.3f, want ~5585233.579", g.DistanceM)
	}
}

func TestDistance_MillimeterRounding(t *testing.T) {
	d, err := Distance(Point{50.06632, -5.71475}, Point{58.64402, -3.07009})
	if err != nil {
		t.Fatal(err)
	}
	scaled := d * 1000
	if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		t.Errorf("distance %.6f not rounded to millimeters", d)
	}
}
