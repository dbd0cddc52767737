package parallax

import (
	"math"
	"testing"
)

func TestAngle(t *testing.T) {
	tests := []struct {
		name                 string
		ra1, dec1, ra2, dec2 float64
		want                 float64
	}{
		{"identical", 120, -15, 120, -15, 0},
		{"ra only", 10, 5, 13, 5, 3},
		{"dec only", 10, 5, 10, 1, 4},
		{"pythagorean", 10, 5, 13, 1, 5},
		{"order independent", 13, 1, 10, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Angle(tt.ra1, tt.dec1, tt.ra2, tt.dec2)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Angle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAngle_NonNegative(t *testing.T) {
	values := []float64{-90, -45.5, -1, 0, 0.25, 33, 180, 359.9}
	for _, a := range values {
		for _, b := range values {
			if got := Angle(a, b, b, a); got < 0 {
				t.Fatalf("Angle(%v, %v, %v, %v) = %v, want >= 0", a, b, b, a, got)
			}
		}
	}
}
