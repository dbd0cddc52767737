package geo

import (
	"errors"
	"math"
	"testing"
)

func TestPointFromNMEA(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Point
		wantErr error
		anyErr  bool
	}{
		{
			name: "gga",
			line: "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47",
			want: Point{Lat: 48.1173, Lon: 11.516666666666667},
		},
		{
			name: "rmc with surrounding whitespace",
			line: "  $GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A\r\n",
			want: Point{Lat: 48.1173, Lon: 11.516666666666667},
		},
		{
			name:    "gga without fix",
			line:    "$GPGGA,123519,4807.038,N,01131.000,E,0,08,0.9,545.4,M,46.9,M,,*46",
			wantErr: ErrNoFix,
		},
		{
			name:    "rmc void",
			line:    "$GPRMC,123519,V,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*7D",
			wantErr: ErrNoFix,
		},
		{
			name:   "unsupported type",
			line:   "$GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1*39",
			anyErr: true,
		},
		{
			name:   "garbage",
			line:   "not a sentence",
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PointFromNMEA(tt.line)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.anyErr:
				if err == nil {
					t.Fatalf("expected error, got point %v", got)
				}
				return
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(got.Lat-tt.want.Lat) > 1e-9 || math.Abs(got.Lon-tt.want.Lon) > 1e-9 {
				t.Errorf("PointFromNMEA = %+v, want %+v", got, tt.want)
			}
		})
	}
}
