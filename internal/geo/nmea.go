package geo

import (
	"errors"
	"fmt"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
)

// ErrNoFix is returned when an NMEA sentence carries no valid position fix.
var ErrNoFix = errors.New("nmea: sentence has no valid fix")

// PointFromNMEA extracts a station position from a single NMEA 0183
// sentence. GGA, RMC and GLL sentences are supported.
func PointFromNMEA(line string) (Point, error) {
	line = strings.TrimSpace(line)

	sentence, err := nmea.Parse(line)
	if err != nil {
		return Point{}, fmt.Errorf("parse nmea sentence: %w", err)
	}

	switch sentence.DataType() {
	case nmea.TypeGGA:
		m := sentence.(nmea.GGA)
		if m.FixQuality == nmea.Invalid {
			return Point{}, ErrNoFix
		}
		return Point{Lat: m.Latitude, Lon: m.Longitude}, nil

	case nmea.TypeRMC:
		m := sentence.(nmea.RMC)
		if m.Validity != nmea.ValidRMC {
			return Point{}, ErrNoFix
		}
		return Point{Lat: m.Latitude, Lon: m.Longitude}, nil

	case nmea.TypeGLL:
		m := sentence.(nmea.GLL)
		if m.Validity != nmea.ValidGLL {
			return Point{}, ErrNoFix
		}
		return Point{Lat: m.Latitude, Lon: m.Longitude}, nil

	default:
		return Point{}, fmt.Errorf("unsupported nmea sentence type %q", sentence.DataType())
	}
}
