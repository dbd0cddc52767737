package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/woozymasta/parallax/internal/geo"

	"github.com/rs/zerolog/log"
)

// GeoJSON exports the stations of every entry as Points and each baseline
// as a LineString.
func GeoJSON(r Report) geo.GeoJSONFeatureCollection {
	fc := geo.NewFeatureCollection()

	for _, e := range r.Entries {
		if len(e.Stations) != 2 {
			continue
		}

		dists := []*float64{e.DistAKm, e.DistBKm}
		line := make([]geo.Point, 0, 2)

		for i, s := range e.Stations {
			p := geo.Point{Lat: s.Lat, Lon: s.Lon}
			line = append(line, p)

			fc.Features = append(fc.Features, geo.PointFeature(p, map[string]interface{}{
				"observation": e.Name,
				"station":     s.Name,
				"role":        string(rune('A' + i)),
				"ra":          s.RA,
				"dec":         s.Dec,
				"alt":         s.Altitude,
				"distance_km": dists[i],
			}))
		}

		fc.Features = append(fc.Features, geo.LineFeature(line, map[string]interface{}{
			"observation": e.Name,
			"target":      e.Target,
			"outcome":     e.Outcome,
			"arc_km":      e.ArcKm,
			"chord_km":    e.BaselineKm,
		}))
	}

	return fc
}

// SaveGeoJSON marshals the feature collection and writes it to path.
func SaveGeoJSON(path string, fc geo.GeoJSONFeatureCollection) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return json.NewEncoder(f).Encode(fc)
}
