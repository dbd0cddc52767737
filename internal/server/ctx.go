package server

import (
	"bytes"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/parallax/internal/config"
	"github.com/woozymasta/parallax/internal/geo"
	"github.com/woozymasta/parallax/internal/report"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Report    report.Report
	GeoJSON   geo.GeoJSONFeatureCollection
	IndexHTML []byte
	Diagrams  map[string][]byte
}

// NewServerContext solves the configured observations once and prepares
// every static response: index page, GeoJSON and WebP diagrams.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	log.Info().Int("config_observations_count", len(cfg.Observations)).Msg("Initializing server context")

	r := report.Build(cfg, nil)

	diagrams := make(map[string][]byte)
	for _, e := range r.Entries {
		img, err := report.Diagram(e)
		if err != nil {
			log.Trace().
				Err(err).
				Str("observation", e.Name).
				Msg("Diagram skipped")
			continue
		}

		var buf bytes.Buffer
		if err := report.EncodeWebP(&buf, img); err != nil {
			log.Error().
				Err(err).
				Str("observation", e.Name).
				Msg("Failed to encode diagram")
			continue
		}
		diagrams[e.Name] = buf.Bytes()
	}

	index, err := BuildIndex(cfg.Title, r)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("entries", len(r.Entries)).
		Int("diagrams", len(diagrams)).
		Int("index_bytes", len(index)).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:    cfg,
		Report:    r,
		GeoJSON:   report.GeoJSON(r),
		IndexHTML: index,
		Diagrams:  diagrams,
	}, nil
}
