package main

import (
	"bufio"
	"os"

	"github.com/woozymasta/parallax/internal/config"
	"github.com/woozymasta/parallax/internal/logger"
	"github.com/woozymasta/parallax/internal/metrics"
	"github.com/woozymasta/parallax/internal/report"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config"   env:"CONFIG_FILE" description:"Path to observations file" default:"observations.yaml"`
	Limit      []string `short:"l" long:"limit"    env:"LIMIT_NAMES" description:"Limit solving to specific observation names"`
	Format     string   `short:"f" long:"format"   description:"Report format" choice:"json" choice:"yaml" default:"json"`
	Output     string   `short:"o" long:"out"      description:"Report file path. Writes to stdout if empty"`
	GeoJSON    string   `short:"g" long:"geojson"  description:"Also write stations and baselines as GeoJSON to this path"`
	Diagrams   string   `short:"d" long:"diagrams" description:"Also render WebP diagrams into this directory"`
	Strict     bool     `short:"s" long:"strict"   description:"Exit with status 2 if any observation is not solved"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Int("observations_total", len(cfg.Observations)).
		Strs("limit", opts.Limit).
		Msg("Starting solver")

	r := report.Build(cfg, opts.Limit)

	if err := writeReport(opts.Output, r, opts.Format); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write report")
	}

	if opts.GeoJSON != "" {
		if err := report.SaveGeoJSON(opts.GeoJSON, report.GeoJSON(r)); err != nil {
			log.Error().Err(err).Str("path", opts.GeoJSON).Msg("Failed to write GeoJSON")
		}
	}

	if opts.Diagrams != "" {
		n, err := report.SaveDiagrams(opts.Diagrams, r)
		if err != nil {
			log.Error().Err(err).Str("dir", opts.Diagrams).Msg("Failed to write diagrams")
		} else {
			log.Info().Int("count", n).Str("dir", opts.Diagrams).Msg("Diagrams rendered")
		}
	}

	failed := 0
	for _, e := range r.Entries {
		if e.Outcome != metrics.OutcomeOK {
			failed++
		}
	}

	log.Info().
		Int("solved", len(r.Entries)-failed).
		Int("failed", failed).
		Msg("Solver finished")

	if opts.Strict && failed > 0 {
		os.Exit(2)
	}
}

func writeReport(path string, r report.Report, format string) error {
	if path == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := report.Encode(w, r, format); err != nil {
			return err
		}
		return w.Flush()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Encode(f, r, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
