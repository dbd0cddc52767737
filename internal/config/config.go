// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/parallax/internal/geo"
	"github.com/woozymasta/parallax/internal/parallax"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the root configuration file structure.
type Config struct {
	Title        string        `yaml:"title,omitempty" json:"title,omitempty"`
	Target       string        `yaml:"target,omitempty" json:"target,omitempty"` // default target name
	Observations []Observation `yaml:"observations" json:"observations"`
}

// Observation is one simultaneous measurement of a target from two stations.
type Observation struct {
	Name     string    `yaml:"name" json:"name"`
	Target   string    `yaml:"target,omitempty" json:"target,omitempty"`
	Time     string    `yaml:"time,omitempty" json:"time,omitempty"`
	Stations []Station `yaml:"stations" json:"stations"`
}

// Station is a single observer entry. The position comes either from
// Lat/Lon or from an NMEA sentence recorded by the station's receiver.
type Station struct {
	Name string   `yaml:"name" json:"name"`
	Lat  *float64 `yaml:"lat,omitempty" json:"lat,omitempty"`
	Lon  *float64 `yaml:"lon,omitempty" json:"lon,omitempty"`
	NMEA string   `yaml:"nmea,omitempty" json:"nmea,omitempty"`

	RA       float64 `yaml:"ra" json:"ra"`
	Dec      float64 `yaml:"dec" json:"dec"`
	Altitude float64 `yaml:"alt" json:"alt"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Observations {
		if cfg.Observations[i].Target == "" {
			cfg.Observations[i].Target = cfg.Target
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks observation names, station counts and station positions.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Observations))

	for i, o := range c.Observations {
		if o.Name == "" {
			return fmt.Errorf("%w: observation #%d has no name", ErrInvalid, i)
		}
		if seen[o.Name] {
			return fmt.Errorf("%w: duplicate observation %q", ErrInvalid, o.Name)
		}
		seen[o.Name] = true

		if len(o.Stations) != 2 {
			return fmt.Errorf("%w: observation %q needs exactly 2 stations, got %d", ErrInvalid, o.Name, len(o.Stations))
		}

		for _, s := range o.Stations {
			p, err := s.Point()
			if err != nil {
				return fmt.Errorf("%w: observation %q station %q: %v", ErrInvalid, o.Name, s.Name, err)
			}
			if p.Lat < -90 || p.Lat > 90 {
				return fmt.Errorf("%w: observation %q station %q: latitude %v out of range", ErrInvalid, o.Name, s.Name, p.Lat)
			}
			if p.Lon < -180 || p.Lon > 180 {
				return fmt.Errorf("%w: observation %q station %q: longitude %v out of range", ErrInvalid, o.Name, s.Name, p.Lon)
			}
		}
	}

	return nil
}

// Find returns the observation with the given name.
func (c *Config) Find(name string) (Observation, bool) {
	for _, o := range c.Observations {
		if o.Name == name {
			return o, true
		}
	}
	return Observation{}, false
}

// Point resolves the station position. Explicit coordinates take
// priority over the NMEA sentence.
func (s Station) Point() (geo.Point, error) {
	if s.Lat != nil && s.Lon != nil {
		return geo.Point{Lat: *s.Lat, Lon: *s.Lon}, nil
	}
	if s.NMEA != "" {
		return geo.PointFromNMEA(s.NMEA)
	}
	return geo.Point{}, errors.New("no position: set lat/lon or nmea")
}

// Station converts the entry into a solver station.
func (s Station) Station() (parallax.Station, error) {
	p, err := s.Point()
	if err != nil {
		return parallax.Station{}, err
	}

	return parallax.Station{
		Position: p,
		Sky: parallax.Observation{
			RA:       s.RA,
			Dec:      s.Dec,
			Altitude: s.Altitude,
		},
	}, nil
}

// Pair returns both solver stations of the observation.
func (o Observation) Pair() (parallax.Station, parallax.Station, error) {
	if len(o.Stations) != 2 {
		return parallax.Station{}, parallax.Station{}, fmt.Errorf("%w: observation %q has %d stations", ErrInvalid, o.Name, len(o.Stations))
	}

	s1, err := o.Stations[0].Station()
	if err != nil {
		return parallax.Station{}, parallax.Station{}, err
	}
	s2, err := o.Stations[1].Station()
	if err != nil {
		return parallax.Station{}, parallax.Station{}, err
	}

	return s1, s2, nil
}
