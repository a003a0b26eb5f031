package config

import (
	"encoding/json"
	"fmt"
	"os"

	"avl2step/internal/airfoil"
)

// Config holds converter settings loadable from a JSON file.
type Config struct {
	// Points is the per-side chordwise station count for generated NACA
	// profiles.
	Points int `json:"points"`

	// KeepLastSurface disables the default exclusion of the final surface
	// (AVL files commonly end with a non-geometric reference surface).
	KeepLastSurface bool `json:"keep_last_surface"`

	// Strict aborts the run on the first loft failure instead of skipping
	// the surface with a warning.
	Strict bool `json:"strict"`

	// Preview is an optional output path for a planform WebP render.
	Preview string `json:"preview"`

	// Quiet suppresses per-surface progress output.
	Quiet bool `json:"quiet"`
}

// Load reads a JSON config file. Fields not set in the file keep their zero
// values; Resolve fills in defaults afterwards.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Points   int
	KeepLast bool
	Strict   bool
	Preview  string
	Quiet    bool
}

// Resolve applies CLI flag overrides and fills remaining defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Points > 0 {
		c.Points = flags.Points
	}
	if flags.KeepLast {
		c.KeepLastSurface = true
	}
	if flags.Strict {
		c.Strict = true
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.Quiet {
		c.Quiet = true
	}

	if c.Points <= 0 {
		c.Points = airfoil.DefaultPoints
	}
}
