// Package config provides JSON-based pipeline settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cnc-tracer/internal/contour"
	"cnc-tracer/internal/edge"
	"cnc-tracer/internal/toolpath"
)

const (
	appDir     = "cnc-tracer"
	configFile = "config.json"
)

// Config holds every tunable of the image-to-toolpath pipeline.
type Config struct {
	LowThreshold  int     `json:"low_threshold"`
	HighThreshold int     `json:"high_threshold"`
	BlurKernel    int     `json:"blur_kernel"`
	CanvasSize    float64 `json:"canvas_size"`
	MinPoints     int     `json:"min_points"`

	// Approximation is "none" (every boundary pixel) or "simple".
	Approximation string `json:"approximation,omitempty"`
	// Topology tags holes with a parent reference instead of a flat list.
	Topology bool `json:"topology,omitempty"`
	// Simplify is the Douglas-Peucker tolerance in canvas units, 0 disables it.
	Simplify float64 `json:"simplify,omitempty"`
	// Workers > 1 maps contours concurrently.
	Workers int `json:"workers,omitempty"`
	// CloseContours adds a return stroke to each polyline's first point.
	CloseContours bool `json:"close_contours"`
}

// Default returns the recognised defaults: thresholds 50/150, a 600 unit
// canvas and a 10 point minimum.
func Default() Config {
	return Config{
		LowThreshold:  50,
		HighThreshold: 150,
		BlurKernel:    5,
		CanvasSize:    toolpath.DefaultCanvasSize,
		MinPoints:     toolpath.DefaultMinPoints,
		Approximation: contour.ApproxNone.String(),
		CloseContours: true,
	}
}

// DefaultPath returns ~/.config/cnc-tracer/config.json (or the platform equivalent).
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, configFile)
}

// Load reads a config file over the defaults. A missing file is not an
// error and yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Save writes the config to disk, creating the directory if needed.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports settings the pipeline cannot honour.
func (c Config) Validate() error {
	var errs []error
	if c.LowThreshold < 0 || c.HighThreshold < 0 {
		errs = append(errs, fmt.Errorf("thresholds must be non-negative (%d, %d)", c.LowThreshold, c.HighThreshold))
	}
	if c.LowThreshold > c.HighThreshold {
		errs = append(errs, fmt.Errorf("low threshold %d exceeds high threshold %d", c.LowThreshold, c.HighThreshold))
	}
	if c.BlurKernel < 1 || c.BlurKernel%2 == 0 {
		errs = append(errs, fmt.Errorf("blur kernel must be a positive odd size, got %d", c.BlurKernel))
	}
	if c.CanvasSize <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %g", c.CanvasSize))
	}
	if c.MinPoints < 0 {
		errs = append(errs, fmt.Errorf("min points must be non-negative, got %d", c.MinPoints))
	}
	if _, ok := contour.ParseApproximation(c.Approximation); !ok {
		errs = append(errs, fmt.Errorf("unknown approximation %q", c.Approximation))
	}
	if c.Simplify < 0 {
		errs = append(errs, fmt.Errorf("simplify tolerance must be non-negative, got %g", c.Simplify))
	}
	return errors.Join(errs...)
}

// EdgeOptions returns the edge extraction settings.
func (c Config) EdgeOptions() edge.Options {
	return edge.Options{
		LowThreshold:  float32(c.LowThreshold),
		HighThreshold: float32(c.HighThreshold),
		BlurKernel:    c.BlurKernel,
	}
}

// ContourOptions returns the tracing settings.
func (c Config) ContourOptions() contour.Options {
	approx, _ := contour.ParseApproximation(c.Approximation)
	return contour.Options{Approximation: approx, Topology: c.Topology}
}
