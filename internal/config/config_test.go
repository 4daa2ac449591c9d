package config

import (
	"os"
	"path/filepath"
	"testing"

	"cnc-tracer/internal/contour"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 50, cfg.LowThreshold)
	assert.Equal(t, 150, cfg.HighThreshold)
	assert.Equal(t, 600.0, cfg.CanvasSize)
	assert.Equal(t, 10, cfg.MinPoints)
	assert.NoError(t, cfg.Validate())

	eo := cfg.EdgeOptions()
	assert.Equal(t, float32(50), eo.LowThreshold)
	assert.Equal(t, float32(150), eo.HighThreshold)
	assert.Equal(t, contour.ApproxNone, cfg.ContourOptions().Approximation)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := Default()
	cfg.MinPoints = 25
	cfg.Approximation = "simple"
	cfg.Topology = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, contour.ApproxSimple, loaded.ContourOptions().Approximation)
	assert.True(t, loaded.ContourOptions().Topology)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"min_points": 3}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MinPoints)
	assert.Equal(t, 150, cfg.HighThreshold)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LowThreshold = 200
	cfg.BlurKernel = 4
	cfg.CanvasSize = 0
	cfg.Approximation = "bogus"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds high threshold")
	assert.Contains(t, err.Error(), "blur kernel")
	assert.Contains(t, err.Error(), "canvas size")
	assert.Contains(t, err.Error(), "bogus")
}
