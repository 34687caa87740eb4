package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/ptlive/log"
	"github.com/achilleasa/ptlive/renderer"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "ptlive.yaml", `
log_level: debug
listen: ":9000"
renderer:
  width: 320
  height: 200
  samples_per_frame: 8
  convention: world-position
  build_accel: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, log.Debug, cfg.Level())
	require.Equal(t, ":9000", cfg.Listen)
	require.Equal(t, "frames.db", cfg.SnapshotPath)
	require.EqualValues(t, 320, cfg.Renderer.FrameW)
	require.EqualValues(t, 200, cfg.Renderer.FrameH)
	require.EqualValues(t, 8, cfg.Renderer.SamplesPerFrame)
	require.True(t, cfg.Renderer.BuildAccel)

	// Untouched keys keep their defaults.
	def := renderer.DefaultOptions()
	require.Equal(t, def.FrameRate, cfg.Renderer.FrameRate)
	require.Equal(t, def.EpsilonIntersect, cfg.Renderer.EpsilonIntersect)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "ptlive.toml", `
log_level = "warning"
snapshot_path = "out.db"

[renderer]
frame_rate = 30
blend_weight = 0.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, log.Warning, cfg.Level())
	require.Equal(t, "out.db", cfg.SnapshotPath)
	require.EqualValues(t, 30, cfg.Renderer.FrameRate)
	require.EqualValues(t, 0.5, cfg.Renderer.BlendWeight)
}

func TestEmptyFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	type spec struct {
		name    string
		content string
		errText string
	}

	specs := []spec{
		{"ptlive.json", "{}", "unsupported file format"},
		{"unknown.yaml", "colour: red\n", "colour"},
		{"level.yaml", "log_level: loud\n", "invalid log level"},
		{"invalid.yaml", "renderer:\n  width: 0\n", "frame dimensions"},
	}

	for index, s := range specs {
		_, err := Load(writeFile(t, s.name, s.content))
		require.Errorf(t, err, "[spec %d]", index)
		require.Truef(t, strings.Contains(err.Error(), s.errText), "[spec %d] expected error to mention %q; got %v", index, s.errText, err)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnknownTOMLKey(t *testing.T) {
	_, err := Load(writeFile(t, "unknown.toml", "colour = \"red\"\n"))
	var strictErr *toml.StrictMissingError
	require.ErrorAs(t, err, &strictErr)
}
