package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:8765", cfg.Channel.Listen)
	assert.Equal(t, 120, cfg.Render.FPS)
	assert.Equal(t, "engine/assembly.json", cfg.Assets.Scene)
	assert.Empty(t, cfg.Assets.Dir)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.toml")
	doc := `
[log]
level = "debug"

[render]
fps = 60
hud = false

[device]
model = "Pixel 8"
sdk_level = 31
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 60, cfg.Render.FPS)
	assert.Equal(t, 1280, cfg.Render.Width)
	assert.False(t, cfg.Render.HUD)
	assert.Equal(t, "Pixel 8", cfg.Device.Model)
	assert.Equal(t, 31, cfg.Device.SDKLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("[render]\nframes = 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestParseValidates(t *testing.T) {
	_, err := Parse(strings.NewReader("[render]\nfps = 0\nwidth = -1\n[log]\nformat = \"xml\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render.fps")
	assert.Contains(t, err.Error(), "invalid size")
	assert.Contains(t, err.Error(), "log.format")
}

func TestWatchNeedsDir(t *testing.T) {
	_, err := Parse(strings.NewReader("[assets]\nwatch = true\n"))
	assert.ErrorContains(t, err, "assets.watch")
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Assets.Dir = "/srv/assets"
	cfg.Assets.Watch = true
	data, err := cfg.Encode()
	require.NoError(t, err)

	back, err := Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
