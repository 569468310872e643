// Package config loads host settings from an optional TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/philipparndt/cylinderworks/internal/device"
)

// Config holds every host setting. Command line flags are applied on top
// of a loaded Config.
type Config struct {
	Log     Log         `toml:"log"`
	Channel Channel     `toml:"channel"`
	Assets  Assets      `toml:"assets"`
	Render  Render      `toml:"render"`
	Device  device.Info `toml:"device"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Channel configures the diagnostics transport.
type Channel struct {
	Listen string `toml:"listen"`
}

// Assets locates the scene description.
type Assets struct {
	// Dir is the asset root on disk. Empty selects the embedded assets.
	Dir string `toml:"dir"`
	// Prefix is prepended to logical asset paths to form lookup keys.
	Prefix string `toml:"prefix"`
	// Scene is the logical path of the scene description.
	Scene string `toml:"scene"`
	// Watch reloads the scene when files under Dir change.
	Watch bool `toml:"watch"`
}

// Render configures the soft engine and host window.
type Render struct {
	FPS          int  `toml:"fps"`
	Width        int  `toml:"width"`
	Height       int  `toml:"height"`
	MaxInstances int  `toml:"max_instances"`
	HUD          bool `toml:"hud"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:     Log{Level: "info", Format: "text"},
		Channel: Channel{Listen: "127.0.0.1:8765"},
		Assets:  Assets{Scene: "engine/assembly.json"},
		Render:  Render{FPS: 120, Width: 1280, Height: 720, MaxInstances: 4, HUD: true},
		Device:  device.Info{SDKLevel: 34},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := cfg.decode(f); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a TOML document over the defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return err
	}
	return c.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if c.Render.FPS <= 0 {
		errs = append(errs, fmt.Errorf("render.fps: must be positive, got %d", c.Render.FPS))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render: invalid size %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Render.MaxInstances < 0 {
		errs = append(errs, fmt.Errorf("render.max_instances: must not be negative"))
	}
	if c.Assets.Watch && c.Assets.Dir == "" {
		errs = append(errs, errors.New("assets.watch: needs assets.dir"))
	}
	if c.Assets.Scene == "" {
		errs = append(errs, errors.New("assets.scene: must not be empty"))
	}
	return errors.Join(errs...)
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
