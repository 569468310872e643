package config

import (
	"github.com/spf13/pflag"
)

// Flags binds command line overrides for a Config.
type Flags struct {
	fs   *pflag.FlagSet
	path string
}

// AddFlags registers the config flags on fs.
func AddFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.path, "config", "", "TOML config file")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("log-format", d.Log.Format, "log format (text, json)")
	fs.String("listen", d.Channel.Listen, "diagnostics channel address, empty to disable")
	fs.String("assets", d.Assets.Dir, "asset directory (default: embedded assets)")
	fs.String("scene", d.Assets.Scene, "scene description path inside the assets")
	fs.Bool("watch", d.Assets.Watch, "reload the scene when its files change")
	fs.Int("fps", d.Render.FPS, "preferred frame rate")
	fs.Int("width", d.Render.Width, "surface width in pixels")
	fs.Int("height", d.Render.Height, "surface height in pixels")
	fs.Int("max-instances", d.Render.MaxInstances, "maximum live renderers, 0 for unlimited")
	fs.Bool("hud", d.Render.HUD, "draw frame statistics over the scene")
	return f
}

// Load reads the config file, if any, and applies every flag that was
// set explicitly.
func (f *Flags) Load() (Config, error) {
	cfg, err := Load(f.path)
	if err != nil {
		return cfg, err
	}

	str := func(name string, dst *string) {
		if f.fs.Changed(name) {
			*dst, _ = f.fs.GetString(name)
		}
	}
	num := func(name string, dst *int) {
		if f.fs.Changed(name) {
			*dst, _ = f.fs.GetInt(name)
		}
	}
	flag := func(name string, dst *bool) {
		if f.fs.Changed(name) {
			*dst, _ = f.fs.GetBool(name)
		}
	}
	str("log-level", &cfg.Log.Level)
	str("log-format", &cfg.Log.Format)
	str("listen", &cfg.Channel.Listen)
	str("assets", &cfg.Assets.Dir)
	str("scene", &cfg.Assets.Scene)
	flag("watch", &cfg.Assets.Watch)
	num("fps", &cfg.Render.FPS)
	num("width", &cfg.Render.Width)
	num("height", &cfg.Render.Height)
	num("max-instances", &cfg.Render.MaxInstances)
	flag("hud", &cfg.Render.HUD)

	return cfg, cfg.Validate()
}
