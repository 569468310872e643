// Package app wires a soft engine, one renderer view and the host side
// services around it: the diagnostics channel and scene hot reload.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/philipparndt/cylinderworks/assets"
	"github.com/philipparndt/cylinderworks/internal/channel"
	"github.com/philipparndt/cylinderworks/internal/config"
	"github.com/philipparndt/cylinderworks/internal/device"
	"github.com/philipparndt/cylinderworks/internal/logging"
	"github.com/philipparndt/cylinderworks/internal/view"
	"github.com/philipparndt/cylinderworks/pkg/engine"
	"github.com/philipparndt/cylinderworks/pkg/engine/soft"
	"golang.org/x/sync/errgroup"
)

// ErrSceneFailed is returned by WaitForScene when the engine reports a
// load error.
var ErrSceneFailed = errors.New("scene failed to load")

// App is one running host.
type App struct {
	Config  config.Config
	Log     *slog.Logger
	Engine  *soft.Engine
	Hub     *view.SurfaceHub
	Assets  view.AssetContext
	View    *view.View
	Device  device.Info
	Channel *channel.Handler

	// assetsDir is empty when serving the embedded assets.
	assetsDir string
}

// New builds the host from cfg. The view exists but has no surface until
// the caller publishes one on Hub.
func New(cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = logging.Logger()
	}
	a := &App{
		Config: cfg,
		Log:    log,
		Hub:    &view.SurfaceHub{},
		Assets: view.AssetContext{FS: assets.FS, Prefix: cfg.Assets.Prefix},
		Device: device.Detect().Merge(cfg.Device),
	}
	if cfg.Assets.Dir != "" {
		dir, err := filepath.Abs(cfg.Assets.Dir)
		if err != nil {
			return nil, fmt.Errorf("resolve assets dir: %w", err)
		}
		if st, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("assets dir: %w", err)
		} else if !st.IsDir() {
			return nil, fmt.Errorf("assets dir %s is not a directory", dir)
		}
		a.Assets.FS = os.DirFS(dir)
		a.assetsDir = dir
	}
	a.Engine = soft.New(soft.Options{
		MaxInstances: cfg.Render.MaxInstances,
		HUD:          cfg.Render.HUD,
		Logger:       log,
	})

	factory := view.NewFactory(
		view.WithBridge(a.Engine),
		view.WithLogger(log),
		view.WithFrameRate(cfg.Render.FPS),
		view.WithScenePath(cfg.Assets.Scene),
	)
	var err error
	a.View, err = factory.Create(a.Assets, a.Hub)
	if err != nil {
		return nil, err
	}
	a.Channel = channel.NewHandler(nil, nil, a.Device)
	return a, nil
}

// SceneKey is the lookup key of the configured scene.
func (a *App) SceneKey() string {
	return a.Assets.LookupKeyForAsset(a.Config.Assets.Scene)
}

// Run serves the diagnostics channel and, when enabled, watches the
// scene for changes until ctx is done.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if a.Config.Channel.Listen != "" {
		g.Go(func() error { return a.Serve(ctx) })
	}
	if a.Config.Assets.Watch {
		g.Go(func() error {
			err := a.Watch(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})
	return g.Wait()
}

// Serve exposes the diagnostics channel on the configured address.
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Config.Channel.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.Config.Channel.Listen, err)
	}
	return channel.NewServer(a.Channel).Serve(ctx, ln)
}

// WaitForScene polls diagnostics until the scene is loaded or has failed.
func (a *App) WaitForScene(ctx context.Context) (engine.Diagnostics, error) {
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		d := a.View.Diagnostics()
		if d == nil {
			return nil, errors.New("renderer unavailable")
		}
		if msg, ok := d["sceneError"].(string); ok {
			return d, fmt.Errorf("%w: %s", ErrSceneFailed, msg)
		}
		if loaded, _ := d["sceneLoaded"].(bool); loaded {
			return d, nil
		}
		select {
		case <-ctx.Done():
			return d, ctx.Err()
		case <-tick.C:
		}
	}
}

// Close withdraws the surface and disposes the view.
func (a *App) Close() {
	a.Hub.Destroy()
	a.View.Dispose()
}
