package view

import (
	"log/slog"

	"github.com/philipparndt/cylinderworks/internal/logging"
	"github.com/philipparndt/cylinderworks/internal/registry"
	"github.com/philipparndt/cylinderworks/pkg/engine"
)

const (
	// DefaultFrameRate is the preferred frame rate requested on attach.
	DefaultFrameRate = 120
	// DefaultScenePath is the logical asset path of the scene description.
	DefaultScenePath = "assets/engine/assembly.json"
)

// Option configures a View.
type Option func(*options)

type options struct {
	bridge      engine.Bridge
	control     *registry.ControlRegistry
	diagnostics *registry.DiagnosticsRegistry
	logger      *slog.Logger
	frameRate   int
	scenePath   string
}

func defaultOptions() options {
	return options{
		control:     registry.Control,
		diagnostics: registry.Diagnostics,
		logger:      logging.Logger(),
		frameRate:   DefaultFrameRate,
		scenePath:   DefaultScenePath,
	}
}

// WithBridge sets the engine the view drives. Without one the view is
// inert.
func WithBridge(b engine.Bridge) Option {
	return func(o *options) {
		o.bridge = b
	}
}

// WithRegistries replaces the process-wide registries. Nil arguments keep
// the defaults.
func WithRegistries(control *registry.ControlRegistry, diagnostics *registry.DiagnosticsRegistry) Option {
	return func(o *options) {
		if control != nil {
			o.control = control
		}
		if diagnostics != nil {
			o.diagnostics = diagnostics
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFrameRate sets the preferred frame rate. Non-positive values are
// ignored.
func WithFrameRate(fps int) Option {
	return func(o *options) {
		if fps > 0 {
			o.frameRate = fps
		}
	}
}

// WithScenePath sets the logical path of the scene description.
func WithScenePath(p string) Option {
	return func(o *options) {
		if p != "" {
			o.scenePath = p
		}
	}
}
