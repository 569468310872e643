// Package channel exposes renderer diagnostics and test controls to an
// application shell as a small method-call protocol.
package channel

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/chewxy/math32"
	"github.com/philipparndt/cylinderworks/internal/device"
	"github.com/philipparndt/cylinderworks/internal/logging"
	"github.com/philipparndt/cylinderworks/internal/registry"
)

// Name is the channel name shells address.
const Name = "engine/diagnostics"

// Methods understood by Handler.
const (
	MethodGetSnapshot = "getSnapshot"
	MethodSetTestRPM  = "setTestRpm"
)

// Keys added to every snapshot.
const (
	KeyDeviceManufacturer = "deviceManufacturer"
	KeyDeviceModel        = "deviceModel"
	KeyCPUHardware        = "cpuHardware"
	KeySoCModel           = "socModel"
	KeySoCManufacturer    = "socManufacturer"
)

// CodeBadArgs marks a call whose arguments could not be used.
const CodeBadArgs = "bad_args"

// CodeEncode marks a result that could not be serialized.
const CodeEncode = "encode_failed"

var (
	// ErrNotImplemented is returned by clients for unknown methods.
	ErrNotImplemented = errors.New("channel: method not implemented")
	// ErrClosed is returned once a client connection is gone.
	ErrClosed = errors.New("channel: connection closed")
)

// Call is one method invocation.
type Call struct {
	Method string
	Args   map[string]any
}

// Result is the outcome of a Call: a value, an error or not-implemented.
type Result struct {
	Value          any
	Err            *Error
	NotImplemented bool
}

// Error is a failed call as seen by the shell.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Handler serves calls against the diagnostics and control registries.
type Handler struct {
	diag    *registry.DiagnosticsRegistry
	control *registry.ControlRegistry
	device  device.Info
	log     *slog.Logger
}

// NewHandler returns a Handler. Nil registries select the process-wide
// ones.
func NewHandler(diag *registry.DiagnosticsRegistry, control *registry.ControlRegistry, info device.Info) *Handler {
	if diag == nil {
		diag = registry.Diagnostics
	}
	if control == nil {
		control = registry.Control
	}
	return &Handler{diag: diag, control: control, device: info, log: logging.Logger()}
}

// Handle dispatches c.
func (h *Handler) Handle(c Call) Result {
	switch c.Method {
	case MethodGetSnapshot:
		return Result{Value: h.Snapshot()}
	case MethodSetTestRPM:
		rpm, err := rpmArg(c.Args)
		if err != nil {
			return Result{Err: &Error{Code: CodeBadArgs, Message: err.Error()}}
		}
		if !h.control.Dispatch(rpm) {
			h.log.Debug("test rpm dropped, no renderer registered", "rpm", rpm)
		}
		return Result{}
	}
	return Result{NotImplemented: true}
}

// Snapshot returns the current renderer diagnostics merged with device
// identifiers. Without a renderer only the device keys are present.
// Non-finite numbers are reported as nil so the result always encodes.
func (h *Handler) Snapshot() map[string]any {
	snap, _ := h.diag.Snapshot()
	out := make(map[string]any, len(snap)+5)
	for k, v := range snap {
		out[k] = finiteValue(v)
	}
	out[KeyDeviceManufacturer] = h.device.Manufacturer
	out[KeyDeviceModel] = h.device.Model
	out[KeyCPUHardware] = h.device.Hardware
	if h.device.HasSoCInfo() {
		out[KeySoCModel] = h.device.SoCModel
		out[KeySoCManufacturer] = h.device.SoCManufacturer
	}
	return out
}

func finiteValue(v any) any {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	case float32:
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return nil
		}
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = finiteValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = finiteValue(e)
		}
		return out
	}
	return v
}

func rpmArg(args map[string]any) (float32, error) {
	raw, ok := args["rpm"]
	if !ok {
		return 0, errors.New("missing rpm")
	}
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("rpm: %w", err)
		}
		v = f
	default:
		return 0, fmt.Errorf("rpm must be a number, got %T", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("rpm must be finite, got %v", v)
	}
	return float32(v), nil
}
