package registry

import (
	"sync"

	"github.com/philipparndt/cylinderworks/pkg/engine"
)

// Provider reports diagnostics for the renderer it fronts. Nil means the
// provider has no data. The returned map belongs to the caller.
type Provider interface {
	Diagnostics() engine.Diagnostics
}

// DiagnosticsRegistry exposes the registered Provider's snapshot.
type DiagnosticsRegistry struct {
	slot *slot[Provider]
}

// NewDiagnosticsRegistry creates an empty registry guarded by lock. A nil
// lock gets a fresh mutex.
func NewDiagnosticsRegistry(lock sync.Locker) *DiagnosticsRegistry {
	return &DiagnosticsRegistry{slot: newSlot[Provider](lock)}
}

// Register installs p, replacing any previous provider.
func (r *DiagnosticsRegistry) Register(p Provider) {
	r.slot.set(p)
}

// Unregister removes p if it is the installed provider and reports
// whether it was.
func (r *DiagnosticsRegistry) Unregister(p Provider) bool {
	return r.slot.clear(p)
}

// Current returns the installed provider or nil.
func (r *DiagnosticsRegistry) Current() Provider {
	return r.slot.get()
}

// Snapshot asks the installed provider for its diagnostics. ok is false
// when no provider is installed or it has no data; an empty but present
// snapshot returns ok true. Collection runs outside the registry lock.
func (r *DiagnosticsRegistry) Snapshot() (engine.Diagnostics, bool) {
	p := r.slot.get()
	if p == nil {
		return nil, false
	}
	d := p.Diagnostics()
	if d == nil {
		return nil, false
	}
	return d, true
}
