package registry

import "sync"

// Controller accepts test control values for the renderer it fronts.
type Controller interface {
	SetTestRPM(rpm float32)
}

// ControlRegistry routes control values to the registered Controller.
type ControlRegistry struct {
	slot *slot[Controller]
}

// NewControlRegistry creates an empty registry guarded by lock. A nil
// lock gets a fresh mutex.
func NewControlRegistry(lock sync.Locker) *ControlRegistry {
	return &ControlRegistry{slot: newSlot[Controller](lock)}
}

// Register installs c, replacing any previous controller.
func (r *ControlRegistry) Register(c Controller) {
	r.slot.set(c)
}

// Unregister removes c if it is the installed controller and reports
// whether it was.
func (r *ControlRegistry) Unregister(c Controller) bool {
	return r.slot.clear(c)
}

// Current returns the installed controller or nil.
func (r *ControlRegistry) Current() Controller {
	return r.slot.get()
}

// Dispatch sends rpm to the installed controller. Without one the value
// is dropped. It reports whether a controller received the value.
func (r *ControlRegistry) Dispatch(rpm float32) bool {
	target := r.slot.get()
	if target == nil {
		return false
	}
	target.SetTestRPM(rpm)
	return true
}
