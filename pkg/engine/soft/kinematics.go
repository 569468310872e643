package soft

import (
	"math"

	"github.com/philipparndt/cylinderworks/pkg/engine"
)

const (
	crankingRPM = 250.0
	// response is the first-order rate (1/s) at which rpm follows its target.
	response = 3.0
)

// kinematics advances crank speed and angle from the control inputs.
type kinematics struct {
	inputs engine.ControlInputs
	rpm    float64
	crank  float64 // radians, wrapped to [0, 2π)
}

func (k *kinematics) target() float64 {
	switch {
	case k.inputs.Ignition:
		throttle := math.Max(0, math.Min(1, float64(k.inputs.Throttle)))
		return engine.IdleRPM + throttle*(engine.MaxRPM-engine.IdleRPM)
	case k.inputs.Starter:
		return crankingRPM
	default:
		return 0
	}
}

func (k *kinematics) step(dt float64) {
	if dt <= 0 {
		return
	}
	k.rpm += (k.target() - k.rpm) * math.Min(1, dt*response)
	k.crank = math.Mod(k.crank+k.rpm/60*2*math.Pi*dt, 2*math.Pi)
}
