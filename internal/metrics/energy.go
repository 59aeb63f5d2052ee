package metrics

import (
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// EnergyDrift tracks the maximum relative deviation of a Hamiltonian
// system's energy from its initial value. A fixed-step explicit method
// leaks energy at a rate set by its order, so this is the standard
// qualitative regression guard.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	sys           dynamo.System
}

func NewEnergyDrift(sys dynamo.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	h, ok := e.sys.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Amplitude tracks the largest absolute value of one state component.
type Amplitude struct {
	name      string
	component int
	max       float64
}

func NewAmplitude(component int) *Amplitude {
	return &Amplitude{
		name:      "amplitude",
		component: component,
	}
}

func (a *Amplitude) Name() string { return a.name }

func (a *Amplitude) Observe(x dynamo.State, t float64) {
	if a.component >= len(x) {
		return
	}
	a.max = math.Max(a.max, math.Abs(x[a.component]))
}

func (a *Amplitude) Value() float64 {
	return a.max
}

func (a *Amplitude) Reset() {
	a.max = 0
}
