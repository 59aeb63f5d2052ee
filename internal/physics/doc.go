// Package physics provides the ODE systems the integrators are exercised
// on.
//
// Each model implements the [dynamo.System] interface, defining the
// differential equations governing the system's evolution:
//
//   - [Pendulum]: simple pendulum, the worked example
//   - [Decay]: scalar exponential decay with a closed-form solution
//   - [Oscillator]: harmonic oscillator with a closed-form solution
//
// Models also implement [dynamo.Configurable] for runtime parameter
// adjustment and, where a conserved energy exists, [dynamo.Hamiltonian]:
//
//	sys := physics.NewPendulum()
//	if h, ok := sys.(dynamo.Hamiltonian); ok {
//	    energy := h.Energy(state)
//	}
package physics
