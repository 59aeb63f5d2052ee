// Package dynamo provides the core primitives for fixed-step numerical
// integration of ordinary differential equations (ODEs).
//
// The package defines the fundamental interfaces and types shared by every
// integration method:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Stepper]: numerical integrator interface, one strategy per method
//   - [Simulator]: time-marching driver shared by all steppers
//
// # Example
//
//	sys := physics.NewPendulum()
//	step := integrators.NewRK4()
//	sim := dynamo.New(sys, step)
//	result, _ := sim.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. To integrate the same system
// with several methods at once, give each method its own Simulator; see
// [RunAll].
package dynamo
