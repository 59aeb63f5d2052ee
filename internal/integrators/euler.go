package integrators

import "github.com/san-kum/odelab/internal/dynamo"

// Euler is the explicit first-order method: x' = x + dt*f(x, t).
// Local error O(dt^2), global error O(dt).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	dx := sys.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
