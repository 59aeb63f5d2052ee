package integrators

import "github.com/san-kum/odelab/internal/dynamo"

// Midpoint is the second-order Runge-Kutta method: a half Euler step
// predicts the midpoint value, the midpoint derivative drives the full
// update. Local error O(dt^3), global error O(dt^2).
type Midpoint struct {
	scratch dynamo.State
}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	if len(m.scratch) != n {
		m.scratch = make(dynamo.State, n)
	}

	k1 := sys.Derive(x, t)
	for i := 0; i < n; i++ {
		m.scratch[i] = x[i] + dt*0.5*k1[i]
	}
	k2 := sys.Derive(m.scratch, t+dt*0.5)

	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt*k2[i]
	}
	return result
}
