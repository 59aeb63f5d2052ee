package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/dynamo"
)

// exponential decay dy/dt = lambda*y, exact solution y0*exp(lambda*t)
type decayDynamics struct {
	lambda float64
}

func (d *decayDynamics) Dim() int { return 1 }

func (d *decayDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{d.lambda * x[0]}
}

func integrateDecay(stepper dynamo.Stepper, dt float64, steps int) float64 {
	dyn := &decayDynamics{lambda: -1.0}
	x := dynamo.State{1.0}
	for i := 0; i < steps; i++ {
		x = stepper.Step(dyn, x, float64(i)*dt, dt)
	}
	return x[0]
}

// Halving dt over a fixed interval should cut the global error by roughly
// 2^order.
func TestConvergenceOrder(t *testing.T) {
	exact := math.Exp(-1.0)

	cases := []struct {
		name    string
		stepper dynamo.Stepper
		minRatio,
		maxRatio float64
	}{
		{"euler", NewEuler(), 1.6, 2.5},
		{"rk2", NewMidpoint(), 3.2, 5.0},
		{"rk4", NewRK4(), 12.0, 21.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coarse := math.Abs(integrateDecay(tc.stepper, 0.05, 20) - exact)
			fine := math.Abs(integrateDecay(tc.stepper, 0.025, 40) - exact)

			if fine == 0 {
				t.Fatal("fine-step error vanished, cannot measure order")
			}

			ratio := coarse / fine
			if ratio < tc.minRatio || ratio > tc.maxRatio {
				t.Errorf("error ratio %.2f outside [%.1f, %.1f] (coarse=%.3e fine=%.3e)",
					ratio, tc.minRatio, tc.maxRatio, coarse, fine)
			}
		})
	}
}

func TestEulerSingleStep(t *testing.T) {
	dyn := &decayDynamics{lambda: -1.0}
	integ := NewEuler()

	x := integ.Step(dyn, dynamo.State{1.0}, 0, 0.1)

	// x' = x + dt*lambda*x = 1 - 0.1
	if math.Abs(x[0]-0.9) > 1e-12 {
		t.Errorf("expected 0.9, got %.12f", x[0])
	}
}

func TestMidpointSingleStep(t *testing.T) {
	dyn := &decayDynamics{lambda: -1.0}
	integ := NewMidpoint()

	x := integ.Step(dyn, dynamo.State{1.0}, 0, 0.1)

	// k1 = -1, mid = 1 - 0.05 = 0.95, k2 = -0.95, x' = 1 - 0.095
	if math.Abs(x[0]-0.905) > 1e-12 {
		t.Errorf("expected 0.905, got %.12f", x[0])
	}
}

func TestSteppersDoNotMutateInput(t *testing.T) {
	dyn := &decayDynamics{lambda: -1.0}
	steppers := []dynamo.Stepper{NewEuler(), NewMidpoint(), NewRK4(), NewRKF45()}

	for _, s := range steppers {
		x := dynamo.State{1.0}
		s.Step(dyn, x, 0, 0.1)
		if x[0] != 1.0 {
			t.Errorf("%T mutated its input state: %f", s, x[0])
		}
	}
}
