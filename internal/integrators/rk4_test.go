package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) Dim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK4Accuracy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

// dy/dt = -y, y0 = 1, dt = 0.1 over [0, 1]: RK4 must land within 1e-5 of
// exp(-1).
func TestRK4ExponentialDecay(t *testing.T) {
	y := integrateDecay(NewRK4(), 0.1, 10)

	exact := math.Exp(-1.0)
	if math.Abs(y-exact) > 1e-5 {
		t.Errorf("y(1) = %.8f, expected %.8f within 1e-5", y, exact)
	}
}

func TestRK4FreshStateEachStep(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewRK4()

	x0 := dynamo.State{1.0, 0.0}
	x1 := integ.Step(dyn, x0, 0, 0.01)
	x2 := integ.Step(dyn, x0, 0, 0.01)

	// repeated calls with identical input must agree and not alias
	if &x1[0] == &x2[0] {
		t.Error("stepper returned aliased state slices")
	}
	if x1[0] != x2[0] || x1[1] != x2[1] {
		t.Errorf("stepper not deterministic: %v vs %v", x1, x2)
	}
}
