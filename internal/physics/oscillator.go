package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// Oscillator is the undamped harmonic oscillator x'' = -omega0^2 * x,
// state (x, v).
type Oscillator struct {
	Omega0 float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{Omega0: 1.0}
}

func (o *Oscillator) Dim() int {
	return 2
}

func (o *Oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -o.Omega0 * o.Omega0 * x[0]}
}

func (o *Oscillator) Energy(x dynamo.State) float64 {
	return 0.5*x[1]*x[1] + 0.5*o.Omega0*o.Omega0*x[0]*x[0]
}

// Exact returns the analytic position for release from x0 at rest.
func (o *Oscillator) Exact(x0, t float64) float64 {
	return x0 * math.Cos(o.Omega0*t)
}

func (o *Oscillator) GetParams() map[string]float64 {
	return map[string]float64{"omega0": o.Omega0}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	if name != "omega0" {
		return fmt.Errorf("unknown param: %s", name)
	}
	o.Omega0 = value
	return nil
}
