package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// Decay is scalar exponential decay dy/dt = lambda*y. Its closed-form
// solution makes it the standard target for order-of-accuracy checks.
type Decay struct {
	Lambda float64
}

func NewDecay() *Decay {
	return &Decay{Lambda: -1.0}
}

func (d *Decay) Dim() int {
	return 1
}

func (d *Decay) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{d.Lambda * x[0]}
}

// Exact returns the analytic solution y0*exp(lambda*t).
func (d *Decay) Exact(y0, t float64) float64 {
	return y0 * math.Exp(d.Lambda*t)
}

func (d *Decay) GetParams() map[string]float64 {
	return map[string]float64{"lambda": d.Lambda}
}

func (d *Decay) SetParam(name string, value float64) error {
	if name != "lambda" {
		return fmt.Errorf("unknown param: %s", name)
	}
	d.Lambda = value
	return nil
}
