package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] + other[i]
	}
	return result
}

// AddScaled returns s + factor*other, the only compound operation the
// Runge-Kutta stage updates need.
func (s State) AddScaled(factor float64, other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] + factor*other[i]
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] - other[i]
	}
	return result
}

// System is an ODE right-hand side dX/dt = f(X, t). Derive must be pure:
// no side effects, output dimension equal to Dim().
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Hamiltonian is implemented by systems with a conserved mechanical energy.
type Hamiltonian interface {
	Energy(x State) float64
}

// Stepper advances a state by a single time step. Implementations must not
// mutate x.
type Stepper interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveStepper is implemented by steppers with embedded error
// estimation. StepAdaptive returns the new state and a suggested next dt.
type AdaptiveStepper interface {
	Stepper
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-8,
		Adaptive:      false,
		ValidateState: true,
	}
}

// Result holds the trajectory of one run: Times[i] pairs with States[i],
// Times[0] == 0 and the last entry equals the configured duration.
type Result struct {
	States      []State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Final returns the last recorded state.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Component extracts one state component as a flat series, for plotting.
func (r *Result) Component(i int) []float64 {
	series := make([]float64, len(r.States))
	for j, x := range r.States {
		series[j] = x[i]
	}
	return series
}
