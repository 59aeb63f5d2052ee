package dynamo

import (
	"context"
	"fmt"
	"math"
)

// timeEps absorbs floating-point accumulation when deciding whether the
// remaining interval fits in one more nominal step.
const timeEps = 1e-9

// Simulator marches a System from t=0 to t=cfg.Duration with a fixed step,
// clamping the final step so the last sample lands exactly on Duration.
// The stepper is the single point of extension: Euler, RK2 and RK4 all run
// through the same loop.
type Simulator struct {
	sys       System
	stepper   Stepper
	metrics   []Metric
	observers []Observer
}

func New(sys System, stepper Stepper) *Simulator {
	return &Simulator{
		sys:       sys,
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	capHint := int(math.Ceil(cfg.Duration/cfg.Dt)) + 1
	result := &Result{
		States:  make([]State, 0, capHint),
		Times:   make([]float64, 0, capHint),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	s.record(result, x, t)
	initialEnergy := s.energy(x)

	for step := 0; t < cfg.Duration; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		remaining := cfg.Duration - t
		last := remaining <= dt*(1+timeEps)
		dtStep := dt
		if last {
			dtStep = remaining
		}

		var newX State
		if cfg.Adaptive {
			var err error
			newX, dt, err = s.adaptiveStep(x, t, dtStep, cfg)
			if err != nil {
				return result, &StepError{Step: step, Time: t, Wrapped: err}
			}
		} else {
			newX = s.stepper.Step(s.sys, x, t, dtStep)
		}

		if len(newX) != len(x) {
			return result, &StepError{Step: step, Time: t, Wrapped: ErrDimensionMismatch}
		}
		if cfg.ValidateState && !newX.IsValid() {
			return result, &StepError{Step: step, Time: t, Wrapped: ErrInvalidState}
		}

		x = newX
		if last {
			t = cfg.Duration
		} else {
			t += dtStep
		}
		result.StepsTaken++

		s.record(result, x, t)
	}

	finalEnergy := s.energy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) record(result *Result, x State, t float64) {
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: got %f", ErrInvalidStep, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: got %f", ErrInvalidDuration, cfg.Duration)
	}
	if len(x0) != s.sys.Dim() {
		return fmt.Errorf("%w: state has %d components, system wants %d",
			ErrDimensionMismatch, len(x0), s.sys.Dim())
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("dynamo: tolerance must be positive for adaptive stepping, got %f", cfg.Tolerance)
	}
	if !x0.IsValid() {
		return ErrInvalidState
	}
	return nil
}

func (s *Simulator) energy(x State) float64 {
	if h, ok := s.sys.(Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}

// adaptiveStep takes one step with an embedded-error stepper and returns
// the new state plus the suggested next dt, bounded by cfg.MinDt/MaxDt.
func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, error) {
	adaptive, ok := s.stepper.(AdaptiveStepper)
	if !ok {
		return nil, 0, fmt.Errorf("dynamo: stepper %T has no embedded error estimate", s.stepper)
	}

	newX, dtNext, err := adaptive.StepAdaptive(s.sys, x, t, dt, cfg.Tolerance)
	if err != nil {
		return nil, 0, err
	}

	if cfg.MaxDt > 0 && dtNext > cfg.MaxDt {
		dtNext = cfg.MaxDt
	}
	if cfg.MinDt > 0 && dtNext < cfg.MinDt {
		return nil, 0, ErrStepTooSmall
	}

	return newX, dtNext, nil
}

// RunWithCallback integrates without retaining a trajectory, invoking
// callback after every step. Returning false from the callback stops the
// run early without error. Used by the live view.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(x State, t float64) bool) error {
	if err := s.validate(x0, cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0

	for step := 0; t < cfg.Duration; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		remaining := cfg.Duration - t
		last := remaining <= cfg.Dt*(1+timeEps)
		dtStep := cfg.Dt
		if last {
			dtStep = remaining
		}

		x = s.stepper.Step(s.sys, x, t, dtStep)
		if cfg.ValidateState && !x.IsValid() {
			return &StepError{Step: step, Time: t, Wrapped: ErrInvalidState}
		}

		if last {
			t = cfg.Duration
		} else {
			t += dtStep
		}

		if !callback(x, t) {
			return nil
		}
	}

	return nil
}
