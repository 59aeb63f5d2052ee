package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/integrators"
)

type Config struct {
	System    string
	Method    integrators.Method
	InitState []float64
	Dt        float64
	Duration  float64
	Tolerance float64
	Adaptive  bool
}

// Experiment binds a system, a method and a configuration into one
// runnable unit.
type Experiment struct {
	cfg       Config
	simulator *dynamo.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(sys dynamo.System, ms []dynamo.Metric) error {
	if len(e.cfg.InitState) != sys.Dim() {
		return fmt.Errorf("experiment: init state has %d components, system %q wants %d",
			len(e.cfg.InitState), e.cfg.System, sys.Dim())
	}

	e.simulator = dynamo.New(sys, integrators.NewStepper(e.cfg.Method))
	for _, m := range ms {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0 := make(dynamo.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	simCfg := dynamo.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		Tolerance:     e.cfg.Tolerance,
		Adaptive:      e.cfg.Adaptive,
		ValidateState: true,
	}
	if simCfg.Adaptive {
		def := dynamo.DefaultConfig()
		simCfg.MaxDt = def.MaxDt
		simCfg.MinDt = def.MinDt
		if simCfg.Tolerance <= 0 {
			simCfg.Tolerance = def.Tolerance
		}
	}

	return e.simulator.Run(ctx, x0, simCfg)
}

// GetSimulator returns the underlying simulator for adding observers.
func (e *Experiment) GetSimulator() *dynamo.Simulator {
	return e.simulator
}
