package experiment

import (
	"fmt"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/metrics"
	"github.com/san-kum/odelab/internal/physics"
)

type Registry struct {
	systems map[string]func() dynamo.System
}

func NewRegistry() *Registry {
	r := &Registry{
		systems: make(map[string]func() dynamo.System),
	}

	r.systems["pendulum"] = func() dynamo.System { return physics.NewPendulum() }
	r.systems["decay"] = func() dynamo.System { return physics.NewDecay() }
	r.systems["oscillator"] = func() dynamo.System { return physics.NewOscillator() }

	return r
}

func (r *Registry) GetSystem(name string) (dynamo.System, error) {
	fn, ok := r.systems[name]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListSystems() []string {
	names := make([]string, 0, len(r.systems))
	for name := range r.systems {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics returns the observers attached to every run of the named
// system. Energy drift only makes sense for Hamiltonian systems.
func (r *Registry) DefaultMetrics(sys dynamo.System) []dynamo.Metric {
	ms := []dynamo.Metric{metrics.NewAmplitude(0)}
	if _, ok := sys.(dynamo.Hamiltonian); ok {
		ms = append(ms, metrics.NewEnergyDrift(sys))
	}
	return ms
}
