package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/integrators"
)

func TestRegistryGetSystem(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"pendulum", "decay", "oscillator"} {
		sys, err := r.GetSystem(name)
		if err != nil {
			t.Errorf("GetSystem(%q): %v", name, err)
		}
		if sys == nil || sys.Dim() < 1 {
			t.Errorf("GetSystem(%q) returned unusable system", name)
		}
	}

	if _, err := r.GetSystem("lorenz"); err == nil {
		t.Error("expected error for unknown system")
	}
}

func TestRegistryDefaultMetrics(t *testing.T) {
	r := NewRegistry()

	pend, _ := r.GetSystem("pendulum")
	if got := len(r.DefaultMetrics(pend)); got != 2 {
		t.Errorf("pendulum: expected amplitude + energy drift, got %d metrics", got)
	}

	dec, _ := r.GetSystem("decay")
	if got := len(r.DefaultMetrics(dec)); got != 1 {
		t.Errorf("decay: expected amplitude only, got %d metrics", got)
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()
	sys, _ := r.GetSystem("decay")

	exp := New(Config{
		System:    "decay",
		Method:    integrators.MethodRK4,
		InitState: []float64{1.0},
		Dt:        0.1,
		Duration:  1.0,
	})
	if err := exp.Setup(sys, r.DefaultMetrics(sys)); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Times) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Times))
	}
	if math.Abs(result.Final()[0]-math.Exp(-1)) > 1e-5 {
		t.Errorf("y(1) = %f, want ~%f", result.Final()[0], math.Exp(-1))
	}
	if _, ok := result.Metrics["amplitude"]; !ok {
		t.Error("amplitude metric missing from result")
	}
}

func TestExperimentSetupRejectsBadDimension(t *testing.T) {
	r := NewRegistry()
	sys, _ := r.GetSystem("pendulum")

	exp := New(Config{
		System:    "pendulum",
		Method:    integrators.MethodEuler,
		InitState: []float64{0.1},
		Dt:        0.1,
		Duration:  1.0,
	})
	if err := exp.Setup(sys, nil); err == nil {
		t.Error("expected dimension error")
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	exp := New(Config{})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error for unsetup experiment")
	}
}
