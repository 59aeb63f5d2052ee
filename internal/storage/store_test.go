package storage

import (
	"testing"

	"github.com/san-kum/odelab/internal/dynamo"
)

func testResult() *dynamo.Result {
	return &dynamo.Result{
		States:     []dynamo.State{{0.17, 0}, {0.16, -0.1}, {0.14, -0.2}},
		Times:      []float64{0, 0.1, 0.2},
		Metrics:    map[string]float64{"amplitude": 0.17},
		StepsTaken: 2,
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runID, err := st.Save("pendulum", "rk4", 0.1, 0.2, testResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if meta.System != "pendulum" {
		t.Errorf("expected system pendulum, got %s", meta.System)
	}
	if meta.Method != "rk4" {
		t.Errorf("expected method rk4, got %s", meta.Method)
	}
	if meta.Steps != 2 {
		t.Errorf("expected 2 steps, got %d", meta.Steps)
	}
	if meta.Metrics["amplitude"] != 0.17 {
		t.Errorf("metrics not round-tripped: %v", meta.Metrics)
	}
}

func TestLoadTrajectory(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runID, err := st.Save("pendulum", "euler", 0.1, 0.2, testResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	times, states, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("LoadTrajectory: %v", err)
	}

	if len(times) != 3 || len(states) != 3 {
		t.Fatalf("expected 3 samples, got %d times / %d states", len(times), len(states))
	}
	if times[1] != 0.1 {
		t.Errorf("times[1] = %f, want 0.1", times[1])
	}
	if len(states[0]) != 2 {
		t.Errorf("expected 2 state components, got %d", len(states[0]))
	}
	if states[0][0] != 0.17 {
		t.Errorf("states[0][0] = %f, want 0.17", states[0][0])
	}
}

func TestListEmpty(t *testing.T) {
	st := New(t.TempDir() + "/missing")

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if _, err := st.Save("pendulum", "rk4", 0.1, 0.2, testResult()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := st.Save("decay", "euler", 0.1, 0.2, testResult()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}
