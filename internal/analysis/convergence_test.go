package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/integrators"
	"github.com/san-kum/odelab/internal/physics"
)

func decayExact(t float64) dynamo.State {
	return dynamo.State{math.Exp(-t)}
}

func TestObservedOrder(t *testing.T) {
	sys := physics.NewDecay()
	x0 := dynamo.State{1.0}

	cases := []struct {
		method integrators.Method
		want   float64
		tol    float64
	}{
		{integrators.MethodEuler, 1.0, 0.2},
		{integrators.MethodRK2, 2.0, 0.2},
		{integrators.MethodRK4, 4.0, 0.3},
	}

	for _, tc := range cases {
		t.Run(tc.method.String(), func(t *testing.T) {
			points, order, err := ObservedOrder(context.Background(), sys, tc.method, x0, 0.05, 1.0, decayExact, 3)
			if err != nil {
				t.Fatalf("ObservedOrder: %v", err)
			}
			if len(points) != 4 {
				t.Fatalf("expected 4 points, got %d", len(points))
			}
			if math.Abs(order-tc.want) > tc.tol {
				t.Errorf("observed order %.3f, want %.1f +/- %.1f (points: %v)", order, tc.want, tc.tol, points)
			}
		})
	}
}

func TestObservedOrderRejectsZeroHalvings(t *testing.T) {
	sys := physics.NewDecay()
	_, _, err := ObservedOrder(context.Background(), sys, integrators.MethodEuler, dynamo.State{1}, 0.1, 1.0, decayExact, 0)
	if err == nil {
		t.Error("expected error for zero halvings")
	}
}

func TestGlobalErrorShrinksWithOrder(t *testing.T) {
	sys := physics.NewDecay()
	x0 := dynamo.State{1.0}

	coarse, err := GlobalError(context.Background(), sys, integrators.MethodRK4, x0, 0.1, 1.0, decayExact)
	if err != nil {
		t.Fatalf("GlobalError: %v", err)
	}
	fine, err := GlobalError(context.Background(), sys, integrators.MethodRK4, x0, 0.05, 1.0, decayExact)
	if err != nil {
		t.Fatalf("GlobalError: %v", err)
	}

	ratio := coarse / fine
	if ratio < 12 || ratio > 21 {
		t.Errorf("RK4 halving ratio %.2f outside [12, 21]", ratio)
	}
}
