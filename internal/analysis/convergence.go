// Package analysis measures empirical properties of integration runs,
// chiefly the observed order of accuracy of a method on a system with a
// known solution.
package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/integrators"
)

// ConvergencePoint is the global error measured at one step size.
type ConvergencePoint struct {
	Dt    float64
	Error float64
}

// GlobalError integrates sys from x0 over [0, duration] at a fixed dt and
// returns the norm of the difference between the final state and exact(duration).
func GlobalError(ctx context.Context, sys dynamo.System, method integrators.Method, x0 dynamo.State, dt, duration float64, exact func(t float64) dynamo.State) (float64, error) {
	sim := dynamo.New(sys, integrators.NewStepper(method))
	result, err := sim.Run(ctx, x0, dynamo.Config{Dt: dt, Duration: duration, ValidateState: true})
	if err != nil {
		return 0, err
	}
	return result.Final().Sub(exact(duration)).Norm(), nil
}

// ObservedOrder measures the global error at dt, dt/2, dt/4, ... and fits
// the order of convergence as the mean log2 of successive error ratios.
// halvings must be at least 1.
func ObservedOrder(ctx context.Context, sys dynamo.System, method integrators.Method, x0 dynamo.State, dt, duration float64, exact func(t float64) dynamo.State, halvings int) ([]ConvergencePoint, float64, error) {
	if halvings < 1 {
		return nil, 0, fmt.Errorf("analysis: need at least one halving, got %d", halvings)
	}

	points := make([]ConvergencePoint, 0, halvings+1)
	h := dt
	for i := 0; i <= halvings; i++ {
		errNorm, err := GlobalError(ctx, sys, method, x0, h, duration, exact)
		if err != nil {
			return nil, 0, err
		}
		points = append(points, ConvergencePoint{Dt: h, Error: errNorm})
		h /= 2
	}

	sum := 0.0
	count := 0
	for i := 1; i < len(points); i++ {
		if points[i].Error == 0 || points[i-1].Error == 0 {
			continue
		}
		sum += math.Log2(points[i-1].Error / points[i].Error)
		count++
	}
	if count == 0 {
		return points, 0, fmt.Errorf("analysis: errors vanished, order unmeasurable")
	}

	return points, sum / float64(count), nil
}
