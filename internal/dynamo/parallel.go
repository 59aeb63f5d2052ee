package dynamo

import (
	"context"
	"sync"
)

// RunAll integrates the same system and initial state once per stepper,
// concurrently, one Simulator per goroutine. Results are returned in
// stepper order. The first error wins.
func RunAll(ctx context.Context, sys System, steppers []Stepper, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(steppers))
	errs := make([]error, len(steppers))

	var wg sync.WaitGroup
	for i, stepper := range steppers {
		wg.Add(1)
		go func(idx int, st Stepper) {
			defer wg.Done()
			results[idx], errs[idx] = New(sys, st).Run(ctx, x0, cfg)
		}(i, stepper)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
