package integrators

import (
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// Fehlberg coefficients (RKF45)
var (
	fa2 = 1.0 / 4.0
	fa3 = 3.0 / 8.0
	fa4 = 12.0 / 13.0
	fa6 = 1.0 / 2.0

	fb21 = 1.0 / 4.0
	fb31 = 3.0 / 32.0
	fb32 = 9.0 / 32.0
	fb41 = 1932.0 / 2197.0
	fb42 = -7200.0 / 2197.0
	fb43 = 7296.0 / 2197.0
	fb51 = 439.0 / 216.0
	fb52 = -8.0
	fb53 = 3680.0 / 513.0
	fb54 = -845.0 / 4104.0
	fb61 = -8.0 / 27.0
	fb62 = 2.0
	fb63 = -3544.0 / 2565.0
	fb64 = 1859.0 / 4104.0
	fb65 = -11.0 / 40.0

	// 5th-order weights
	fc1 = 16.0 / 135.0
	fc3 = 6656.0 / 12825.0
	fc4 = 28561.0 / 56430.0
	fc5 = -9.0 / 50.0
	fc6 = 2.0 / 55.0

	// difference against the embedded 4th-order solution
	fd1 = fc1 - 25.0/216.0
	fd3 = fc3 - 1408.0/2565.0
	fd4 = fc4 - 2197.0/4104.0
	fd5 = fc5 - -1.0/5.0
	fd6 = fc6
)

// RKF45 is the Runge-Kutta-Fehlberg 4(5) pair. Six derivative evaluations
// yield a 5th-order solution plus an embedded 4th-order one; their
// difference drives step-size control. Serves as the adaptive reference
// the fixed-step methods are compared against.
type RKF45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRKF45() *RKF45 {
	return &RKF45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RKF45) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	newX, _, _ := r.StepAdaptive(sys, x, t, dt, 1e-6)
	return newX
}

func (r *RKF45) StepAdaptive(sys dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, error) {
	n := len(x)

	k1 := sys.Derive(x, t)

	x2 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x2[i] = x[i] + dt*fb21*k1[i]
	}
	k2 := sys.Derive(x2, t+fa2*dt)

	x3 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x3[i] = x[i] + dt*(fb31*k1[i]+fb32*k2[i])
	}
	k3 := sys.Derive(x3, t+fa3*dt)

	x4 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x4[i] = x[i] + dt*(fb41*k1[i]+fb42*k2[i]+fb43*k3[i])
	}
	k4 := sys.Derive(x4, t+fa4*dt)

	x5 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x5[i] = x[i] + dt*(fb51*k1[i]+fb52*k2[i]+fb53*k3[i]+fb54*k4[i])
	}
	k5 := sys.Derive(x5, t+dt)

	x6 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x6[i] = x[i] + dt*(fb61*k1[i]+fb62*k2[i]+fb63*k3[i]+fb64*k4[i]+fb65*k5[i])
	}
	k6 := sys.Derive(x6, t+fa6*dt)

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(fc1*k1[i]+fc3*k3[i]+fc4*k4[i]+fc5*k5[i]+fc6*k6[i])
	}

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (fd1*k1[i] + fd3*k3[i] + fd4*k4[i] + fd5*k5[i] + fd6*k6[i])
		scale := math.Abs(x[i]) + math.Abs(dt*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	errRatio := errMax / tol

	var dtNew float64
	if errRatio > 1 {
		scale := math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
		dtNew = dt * scale
	} else {
		if errRatio > 0 {
			scale := math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
			dtNew = dt * scale
		} else {
			dtNew = dt * r.maxScale
		}
	}

	return xNew, dtNew, nil
}
