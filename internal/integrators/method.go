package integrators

import (
	"fmt"

	"github.com/san-kum/odelab/internal/dynamo"
)

// Method is the closed set of integration methods. String dispatch is
// confined to ParseMethod at the CLI/config boundary.
type Method int

const (
	MethodEuler Method = iota
	MethodRK2
	MethodRK4
	MethodRKF45
)

func (m Method) String() string {
	switch m {
	case MethodEuler:
		return "euler"
	case MethodRK2:
		return "rk2"
	case MethodRK4:
		return "rk4"
	case MethodRKF45:
		return "rkf45"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Order returns the global order of accuracy.
func (m Method) Order() int {
	switch m {
	case MethodEuler:
		return 1
	case MethodRK2:
		return 2
	case MethodRK4:
		return 4
	case MethodRKF45:
		return 5
	default:
		return 0
	}
}

func ParseMethod(name string) (Method, error) {
	switch name {
	case "euler":
		return MethodEuler, nil
	case "rk2", "midpoint":
		return MethodRK2, nil
	case "rk4":
		return MethodRK4, nil
	case "rkf45":
		return MethodRKF45, nil
	default:
		return 0, fmt.Errorf("integrators: unknown method %q (want euler, rk2, rk4 or rkf45)", name)
	}
}

// NewStepper builds a fresh stepper for the method. Steppers carry scratch
// buffers, so callers must not share one across concurrent runs.
func NewStepper(m Method) dynamo.Stepper {
	switch m {
	case MethodEuler:
		return NewEuler()
	case MethodRK2:
		return NewMidpoint()
	case MethodRKF45:
		return NewRKF45()
	default:
		return NewRK4()
	}
}

// FixedStepMethods lists the fixed-step methods, in order of accuracy.
func FixedStepMethods() []Method {
	return []Method{MethodEuler, MethodRK2, MethodRK4}
}
