package circuitcube

import (
	"fmt"
	"strings"
)

// Motor identifies one of the cube's three motor outputs.
type Motor int

const (
	MotorA Motor = 0
	MotorB Motor = 1
	MotorC Motor = 2
)

func (m Motor) String() string {
	switch m {
	case MotorA:
		return "A"
	case MotorB:
		return "B"
	case MotorC:
		return "C"
	default:
		return "?"
	}
}

func (m Motor) valid() bool {
	return m >= MotorA && m <= MotorC
}

// allMotors lists the outputs in order, for Halt and batch stops.
var allMotors = [...]Motor{MotorA, MotorB, MotorC}

// ParseMotor parses a motor letter ("A", "b", " c ") into a Motor.
func ParseMotor(s string) (Motor, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return MotorA, nil
	case "B":
		return MotorB, nil
	case "C":
		return MotorC, nil
	default:
		return 0, fmt.Errorf("%w: got %q", ErrInvalidMotor, s)
	}
}
