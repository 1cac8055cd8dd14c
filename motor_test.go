package circuitcube

import (
	"errors"
	"testing"
)

func TestParseMotor(t *testing.T) {
	tests := []struct {
		in   string
		want Motor
	}{
		{"A", MotorA},
		{"a", MotorA},
		{"B", MotorB},
		{"b", MotorB},
		{"C", MotorC},
		{" c ", MotorC},
	}
	for _, tt := range tests {
		got, err := ParseMotor(tt.in)
		if err != nil {
			t.Errorf("ParseMotor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMotor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMotorInvalid(t *testing.T) {
	for _, in := range []string{"", "D", "AB", "1", "motor"} {
		if _, err := ParseMotor(in); !errors.Is(err, ErrInvalidMotor) {
			t.Errorf("ParseMotor(%q) error = %v, want ErrInvalidMotor", in, err)
		}
	}
}

func TestMotorString(t *testing.T) {
	if MotorA.String() != "A" || MotorB.String() != "B" || MotorC.String() != "C" {
		t.Error("Motor.String mismatch")
	}
	if Motor(9).String() != "?" {
		t.Errorf("Motor(9).String() = %q, want ?", Motor(9).String())
	}
}
