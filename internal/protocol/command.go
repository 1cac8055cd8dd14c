package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Motor command encoding.
//
// The firmware accepts 5-byte ASCII commands on the TX characteristic:
//
//	[sign][power][letter]
//
// where sign is '+' or '-', power is a zero-padded 3-digit duty value, and
// letter is 'a', 'b' or 'c' selecting the output. Power 0 stops the motor;
// the motors stall below a duty of 55, so a requested velocity v in [1,100]
// maps to 55+v.
const (
	MaxVelocity = 100

	// powerFloor is the minimum duty at which the motors actually turn.
	powerFloor = 55
)

// BatteryRequest is written to TX to request a voltage report, which the
// cube delivers as an ASCII string notification on RX.
var BatteryRequest = []byte("b")

// EncodeMotor encodes a motor command for output index 0-2 ('a'-'c') at the
// given velocity. Velocity must already be validated to lie in
// [-MaxVelocity, MaxVelocity].
func EncodeMotor(output int, velocity int) []byte {
	sign := byte('+')
	if velocity < 0 {
		sign = '-'
		velocity = -velocity
	}
	power := 0
	if velocity > 0 {
		power = powerFloor + velocity
	}
	return []byte(fmt.Sprintf("%c%03d%c", sign, power, 'a'+byte(output)))
}

// EncodeStop encodes the stop command for output index 0-2.
func EncodeStop(output int) []byte {
	return EncodeMotor(output, 0)
}

// ParseVoltage parses the ASCII battery voltage notification, e.g. "3.251".
func ParseVoltage(data []byte) (float64, error) {
	s := strings.TrimSpace(strings.TrimRight(string(data), "\x00"))
	if s == "" {
		return 0, fmt.Errorf("protocol: empty battery response")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("protocol: bad battery response %q: %w", s, err)
	}
	return v, nil
}

// ParseAppearance decodes the big-endian GAP appearance value.
func ParseAppearance(data []byte) uint16 {
	var v uint16
	for _, b := range data {
		v = v<<8 | uint16(b)
	}
	return v
}
