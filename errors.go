package circuitcube

import "errors"

// Sentinel errors for the circuitcube package.
var (
	// Connection errors
	ErrNotConnected     = errors.New("circuitcube: not connected to device")
	ErrAlreadyConnected = errors.New("circuitcube: already connected")
	ErrDeviceNotFound   = errors.New("circuitcube: device not found")
	ErrConnectionFailed = errors.New("circuitcube: connection failed")
	ErrTimeout          = errors.New("circuitcube: operation timed out")

	// Validation errors, surfaced before any BLE traffic
	ErrInvalidMotor     = errors.New("circuitcube: motor must be A, B, or C")
	ErrVelocityRange    = errors.New("circuitcube: velocity must be between -100 and 100")
	ErrNegativeDuration = errors.New("circuitcube: duration must not be negative")
	ErrLengthMismatch   = errors.New("circuitcube: motors and velocities must have equal length")
	ErrConstantRange    = errors.New("circuitcube: constant index out of range")
)
