// Package circuitcube provides a Go library for controlling Tenka Circuit
// Cube battery boxes over Bluetooth Low Energy (BLE).
//
// A Circuit Cube exposes three motor outputs (A, B, C) and a handful of
// read-only device-information characteristics. The library wraps the BLE
// plumbing behind a small synchronous API.
//
// # Quick Start
//
// Connect to the first Circuit Cube in range and run a motor:
//
//	ctx := context.Background()
//	cube, err := circuitcube.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cube.Close()
//
//	// Motor A forward at half speed for two seconds.
//	cube.RunMotor(ctx, circuitcube.MotorA, 50, 2*time.Second, false)
//
// # Connecting to a known device
//
// When the device address is known (a MAC address, or a 128-bit UUID on
// macOS), skip the scan:
//
//	cube, err := circuitcube.ConnectByAddress(ctx, "AA:BB:CC:DD:EE:FF")
//
// # Motor control
//
// Velocities range from -100 (full reverse) to 100 (full forward). A
// duration of zero starts the motor and returns immediately; the motor runs
// until the next command:
//
//	cube.RunMotor(ctx, circuitcube.MotorB, -75, 0, false)
//	// ... later
//	cube.Halt(ctx)
//
// RunMotors drives several outputs with one call:
//
//	cube.RunMotors(ctx,
//	    []circuitcube.Motor{circuitcube.MotorA, circuitcube.MotorB},
//	    []int{100, -100},
//	    3*time.Second, false)
//
// # Device information
//
// Information reads the device-information characteristics and the battery
// voltage; Battery queries the voltage alone:
//
//	info, err := cube.Information(ctx)
//	volts, err := cube.Battery(ctx)
//
// # Concurrency
//
// The device handles a single GATT operation at a time. The library
// serializes all outbound operations internally; methods are safe to call
// from multiple goroutines but will block one another.
package circuitcube
