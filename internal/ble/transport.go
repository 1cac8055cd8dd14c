// Package ble provides low-level BLE communication with Circuit Cube devices.
package ble

import (
	"context"
	"time"
)

// ScanResult represents a discovered BLE peripheral.
type ScanResult struct {
	Name    string
	Address string // 48-bit MAC, or a 128-bit UUID on macOS
	RSSI    int16
}

// Characteristic represents a GATT characteristic on a connected peripheral.
type Characteristic interface {
	// Write sends data to the characteristic.
	Write(data []byte) error
	// Read reads the characteristic value into buf, returning the length.
	Read(buf []byte) (int, error)
	// Subscribe registers a callback for notifications on this characteristic.
	Subscribe(cb func(data []byte)) error
}

// Connection represents an active GATT link to a peripheral.
type Connection interface {
	// Characteristic discovers a characteristic by UUID within a service.
	Characteristic(serviceUUID, charUUID string) (Characteristic, error)
	// Disconnect terminates the link.
	Disconnect() error
}

// Transport abstracts the BLE radio so the client can be tested without
// hardware.
type Transport interface {
	// Enable powers on the radio. Safe to call more than once.
	Enable() error
	// Scan discovers peripherals until the timeout elapses or ctx is
	// cancelled. When match is non-nil only peripherals whose advertised
	// name satisfies it are reported.
	Scan(ctx context.Context, timeout time.Duration, match func(name string) bool) ([]ScanResult, error)
	// Connect establishes a GATT link to the peripheral with the given
	// address, waiting at most timeout for it to appear.
	Connect(ctx context.Context, address string, timeout time.Duration) (Connection, error)
}
