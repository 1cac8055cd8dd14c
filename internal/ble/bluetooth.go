package ble

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

// bluetoothTransport is the production Transport backed by the system radio.
// The radio is a process-wide resource; NewTransport hands out wrappers over
// the single default adapter.
type bluetoothTransport struct {
	adapter *bluetooth.Adapter
}

// NewTransport returns a Transport backed by the default Bluetooth adapter.
func NewTransport() Transport {
	return &bluetoothTransport{adapter: bluetooth.DefaultAdapter}
}

func (t *bluetoothTransport) Enable() error {
	if err := t.adapter.Enable(); err != nil {
		return fmt.Errorf("ble: enable adapter: %w", err)
	}
	return nil
}

func (t *bluetoothTransport) Scan(ctx context.Context, timeout time.Duration, match func(string) bool) ([]ScanResult, error) {
	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
	)

	done := make(chan struct{})

	go func() {
		t.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] {
				return
			}
			seen[addr] = true

			if match == nil || match(name) {
				results = append(results, ScanResult{
					Name:    name,
					Address: addr,
					RSSI:    result.RSSI,
				})
			}
		})
		close(done)
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	t.adapter.StopScan()
	<-done

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

func (t *bluetoothTransport) Connect(ctx context.Context, address string, timeout time.Duration) (Connection, error) {
	var targetAddr bluetooth.Address
	found := make(chan struct{})
	var foundOnce sync.Once

	go func() {
		t.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if strings.EqualFold(result.Address.String(), address) {
				foundOnce.Do(func() {
					targetAddr = result.Address
					close(found)
				})
			}
		})
	}()

	select {
	case <-found:
		t.adapter.StopScan()
	case <-time.After(timeout):
		t.adapter.StopScan()
		return nil, ErrDeviceNotFound
	case <-ctx.Done():
		t.adapter.StopScan()
		return nil, ctx.Err()
	}

	device, err := t.adapter.Connect(targetAddr, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("ble: connect to %s: %w", address, err)
	}

	return &bluetoothConn{device: device}, nil
}

// bluetoothConn wraps a connected tinygo bluetooth device.
type bluetoothConn struct {
	device bluetooth.Device
}

func (c *bluetoothConn) Characteristic(serviceUUID, charUUID string) (Characteristic, error) {
	svcUUID := bluetooth.NewUUID(mustParseUUID(serviceUUID))
	chUUID := bluetooth.NewUUID(mustParseUUID(charUUID))

	services, err := c.device.DiscoverServices([]bluetooth.UUID{svcUUID})
	if err != nil {
		return nil, fmt.Errorf("ble: discover service %s: %w", serviceUUID, err)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("ble: service %s not found", serviceUUID)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{chUUID})
	if err != nil {
		return nil, fmt.Errorf("ble: discover characteristic %s: %w", charUUID, err)
	}
	if len(chars) == 0 {
		return nil, fmt.Errorf("ble: characteristic %s not found", charUUID)
	}

	return &bluetoothChar{char: chars[0]}, nil
}

func (c *bluetoothConn) Disconnect() error {
	return c.device.Disconnect()
}

// bluetoothChar wraps a discovered device characteristic.
type bluetoothChar struct {
	char bluetooth.DeviceCharacteristic
}

func (c *bluetoothChar) Write(data []byte) error {
	_, err := c.char.WriteWithoutResponse(data)
	if err != nil {
		_, err = c.char.Write(data)
	}
	return err
}

func (c *bluetoothChar) Read(buf []byte) (int, error) {
	return c.char.Read(buf)
}

func (c *bluetoothChar) Subscribe(cb func(data []byte)) error {
	return c.char.EnableNotifications(cb)
}

func mustParseUUID(s string) [16]byte {
	var uuid [16]byte
	clean := ""
	for _, c := range s {
		if c != '-' {
			clean += string(c)
		}
	}
	for i := 0; i < 16; i++ {
		var b byte
		fmt.Sscanf(clean[i*2:i*2+2], "%02x", &b)
		uuid[i] = b
	}
	return uuid
}
