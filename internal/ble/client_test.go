package ble

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/simon-code-git/circuitcube/internal/protocol"
)

func newTestClient(t *testing.T, transport Transport) *Client {
	t.Helper()
	c, err := NewClient(transport, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestScanFiltersByName(t *testing.T) {
	transport := newMockTransport(
		ScanResult{Name: "Tenka", Address: "AA:BB:CC:DD:EE:01", RSSI: -40},
		ScanResult{Name: "SomeHeadphones", Address: "AA:BB:CC:DD:EE:02", RSSI: -60},
		ScanResult{Name: "Tenka Cube", Address: "AA:BB:CC:DD:EE:03", RSSI: -70},
	)
	c := newTestClient(t, transport)

	results, err := c.Scan(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Scan returned %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Name == "SomeHeadphones" {
			t.Error("Scan should filter out non-Tenka devices")
		}
	}
}

func TestConnectAndWrite(t *testing.T) {
	transport := newMockTransport()
	c := newTestClient(t, transport)

	if err := c.Connect(context.Background(), "AA:BB:CC:DD:EE:01", "Tenka", time.Second); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !c.IsConnected() {
		t.Fatal("IsConnected = false after Connect")
	}
	if c.Address() != "AA:BB:CC:DD:EE:01" {
		t.Errorf("Address = %q", c.Address())
	}

	if err := c.Write([]byte("+105a")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	writes := transport.conn.tx().writtenStrings()
	if len(writes) != 1 || writes[0] != "+105a" {
		t.Errorf("TX writes = %v, want [+105a]", writes)
	}
}

func TestConnectTwiceFails(t *testing.T) {
	c := newTestClient(t, newMockTransport())

	if err := c.Connect(context.Background(), "addr", "Tenka", time.Second); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	err := c.Connect(context.Background(), "addr", "Tenka", time.Second)
	if !errors.Is(err, ErrAlreadyConnected) {
		t.Errorf("second Connect error = %v, want ErrAlreadyConnected", err)
	}
}

func TestWriteWhenNotConnected(t *testing.T) {
	c := newTestClient(t, newMockTransport())
	if err := c.Write([]byte("+105a")); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Write error = %v, want ErrNotConnected", err)
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	transport := newMockTransport()
	c := newTestClient(t, transport)

	if err := c.Connect(context.Background(), "addr", "Tenka", time.Second); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if err := c.Disconnect(); err != nil {
		t.Fatalf("first Disconnect: %v", err)
	}
	if c.IsConnected() {
		t.Error("IsConnected = true after Disconnect")
	}
	if err := c.Disconnect(); err != nil {
		t.Errorf("second Disconnect: %v, want nil", err)
	}

	if err := c.Write([]byte("+105a")); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Write after Disconnect error = %v, want ErrNotConnected", err)
	}
}

func TestWriteFailureMarksDisconnected(t *testing.T) {
	transport := newMockTransport()
	c := newTestClient(t, transport)

	if err := c.Connect(context.Background(), "addr", "Tenka", time.Second); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	transport.conn.tx().writeErr = errors.New("link dropped")
	if err := c.Write([]byte("+105a")); err == nil {
		t.Fatal("Write should fail when the link drops")
	}
	if c.IsConnected() {
		t.Error("client should not stay connected after a failed write")
	}
}

func TestRequestResponse(t *testing.T) {
	transport := newMockTransport()
	c := newTestClient(t, transport)

	if err := c.Connect(context.Background(), "addr", "Tenka", time.Second); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	go func() {
		// Respond once the battery request lands on TX.
		for i := 0; i < 100; i++ {
			if len(transport.conn.tx().writtenStrings()) > 0 {
				transport.conn.rx().notify([]byte("3.251"))
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	resp, err := c.Request(context.Background(), protocol.BatteryRequest, time.Second)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if string(resp) != "3.251" {
		t.Errorf("Request response = %q, want 3.251", resp)
	}
}

func TestRequestTimesOut(t *testing.T) {
	transport := newMockTransport()
	c := newTestClient(t, transport)

	if err := c.Connect(context.Background(), "addr", "Tenka", time.Second); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	_, err := c.Request(context.Background(), protocol.BatteryRequest, 20*time.Millisecond)
	if !errors.Is(err, ErrResponseTimeout) {
		t.Errorf("Request error = %v, want ErrResponseTimeout", err)
	}
}

func TestReadCharacteristic(t *testing.T) {
	transport := newMockTransport()
	transport.conn.setValue(protocol.DeviceNameUUID, []byte("Tenka"))
	c := newTestClient(t, transport)

	if err := c.Connect(context.Background(), "addr", "Tenka", time.Second); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	data, err := c.ReadCharacteristic(protocol.GAPServiceUUID, protocol.DeviceNameUUID)
	if err != nil {
		t.Fatalf("ReadCharacteristic: %v", err)
	}
	if string(data) != "Tenka" {
		t.Errorf("ReadCharacteristic = %q, want Tenka", data)
	}
}

func TestReadCharacteristicNotConnected(t *testing.T) {
	c := newTestClient(t, newMockTransport())
	if _, err := c.ReadCharacteristic(protocol.GAPServiceUUID, protocol.DeviceNameUUID); !errors.Is(err, ErrNotConnected) {
		t.Errorf("error = %v, want ErrNotConnected", err)
	}
}

func TestInterfacesAreSatisfied(t *testing.T) {
	var _ Transport = (*mockTransport)(nil)
	var _ Connection = (*mockConn)(nil)
	var _ Characteristic = (*mockChar)(nil)
	var _ Transport = (*bluetoothTransport)(nil)
}
