package ble

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/simon-code-git/circuitcube/internal/protocol"
)

// mockChar records writes and lets tests simulate notifications and
// canned read values.
type mockChar struct {
	mu       sync.Mutex
	writes   [][]byte
	value    []byte
	readErr  error
	writeErr error
	callback func([]byte)
}

func (c *mockChar) Write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	c.writes = append(c.writes, cp)
	return nil
}

func (c *mockChar) Read(buf []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return 0, c.readErr
	}
	return copy(buf, c.value), nil
}

func (c *mockChar) Subscribe(cb func([]byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callback = cb
	return nil
}

func (c *mockChar) notify(data []byte) {
	c.mu.Lock()
	cb := c.callback
	c.mu.Unlock()
	if cb != nil {
		cb(data)
	}
}

func (c *mockChar) writtenStrings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.writes))
	for i, w := range c.writes {
		out[i] = string(w)
	}
	return out
}

// mockConn simulates a GATT link with the Circuit Cube characteristic set.
type mockConn struct {
	mu           sync.Mutex
	chars        map[string]*mockChar
	disconnected bool
}

func newMockConn() *mockConn {
	return &mockConn{
		chars: map[string]*mockChar{
			protocol.TxCharUUID: {},
			protocol.RxCharUUID: {},
		},
	}
}

func (c *mockConn) setValue(charUUID string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.chars[charUUID]
	if !ok {
		ch = &mockChar{}
		c.chars[charUUID] = ch
	}
	ch.value = value
}

func (c *mockConn) setReadErr(charUUID string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.chars[charUUID]
	if !ok {
		ch = &mockChar{}
		c.chars[charUUID] = ch
	}
	ch.readErr = err
}

func (c *mockConn) Characteristic(serviceUUID, charUUID string) (Characteristic, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.chars[charUUID]
	if !ok {
		return nil, fmt.Errorf("mock: unknown characteristic %q", charUUID)
	}
	return ch, nil
}

func (c *mockConn) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnected = true
	return nil
}

func (c *mockConn) tx() *mockChar { return c.chars[protocol.TxCharUUID] }
func (c *mockConn) rx() *mockChar { return c.chars[protocol.RxCharUUID] }

// mockTransport simulates the radio.
type mockTransport struct {
	mu         sync.Mutex
	devices    []ScanResult
	conn       *mockConn
	connectErr error
}

func newMockTransport(devices ...ScanResult) *mockTransport {
	return &mockTransport{devices: devices, conn: newMockConn()}
}

func (t *mockTransport) Enable() error { return nil }

func (t *mockTransport) Scan(_ context.Context, _ time.Duration, match func(string) bool) ([]ScanResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []ScanResult
	for _, d := range t.devices {
		if match == nil || match(d.Name) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (t *mockTransport) Connect(_ context.Context, address string, _ time.Duration) (Connection, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.connectErr != nil {
		return nil, t.connectErr
	}
	return t.conn, nil
}
