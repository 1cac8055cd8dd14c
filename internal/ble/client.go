package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/simon-code-git/circuitcube/internal/protocol"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrResponseTimeout  = errors.New("ble: timed out waiting for device response")
)

// DeviceNamePrefix is the advertised name prefix of Circuit Cube devices.
const DeviceNamePrefix = "Tenka"

// readBufSize bounds a single characteristic read. Device-information
// strings are short; the largest observed value is well under this.
const readBufSize = 64

// Client manages the BLE link to a single Circuit Cube.
//
// All operations that touch the radio (connect, write, read, request) are
// serialized through an operation mutex: the device does not tolerate
// concurrent GATT traffic, so at most one operation is in flight at a time.
type Client struct {
	transport Transport
	logger    *slog.Logger

	opMu sync.Mutex // serializes radio operations

	mu         sync.RWMutex // guards connection state
	conn       Connection
	tx         Characteristic
	chars      map[string]Characteristic
	connected  bool
	address    string
	deviceName string

	notifyCh chan []byte
}

// NewClient creates a client over the given transport and enables the radio.
func NewClient(transport Transport, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := transport.Enable(); err != nil {
		return nil, err
	}
	return &Client{
		transport: transport,
		logger:    logger,
		notifyCh:  make(chan []byte, 8),
	}, nil
}

// Scan discovers nearby Circuit Cube devices.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return nil, ErrAlreadyConnected
	}
	c.mu.RUnlock()

	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.logger.Debug("scanning for devices", "timeout", timeout)
	return c.transport.Scan(ctx, timeout, func(name string) bool {
		return strings.Contains(name, DeviceNamePrefix)
	})
}

// Connect establishes a GATT link to the device with the given address,
// discovers the command characteristics, and subscribes to responses.
func (c *Client) Connect(ctx context.Context, address, name string, timeout time.Duration) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.logger.Debug("connecting", "address", address)

	conn, err := c.transport.Connect(ctx, address, timeout)
	if err != nil {
		return err
	}

	tx, err := conn.Characteristic(protocol.ServiceUUID, protocol.TxCharUUID)
	if err != nil {
		conn.Disconnect()
		return fmt.Errorf("ble: TX characteristic: %w", err)
	}

	rx, err := conn.Characteristic(protocol.ServiceUUID, protocol.RxCharUUID)
	if err != nil {
		conn.Disconnect()
		return fmt.Errorf("ble: RX characteristic: %w", err)
	}

	if err := rx.Subscribe(c.handleNotification); err != nil {
		conn.Disconnect()
		return fmt.Errorf("ble: subscribe to RX: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.tx = tx
	c.chars = map[string]Characteristic{
		protocol.TxCharUUID: tx,
		protocol.RxCharUUID: rx,
	}
	c.connected = true
	c.address = address
	c.deviceName = name
	c.mu.Unlock()

	c.logger.Debug("connected", "address", address, "name", name)
	return nil
}

// Disconnect tears down the link. It is idempotent: calling it on an already
// disconnected client is a no-op.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.conn.Disconnect()
	c.conn = nil
	c.tx = nil
	c.chars = nil
	c.connected = false
	c.deviceName = ""

	return err
}

// IsConnected returns true while the link is up.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Address returns the address of the connected device.
func (c *Client) Address() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

// DeviceName returns the advertised name of the connected device.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Write sends a command payload to the TX characteristic.
//
// A write failure usually means the link dropped; the client marks itself
// disconnected rather than leave the session claiming a dead link is alive.
func (c *Client) Write(data []byte) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.write(data)
}

func (c *Client) write(data []byte) error {
	c.mu.RLock()
	tx := c.tx
	connected := c.connected
	c.mu.RUnlock()

	if !connected {
		return ErrNotConnected
	}

	c.logger.Debug("write", "payload", string(data))
	if err := tx.Write(data); err != nil {
		c.Disconnect()
		return fmt.Errorf("ble: write %q: %w", data, err)
	}
	return nil
}

// Request writes a command and waits for the next notification on RX.
func (c *Client) Request(ctx context.Context, data []byte, timeout time.Duration) ([]byte, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	// Drain any stale notification from a previous exchange.
	select {
	case <-c.notifyCh:
	default:
	}

	if err := c.write(data); err != nil {
		return nil, err
	}

	select {
	case resp := <-c.notifyCh:
		return resp, nil
	case <-time.After(timeout):
		return nil, ErrResponseTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ReadCharacteristic reads a characteristic value, discovering it on first
// use and caching the handle for the rest of the session.
func (c *Client) ReadCharacteristic(serviceUUID, charUUID string) ([]byte, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.RLock()
	conn := c.conn
	connected := c.connected
	ch := c.chars[charUUID]
	c.mu.RUnlock()

	if !connected {
		return nil, ErrNotConnected
	}

	if ch == nil {
		var err error
		ch, err = conn.Characteristic(serviceUUID, charUUID)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.chars != nil {
			c.chars[charUUID] = ch
		}
		c.mu.Unlock()
	}

	buf := make([]byte, readBufSize)
	n, err := ch.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("ble: read %s: %w", charUUID, err)
	}
	return buf[:n], nil
}

func (c *Client) handleNotification(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)

	select {
	case c.notifyCh <- cp:
	default:
		c.logger.Debug("dropping unsolicited notification", "len", len(cp))
	}
}
