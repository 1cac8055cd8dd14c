package circuitcube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/simon-code-git/circuitcube/internal/ble"
	"github.com/simon-code-git/circuitcube/internal/journal"
	"github.com/simon-code-git/circuitcube/internal/protocol"
)

// Device represents a discovered Circuit Cube.
// Devices are returned by Scan and can be passed to Connect.
type Device struct {
	Name    string // Advertised name (contains "Tenka")
	Address string // MAC address, or a 128-bit UUID on macOS
	RSSI    int16  // Signal strength in dBm
}

// Constant is one row of the cube's GATT constants table.
type Constant struct {
	Index      int
	Name       string
	Identifier string
	Kind       string // "address", "service", "characteristic" or "descriptor"
}

// Cube represents a connected Circuit Cube session.
//
// A Cube owns exactly one BLE link. All methods serialize through the
// underlying client, so a single command is in flight at a time.
type Cube struct {
	client *ble.Client
	cfg    *config
	logger *slog.Logger

	mu        sync.Mutex
	journal   *journal.Journal
	sessionID string
}

// Scan discovers nearby Circuit Cube devices, returning every match found
// within the timeout.
func Scan(ctx context.Context, timeout time.Duration, opts ...Option) ([]Device, error) {
	cfg := newConfig(opts)
	client, err := ble.NewClient(ble.NewTransport(), cfg.slog())
	if err != nil {
		return nil, err
	}

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, mapErr(err)
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{Name: r.Name, Address: r.Address, RSSI: r.RSSI}
	}
	return devices, nil
}

// Connect connects to a specific Circuit Cube device.
func Connect(ctx context.Context, device Device, opts ...Option) (*Cube, error) {
	cfg := newConfig(opts)
	client, err := ble.NewClient(ble.NewTransport(), cfg.slog())
	if err != nil {
		return nil, err
	}
	return connectClient(ctx, client, device, cfg)
}

// ConnectByAddress connects to the Circuit Cube with the given address.
// Both MAC addresses and macOS 128-bit UUIDs are accepted.
func ConnectByAddress(ctx context.Context, address string, opts ...Option) (*Cube, error) {
	return Connect(ctx, Device{Address: address}, opts...)
}

// ConnectFirst scans and connects to the first Circuit Cube found.
// This is the two-line entry point for single-cube setups.
func ConnectFirst(ctx context.Context, opts ...Option) (*Cube, error) {
	cfg := newConfig(opts)
	client, err := ble.NewClient(ble.NewTransport(), cfg.slog())
	if err != nil {
		return nil, err
	}

	results, err := client.Scan(ctx, cfg.scanTimeout)
	if err != nil {
		return nil, mapErr(err)
	}
	if len(results) == 0 {
		return nil, ErrDeviceNotFound
	}

	device := Device{Name: results[0].Name, Address: results[0].Address, RSSI: results[0].RSSI}
	return connectClient(ctx, client, device, cfg)
}

// connectClient finishes session setup over an already constructed client.
// Split out so tests can drive a mock transport through the full path.
func connectClient(ctx context.Context, client *ble.Client, device Device, cfg *config) (*Cube, error) {
	if err := client.Connect(ctx, device.Address, device.Name, cfg.scanTimeout); err != nil {
		if mapped := mapErr(err); mapped != err {
			return nil, mapped
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	c := &Cube{
		client: client,
		cfg:    cfg,
		logger: cfg.slog(),
	}

	if cfg.journalPath != "" {
		j, err := journal.Open(cfg.journalPath)
		if err != nil {
			c.logger.Warn("journal disabled", "error", err)
		} else {
			id, err := j.StartSession(device.Name, device.Address)
			if err != nil {
				c.logger.Warn("journal disabled", "error", err)
				j.Close()
			} else {
				c.journal = j
				c.sessionID = id
			}
		}
	}

	return c, nil
}

// Close disconnects from the cube and releases the session. It is
// idempotent: closing an already closed session is a no-op.
func (c *Cube) Close() error {
	c.mu.Lock()
	j := c.journal
	id := c.sessionID
	c.journal = nil
	c.mu.Unlock()

	if j != nil {
		if err := j.EndSession(id); err != nil {
			c.logger.Warn("journal session end", "error", err)
		}
		j.Close()
	}

	return c.client.Disconnect()
}

// IsConnected returns true while the BLE link is up.
func (c *Cube) IsConnected() bool {
	return c.client.IsConnected()
}

// Address returns the address of the connected device.
func (c *Cube) Address() string {
	return c.client.Address()
}

// DeviceName returns the advertised name of the connected device.
func (c *Cube) DeviceName() string {
	return c.client.DeviceName()
}

// RunMotor drives a single motor at velocity (-100 to 100) for the given
// duration, then stops it unless smooth is set. A duration of zero starts
// the motor and returns immediately; it runs until the next command.
//
// Validation failures are reported before any BLE traffic is issued.
func (c *Cube) RunMotor(ctx context.Context, motor Motor, velocity int, duration time.Duration, smooth bool) error {
	if err := validateCommand(motor, velocity, duration); err != nil {
		return err
	}

	if err := c.sendMotor(motor, velocity); err != nil {
		return err
	}

	if duration == 0 {
		return nil
	}

	if err := c.wait(ctx, duration); err != nil {
		// Best effort: don't leave the motor spinning on cancellation.
		if !smooth {
			c.sendMotor(motor, 0)
		}
		return err
	}

	if smooth {
		return nil
	}
	return c.sendMotor(motor, 0)
}

// RunMotors drives several motors at once, one command per motor/velocity
// pair. The writes are sequential: there is no atomicity across outputs.
// Duration and smooth apply to the whole batch, as in RunMotor.
func (c *Cube) RunMotors(ctx context.Context, motors []Motor, velocities []int, duration time.Duration, smooth bool) error {
	if len(motors) != len(velocities) {
		return fmt.Errorf("%w: %d motors, %d velocities", ErrLengthMismatch, len(motors), len(velocities))
	}
	for i, m := range motors {
		if err := validateCommand(m, velocities[i], duration); err != nil {
			return err
		}
	}

	for i, m := range motors {
		if err := c.sendMotor(m, velocities[i]); err != nil {
			return err
		}
	}

	if duration == 0 {
		return nil
	}

	if err := c.wait(ctx, duration); err != nil {
		if !smooth {
			c.stopAll(motors)
		}
		return err
	}

	if smooth {
		return nil
	}
	return c.stopAll(motors)
}

// Halt stops all three motors.
func (c *Cube) Halt(ctx context.Context) error {
	return c.stopAll(allMotors[:])
}

// Battery queries the battery voltage. The cube reports it as an ASCII
// string notification in response to a 'b' command.
func (c *Cube) Battery(ctx context.Context) (float64, error) {
	resp, err := c.client.Request(ctx, protocol.BatteryRequest, c.cfg.requestTimeout)
	if err != nil {
		return 0, mapErr(err)
	}

	volts, err := protocol.ParseVoltage(resp)
	if err != nil {
		return 0, err
	}

	c.recordBattery(volts)
	return volts, nil
}

// Information reads the seven documented device-information fields. A
// failed read of one characteristic is recorded per-field instead of
// aborting the whole report; the call itself only fails when the session
// is not connected.
func (c *Cube) Information(ctx context.Context) (*DeviceInfo, error) {
	if !c.client.IsConnected() {
		return nil, ErrNotConnected
	}

	info := &DeviceInfo{FieldErrors: make(map[string]error)}

	readString := func(field, serviceUUID, charUUID string) string {
		data, err := c.client.ReadCharacteristic(serviceUUID, charUUID)
		if err != nil {
			info.FieldErrors[field] = err
			return ""
		}
		return strings.TrimRight(string(data), "\x00")
	}

	info.Name = readString(FieldName, protocol.GAPServiceUUID, protocol.DeviceNameUUID)

	if data, err := c.client.ReadCharacteristic(protocol.GAPServiceUUID, protocol.AppearanceUUID); err != nil {
		info.FieldErrors[FieldAppearance] = err
	} else {
		info.Appearance = protocol.ParseAppearance(data)
	}

	info.SerialNumber = readString(FieldSerialNumber, protocol.DeviceInfoServiceUUID, protocol.SerialNumberUUID)
	info.FirmwareRevision = readString(FieldFirmware, protocol.DeviceInfoServiceUUID, protocol.FirmwareRevUUID)
	info.HardwareRevision = readString(FieldHardware, protocol.DeviceInfoServiceUUID, protocol.HardwareRevUUID)
	info.SoftwareRevision = readString(FieldSoftware, protocol.DeviceInfoServiceUUID, protocol.SoftwareRevUUID)

	if volts, err := c.Battery(ctx); err != nil {
		info.FieldErrors[FieldBattery] = err
	} else {
		info.BatteryVoltage = volts
	}

	return info, nil
}

// GetConstant returns the GATT constants table row at index i (0-28).
// Index 0 reports the connected device's address.
func (c *Cube) GetConstant(i int) (Constant, error) {
	pc, err := protocol.Lookup(i)
	if err != nil {
		return Constant{}, fmt.Errorf("%w: %d", ErrConstantRange, i)
	}

	out := Constant{
		Index:      pc.Index,
		Name:       pc.Name,
		Identifier: pc.Identifier,
		Kind:       pc.Kind.String(),
	}
	if i == 0 {
		out.Identifier = c.client.Address()
	}
	return out, nil
}

// Constants returns the full GATT constants table. The address row (index
// 0) is empty here; it is per-device and only known to a connected session.
func Constants() []Constant {
	table := protocol.Constants()
	out := make([]Constant, len(table))
	for i, pc := range table {
		out[i] = Constant{
			Index:      pc.Index,
			Name:       pc.Name,
			Identifier: pc.Identifier,
			Kind:       pc.Kind.String(),
		}
	}
	return out
}

// Help returns a pointer to the project documentation.
func (c *Cube) Help() string {
	return "Visit https://github.com/simon-code-git/circuitcubes."
}

func validateCommand(motor Motor, velocity int, duration time.Duration) error {
	if !motor.valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidMotor, int(motor))
	}
	if velocity < -protocol.MaxVelocity || velocity > protocol.MaxVelocity {
		return fmt.Errorf("%w: got %d", ErrVelocityRange, velocity)
	}
	if duration < 0 {
		return fmt.Errorf("%w: got %s", ErrNegativeDuration, duration)
	}
	return nil
}

func (c *Cube) sendMotor(motor Motor, velocity int) error {
	payload := protocol.EncodeMotor(int(motor), velocity)
	if err := c.client.Write(payload); err != nil {
		return mapErr(err)
	}
	c.recordCommand(motor, velocity, string(payload))
	return nil
}

func (c *Cube) stopAll(motors []Motor) error {
	var firstErr error
	for _, m := range motors {
		if err := c.sendMotor(m, 0); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Cube) wait(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Cube) recordCommand(motor Motor, velocity int, payload string) {
	c.mu.Lock()
	j := c.journal
	id := c.sessionID
	c.mu.Unlock()

	if j == nil {
		return
	}
	if err := j.RecordCommand(id, motor.String(), velocity, payload); err != nil {
		c.logger.Warn("journal write", "error", err)
	}
}

func (c *Cube) recordBattery(volts float64) {
	c.mu.Lock()
	j := c.journal
	id := c.sessionID
	c.mu.Unlock()

	if j == nil {
		return
	}
	if err := j.RecordBattery(id, volts); err != nil {
		c.logger.Warn("journal write", "error", err)
	}
}

// mapErr translates internal transport sentinels into package sentinels so
// callers only ever match against circuitcube errors.
func mapErr(err error) error {
	switch {
	case errors.Is(err, ble.ErrNotConnected):
		return ErrNotConnected
	case errors.Is(err, ble.ErrAlreadyConnected):
		return ErrAlreadyConnected
	case errors.Is(err, ble.ErrDeviceNotFound):
		return ErrDeviceNotFound
	case errors.Is(err, ble.ErrResponseTimeout):
		return ErrTimeout
	default:
		return err
	}
}
