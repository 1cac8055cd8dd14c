package circuitcube

import (
	"fmt"
	"strings"
)

// Field names used as keys in DeviceInfo.FieldErrors.
const (
	FieldName         = "name"
	FieldAppearance   = "appearance"
	FieldSerialNumber = "serial_number"
	FieldFirmware     = "firmware"
	FieldHardware     = "hardware"
	FieldSoftware     = "software"
	FieldBattery      = "battery"
)

// DeviceInfo holds the device-information characteristics of a Circuit Cube.
//
// Information populates every field it can read; a field whose read failed
// keeps its zero value and carries its error in FieldErrors. A single bad
// characteristic therefore never hides the rest of the report.
type DeviceInfo struct {
	Name             string
	Appearance       uint16
	SerialNumber     string
	FirmwareRevision string
	HardwareRevision string
	SoftwareRevision string
	BatteryVoltage   float64

	FieldErrors map[string]error
}

// Err returns the read error for the named field, or nil.
func (i *DeviceInfo) Err(field string) error {
	return i.FieldErrors[field]
}

// Complete reports whether every field was read successfully.
func (i *DeviceInfo) Complete() bool {
	return len(i.FieldErrors) == 0
}

func (i *DeviceInfo) String() string {
	var b strings.Builder
	b.WriteString("Device information:\n")

	write := func(field, label, value string) {
		if err := i.FieldErrors[field]; err != nil {
			fmt.Fprintf(&b, "    %s: <error: %v>\n", label, err)
			return
		}
		fmt.Fprintf(&b, "    %s: %s\n", label, value)
	}

	write(FieldName, "Name", i.Name)
	write(FieldAppearance, "Appearance code", fmt.Sprintf("%d", i.Appearance))
	write(FieldSerialNumber, "Serial number", i.SerialNumber)
	write(FieldFirmware, "Firmware", i.FirmwareRevision)
	write(FieldHardware, "Hardware", i.HardwareRevision)
	write(FieldSoftware, "Software", i.SoftwareRevision)
	write(FieldBattery, "Battery voltage", fmt.Sprintf("%.3f V", i.BatteryVoltage))

	return b.String()
}
