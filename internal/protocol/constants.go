// Package protocol defines the Circuit Cube GATT layout and the ASCII
// command encoding understood by the firmware.
package protocol

import (
	"errors"
	"fmt"
)

// Circuit Cube BLE Service and Characteristic UUIDs.
// The cube exposes a Nordic-UART-style service: commands are written to TX,
// responses arrive as notifications on RX.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write without response
	RxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
)

// Standard GATT services and characteristics read for device information.
const (
	GAPServiceUUID        = "00001800-0000-1000-8000-00805f9b34fb"
	DeviceNameUUID        = "00002a00-0000-1000-8000-00805f9b34fb"
	AppearanceUUID        = "00002a01-0000-1000-8000-00805f9b34fb"
	PeripheralPrivacyUUID = "00002a02-0000-1000-8000-00805f9b34fb"

	GATTServiceUUID    = "00001801-0000-1000-8000-00805f9b34fb"
	ServiceChangedUUID = "00002a05-0000-1000-8000-00805f9b34fb"

	DeviceInfoServiceUUID = "0000180a-0000-1000-8000-00805f9b34fb"
	SystemIDUUID          = "00002a23-0000-1000-8000-00805f9b34fb"
	ModelNumberUUID       = "00002a24-0000-1000-8000-00805f9b34fb"
	SerialNumberUUID      = "00002a25-0000-1000-8000-00805f9b34fb"
	FirmwareRevUUID       = "00002a26-0000-1000-8000-00805f9b34fb"
	HardwareRevUUID       = "00002a27-0000-1000-8000-00805f9b34fb"
	SoftwareRevUUID       = "00002a28-0000-1000-8000-00805f9b34fb"
	ManufacturerUUID      = "00002a29-0000-1000-8000-00805f9b34fb"
	IEEERegulatoryUUID    = "00002a2a-0000-1000-8000-00805f9b34fb"
	PnPIDUUID             = "00002a50-0000-1000-8000-00805f9b34fb"
)

// Vendor service exposed by the cube alongside the command service. Its
// purpose is undocumented by the manufacturer.
const (
	VendorServiceUUID = "f000ffc0-0451-4000-b000-000000000000"
	VendorChar1UUID   = "f000ffc1-0451-4000-b000-000000000000"
	VendorChar2UUID   = "f000ffc2-0451-4000-b000-000000000000"
)

// Descriptor UUIDs referenced by the constants table.
const (
	ClientCharConfigUUID = "00002902-0000-1000-8000-00805f9b34fb"
	UserDescriptionUUID  = "00002901-0000-1000-8000-00805f9b34fb"
)

// Kind classifies a row of the constants table.
type Kind int

const (
	KindAddress Kind = iota
	KindService
	KindCharacteristic
	KindDescriptor
)

func (k Kind) String() string {
	switch k {
	case KindAddress:
		return "address"
	case KindService:
		return "service"
	case KindCharacteristic:
		return "characteristic"
	case KindDescriptor:
		return "descriptor"
	default:
		return "unknown"
	}
}

// Constant is one row of the cube's GATT constants table.
type Constant struct {
	Index      int
	Name       string
	Identifier string
	Kind       Kind
}

// ErrIndexRange is returned by Lookup for indices outside [0, Count-1].
var ErrIndexRange = errors.New("protocol: constant index out of range")

// constants is the vendor GATT table, indexed 0 through 28. Index 0 is a
// placeholder for the per-device Bluetooth address; every other row is
// identical across all Circuit Cubes.
var constants = [...]Constant{
	{0, "BLUETOOTH_ADDRESS", "", KindAddress},
	{1, "CIRCUITCUBE_SERV", ServiceUUID, KindService},
	{2, "TX_CHAR", TxCharUUID, KindCharacteristic},
	{3, "RX_CHAR", RxCharUUID, KindCharacteristic},
	{4, "RX_CLIENT_CHAR_CONFIG_DESC", ClientCharConfigUUID, KindDescriptor},
	{5, "GAP_SERV", GAPServiceUUID, KindService},
	{6, "DEVICE_NAME_CHAR", DeviceNameUUID, KindCharacteristic},
	{7, "APPEARANCE_CHAR", AppearanceUUID, KindCharacteristic},
	{8, "PERIPHERAL_PRIVACY_CHAR", PeripheralPrivacyUUID, KindCharacteristic},
	{9, "GATT_SERV", GATTServiceUUID, KindService},
	{10, "SERVICE_CHANGED_CHAR", ServiceChangedUUID, KindCharacteristic},
	{11, "GATT_CLIENT_CHAR_CONFIG_DESC", ClientCharConfigUUID, KindDescriptor},
	{12, "DEVICE_INFORMATION_SERV", DeviceInfoServiceUUID, KindService},
	{13, "SYSTEM_ID_CHAR", SystemIDUUID, KindCharacteristic},
	{14, "MODEL_NUMBER_STR_CHAR", ModelNumberUUID, KindCharacteristic},
	{15, "SERIAL_NUMBER_STR_CHAR", SerialNumberUUID, KindCharacteristic},
	{16, "FIRMWARE_REV_STR_CHAR", FirmwareRevUUID, KindCharacteristic},
	{17, "HARDWARE_REV_STR_CHAR", HardwareRevUUID, KindCharacteristic},
	{18, "SOFTWARE_REV_STR_CHAR", SoftwareRevUUID, KindCharacteristic},
	{19, "MANUFACTURER_STR_CHAR", ManufacturerUUID, KindCharacteristic},
	{20, "IEEE_REGULATORY_LIST_CHAR", IEEERegulatoryUUID, KindCharacteristic},
	{21, "PLUGNPLAY_ID_CHAR", PnPIDUUID, KindCharacteristic},
	{22, "UNKNOWN_SERV", VendorServiceUUID, KindService},
	{23, "UNKNOWN_CHAR_1", VendorChar1UUID, KindCharacteristic},
	{24, "UNKNOWN_DESC_1", ClientCharConfigUUID, KindDescriptor},
	{25, "UNKNOWN_DESC_2", UserDescriptionUUID, KindDescriptor},
	{26, "UNKNOWN_CHAR_2", VendorChar2UUID, KindCharacteristic},
	{27, "UNKNOWN_DESC_3", ClientCharConfigUUID, KindDescriptor},
	{28, "UNKNOWN_DESC_4", UserDescriptionUUID, KindDescriptor},
}

// Count is the number of rows in the constants table.
const Count = len(constants)

// Lookup returns the constants table row at index i.
func Lookup(i int) (Constant, error) {
	if i < 0 || i >= Count {
		return Constant{}, fmt.Errorf("%w: %d (valid range 0-%d)", ErrIndexRange, i, Count-1)
	}
	return constants[i], nil
}

// Constants returns a copy of the full table, in index order.
func Constants() []Constant {
	out := make([]Constant, Count)
	copy(out, constants[:])
	return out
}
