// Package bluetooth queries and controls BlueZ through bluetoothctl.
package bluetooth

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidAddress is returned for malformed device addresses.
var ErrInvalidAddress = errors.New("bluetooth: invalid device address")

var addressPattern = regexp.MustCompile(`^[0-9A-Fa-f]{2}(:[0-9A-Fa-f]{2}){5}$`)

// ValidAddress reports whether addr looks like AA:BB:CC:DD:EE:FF.
func ValidAddress(addr string) bool {
	return addressPattern.MatchString(addr)
}

// Device is a known or discovered Bluetooth device.
type Device struct {
	Address   string
	Name      string
	Connected bool
	Paired    bool
	Trusted   bool
}

// Info holds the fields read from `bluetoothctl info`.
type Info struct {
	Name      string
	Alias     string
	Icon      string
	Connected bool
	Paired    bool
	Trusted   bool
}

// ParseDevices parses `bluetoothctl devices` lines of the form
// "Device <address> <name>". Lines with a bad address are dropped. A device
// without a name is named after its address.
func ParseDevices(out string) []Device {
	var devices []Device
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != "Device" || !ValidAddress(fields[1]) {
			continue
		}
		name := strings.TrimSpace(strings.SplitN(strings.TrimSpace(line), fields[1], 2)[1])
		if name == "" {
			name = fields[1]
		}
		devices = append(devices, Device{Address: strings.ToUpper(fields[1]), Name: name})
	}
	return devices
}

// ParseInfo parses `bluetoothctl info <address>`.
func ParseInfo(out string) Info {
	var info Info
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Name":
			info.Name = value
		case "Alias":
			info.Alias = value
		case "Icon":
			info.Icon = value
		case "Connected":
			info.Connected = value == "yes"
		case "Paired":
			info.Paired = value == "yes"
		case "Trusted":
			info.Trusted = value == "yes"
		}
	}
	return info
}

// ParsePowered reports whether `bluetoothctl show` lists the controller as
// powered.
func ParsePowered(out string) bool {
	return strings.Contains(out, "Powered: yes")
}

// ParseDiscoverable reports whether `bluetoothctl show` lists the
// controller as discoverable.
func ParseDiscoverable(out string) bool {
	return strings.Contains(out, "Discoverable: yes")
}

// Icon returns an icon name for the device.
func (d Device) Icon() string {
	if d.Connected {
		return "bluetooth-active-symbolic"
	}
	return "bluetooth-symbolic"
}
