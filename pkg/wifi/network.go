// Package wifi queries and controls Wi-Fi through NetworkManager's nmcli.
package wifi

import (
	"errors"
	"sort"
)

// ErrEmptySSID is returned when connecting without a network name.
var ErrEmptySSID = errors.New("wifi: empty SSID")

// Network represents a WiFi network seen in a scan.
type Network struct {
	SSID     string
	Signal   int    // Signal strength percentage (0-100)
	Security string // WPA2, WPA1 WPA2, WPA3, "" for open
	Secured  bool
	Active   bool
}

// SecurityLabel returns a display label for the network's security.
func (n Network) SecurityLabel() string {
	if !n.Secured {
		return "Open"
	}
	return n.Security
}

// Signal icon names by strength band.
const (
	IconExcellent = "network-wireless-signal-excellent-symbolic"
	IconGood      = "network-wireless-signal-good-symbolic"
	IconOK        = "network-wireless-signal-ok-symbolic"
	IconWeak      = "network-wireless-signal-weak-symbolic"
)

// SignalIcon maps signal strength to an icon name.
func SignalIcon(signal int) string {
	switch {
	case signal > 80:
		return IconExcellent
	case signal > 55:
		return IconGood
	case signal > 30:
		return IconOK
	default:
		return IconWeak
	}
}

// SignalBars renders signal strength as four bars for text frontends.
func SignalBars(signal int) string {
	switch {
	case signal > 80:
		return "▂▄▆█"
	case signal > 55:
		return "▂▄▆_"
	case signal > 30:
		return "▂▄__"
	default:
		return "▂___"
	}
}

// Dedupe collapses access points sharing an SSID into the strongest one
// and orders the result active first, then by descending signal. An entry
// is active if any of its access points is.
func Dedupe(networks []Network) []Network {
	index := make(map[string]int, len(networks))
	out := make([]Network, 0, len(networks))
	for _, n := range networks {
		i, seen := index[n.SSID]
		if !seen {
			index[n.SSID] = len(out)
			out = append(out, n)
			continue
		}
		active := out[i].Active || n.Active
		if n.Signal > out[i].Signal {
			out[i] = n
		}
		out[i].Active = active
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Active != out[b].Active {
			return out[a].Active
		}
		return out[a].Signal > out[b].Signal
	})
	return out
}
