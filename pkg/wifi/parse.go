package wifi

import (
	"strconv"
	"strings"
)

// SplitTerse splits one line of nmcli terse output on unescaped colons and
// removes the backslash escapes nmcli adds to ':' and '\'.
func SplitTerse(line string) []string {
	var fields []string
	var b strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	return append(fields, b.String())
}

// ParseNetworks parses `nmcli -t -f SSID,SIGNAL,SECURITY device wifi list`.
// Lines with fewer than three fields or a blank SSID are dropped. A
// non-numeric signal reads as 0.
func ParseNetworks(out string) []Network {
	var networks []Network
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitTerse(line)
		if len(fields) < 3 {
			continue
		}
		ssid := fields[0]
		if strings.TrimSpace(ssid) == "" {
			continue
		}

		signal, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			signal = 0
		}
		signal = min(max(signal, 0), 100)

		security := strings.TrimSpace(strings.Join(fields[2:], ":"))
		if security == "--" {
			security = ""
		}

		networks = append(networks, Network{
			SSID:     ssid,
			Signal:   signal,
			Security: security,
			Secured:  security != "",
		})
	}
	return networks
}

// ParseRadio reports whether `nmcli radio wifi` says the radio is enabled.
func ParseRadio(out string) bool {
	return strings.Contains(out, "enabled")
}

// ParseActive returns the SSID marked active in
// `nmcli -t -f active,ssid dev wifi` output.
func ParseActive(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		fields := SplitTerse(strings.TrimRight(line, "\r"))
		if len(fields) < 2 || fields[0] != "yes" {
			continue
		}
		ssid := strings.Join(fields[1:], ":")
		if ssid != "" {
			return ssid, true
		}
	}
	return "", false
}
