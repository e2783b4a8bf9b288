// Package display reads and changes screen modes, brightness and the
// desktop wallpaper on X11 and Wayland sessions.
package display

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Mode is one resolution and refresh rate an output supports.
type Mode struct {
	Output     string
	Resolution string
	Width      int
	Height     int
	Refresh    float64
	Current    bool
	Preferred  bool
}

// Label renders the mode for selectors, e.g. "1920x1080 @ 60.00 Hz".
func (m Mode) Label() string {
	return fmt.Sprintf("%s @ %.2f Hz", m.Resolution, m.Refresh)
}

// Size returns the plain WIDTHxHEIGHT part of the resolution.
func (m Mode) Size() string {
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

var (
	sizePattern    = regexp.MustCompile(`^(\d+)x(\d+)`)
	wlrModePattern = regexp.MustCompile(`^(\d+)x(\d+) px, ([0-9.]+) Hz(?: \((.*)\))?$`)
)

func parseSize(token string) (int, int, bool) {
	m := sizePattern.FindStringSubmatch(token)
	if m == nil {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(m[1])
	h, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return w, h, true
}

// ParseXrandr parses plain `xrandr` output. Each refresh token on a mode
// line becomes one Mode; "*" marks the current rate and "+" the preferred
// one. Mode names such as "1920x1080_60.00" are kept verbatim. Lines
// without a numeric refresh rate are skipped, as are modes of
// disconnected outputs.
func ParseXrandr(out string) []Mode {
	var modes []Mode
	output := ""
	connected := false

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "Screen ") {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			fields := strings.Fields(line)
			output = fields[0]
			connected = len(fields) > 1 && fields[1] == "connected"
			continue
		}
		if !connected {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		w, h, ok := parseSize(fields[0])
		if !ok {
			continue
		}
		first := len(modes)
		for _, tok := range fields[1:] {
			if strings.Trim(tok, "*+") == "" {
				// Markers separated from their rate, e.g. "60.00 +".
				if len(modes) > first {
					modes[len(modes)-1].Current = modes[len(modes)-1].Current || strings.Contains(tok, "*")
					modes[len(modes)-1].Preferred = modes[len(modes)-1].Preferred || strings.Contains(tok, "+")
				}
				continue
			}
			current := strings.Contains(tok, "*")
			preferred := strings.Contains(tok, "+")
			rate, err := strconv.ParseFloat(strings.Trim(tok, "*+"), 64)
			if err != nil {
				continue
			}
			modes = append(modes, Mode{
				Output:     output,
				Resolution: fields[0],
				Width:      w,
				Height:     h,
				Refresh:    rate,
				Current:    current,
				Preferred:  preferred,
			})
		}
	}
	return modes
}

// ParseWlrRandr parses `wlr-randr` output.
func ParseWlrRandr(out string) []Mode {
	var modes []Mode
	output := ""
	enabled := true

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			output = strings.Fields(line)[0]
			enabled = true
			continue
		}
		trimmed := strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(trimmed, "Enabled:"); ok {
			enabled = strings.TrimSpace(v) == "yes"
			continue
		}
		if !enabled {
			continue
		}
		m := wlrModePattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		rate, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		modes = append(modes, Mode{
			Output:     output,
			Resolution: m[1] + "x" + m[2],
			Width:      w,
			Height:     h,
			Refresh:    rate,
			Current:    strings.Contains(m[4], "current"),
			Preferred:  strings.Contains(m[4], "preferred"),
		})
	}
	return modes
}

// CurrentMode returns the first mode marked current.
func CurrentMode(modes []Mode) (Mode, bool) {
	for _, m := range modes {
		if m.Current {
			return m, true
		}
	}
	return Mode{}, false
}

// ParseBrightness reads the percentage from `brightnessctl -m` output
// ("device,class,current,NN%,max").
func ParseBrightness(out string) (int, bool) {
	line := strings.TrimSpace(strings.SplitN(out, "\n", 2)[0])
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSuffix(fields[3], "%"))
	if err != nil {
		return 0, false
	}
	return v, true
}
