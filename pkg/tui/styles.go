package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00BCD4")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00BFA5"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000")).
			Background(lipgloss.Color("#00BCD4")).
			Padding(0, 1)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Padding(0, 1)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50")).
			Padding(0, 1)

	signalGood = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	signalMed  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	signalBad  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F44336")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666")).
			MarginTop(1)

	sidebarStyle = lipgloss.NewStyle().
			Width(26).
			PaddingRight(2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("#333"))

	contentStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

func signalBars(signal int) string {
	switch {
	case signal >= 75:
		return signalGood.Render("████")
	case signal >= 50:
		return signalMed.Render("███") + "░"
	case signal >= 25:
		return signalBad.Render("██") + "░░"
	default:
		return signalBad.Render("█") + "░░░"
	}
}

func onOff(on bool) string {
	if on {
		return signalGood.Render("on")
	}
	return statusStyle.Render("off")
}

// refreshed renders when a list was last scanned.
func refreshed(t time.Time) string {
	if t.IsZero() {
		return statusStyle.Render("not scanned yet")
	}
	return statusStyle.Render("refreshed " + humanize.Time(t))
}
