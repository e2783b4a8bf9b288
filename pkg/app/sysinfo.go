package app

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/ravenlinux/raven-settings/pkg/command"
)

// OSReleasePath is read for the distribution name.
var OSReleasePath = "/etc/os-release"

// SystemInfo is shown on the about page.
type SystemInfo struct {
	Hostname string
	Kernel   string
	OS       string
	Desktop  string
	Session  string
}

// SystemInfo collects host details. Missing pieces are left empty.
func (a *App) SystemInfo(ctx context.Context) SystemInfo {
	info := SystemInfo{
		Desktop: os.Getenv("XDG_CURRENT_DESKTOP"),
		Session: string(a.Display.Session()),
		OS:      prettyName(OSReleasePath),
	}
	if info.Desktop == "" {
		info.Desktop = "Raven Shell"
	}
	info.Hostname, _ = os.Hostname()
	if res, err := a.Runner.Run(ctx, command.New("uname", "-r")); err == nil {
		info.Kernel = strings.TrimSpace(res.Stdout)
	}
	return info
}

func prettyName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if v, ok := strings.CutPrefix(scanner.Text(), "PRETTY_NAME="); ok {
			return strings.Trim(v, `"'`)
		}
	}
	return ""
}

// Project links shown on the about page.
const (
	WebsiteURL = "https://ravenlinux.org"
	DocsURL    = "https://docs.ravenlinux.org"
)

// OpenURL opens url with the desktop's default handler.
func (a *App) OpenURL(ctx context.Context, url string) error {
	_, err := a.Runner.Run(ctx, command.New("xdg-open", url))
	return err
}
