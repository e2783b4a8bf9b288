// Package firewall controls ufw. Every command that changes state runs
// through the runner's privilege prefix.
package firewall

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/command"
	"github.com/ravenlinux/raven-settings/pkg/logging"
)

// ErrInvalidTarget is returned for service or port names ufw would not
// accept.
var ErrInvalidTarget = errors.New("firewall: invalid service or port")

// Services offered as switches on the security page.
var Services = []string{"ssh", "smtp", "vnc"}

var targetPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*|\d{1,5}(:\d{1,5})?(/(tcp|udp))?)$`)

// ValidTarget reports whether target is a service name or a port spec such
// as "8080", "8080/tcp" or "6000:6007/udp".
func ValidTarget(target string) bool {
	return targetPattern.MatchString(target)
}

// Rule is one line of the ufw rule table.
type Rule struct {
	To     string
	Action string
	From   string
}

// Status is the parsed `ufw status` output.
type Status struct {
	Active bool
	Rules  []Rule
}

var actionPattern = regexp.MustCompile(`\s{2,}((?:ALLOW|DENY|REJECT|LIMIT)(?: (?:IN|OUT|FWD))?)\s{2,}`)

// ParseStatus parses `ufw status`.
func ParseStatus(out string) Status {
	var st Status
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r ")
		if v, ok := strings.CutPrefix(line, "Status:"); ok {
			st.Active = strings.TrimSpace(v) == "active"
			continue
		}
		loc := actionPattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		st.Rules = append(st.Rules, Rule{
			To:     strings.TrimSpace(line[:loc[0]]),
			Action: line[loc[2]:loc[3]],
			From:   strings.TrimSpace(line[loc[1]:]),
		})
	}
	return st
}

// Allowed reports whether the rule table allows target.
func (s Status) Allowed(target string) bool {
	for _, r := range s.Rules {
		if strings.HasPrefix(r.Action, "ALLOW") && (r.To == target || strings.EqualFold(r.To, target)) {
			return true
		}
	}
	return false
}

// Client runs ufw through a command.Runner.
type Client struct {
	runner command.Runner
	logger *zap.Logger
}

// NewClient creates a firewall client.
func NewClient(runner command.Runner, logger *zap.Logger) *Client {
	return &Client{runner: runner, logger: logging.OrNop(logger)}
}

// Status reads the firewall state and rules.
func (c *Client) Status(ctx context.Context) (Status, error) {
	res, err := c.runner.Run(ctx, command.New("ufw", "status").AsRoot())
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(res.Stdout), nil
}

// SetEnabled turns the firewall on or off.
func (c *Client) SetEnabled(ctx context.Context, on bool) error {
	verb := "disable"
	if on {
		verb = "enable"
	}
	if _, err := c.runner.Run(ctx, command.New("ufw", verb).AsRoot()); err != nil {
		return fmt.Errorf("failed to %s firewall: %w", verb, err)
	}
	c.logger.Info("firewall state changed", zap.Bool("enabled", on))
	return nil
}

// Allow opens target.
func (c *Client) Allow(ctx context.Context, target string) error {
	return c.rule(ctx, "allow", target)
}

// Deny closes target.
func (c *Client) Deny(ctx context.Context, target string) error {
	return c.rule(ctx, "deny", target)
}

// SetAllowed allows target when allowed is true and denies it otherwise.
func (c *Client) SetAllowed(ctx context.Context, target string, allowed bool) error {
	if allowed {
		return c.Allow(ctx, target)
	}
	return c.Deny(ctx, target)
}

func (c *Client) rule(ctx context.Context, verb, target string) error {
	target = strings.TrimSpace(target)
	if !ValidTarget(target) {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	if _, err := c.runner.Run(ctx, command.New("ufw", verb, target).AsRoot()); err != nil {
		return fmt.Errorf("failed to %s %s: %w", verb, target, err)
	}
	c.logger.Info("firewall rule changed", zap.String("action", verb), zap.String("target", target))
	return nil
}
