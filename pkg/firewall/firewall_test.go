package firewall

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravenlinux/raven-settings/pkg/command/commandtest"
)

const statusOutput = `Status: active

To                         Action      From
--                         ------      ----
22/tcp                     ALLOW       Anywhere
OpenSSH                    ALLOW       Anywhere
8080                       DENY        192.168.1.0/24
22/tcp (v6)                ALLOW       Anywhere (v6)
5900                       REJECT IN   Anywhere
`

func TestParseStatus(t *testing.T) {
	st := ParseStatus(statusOutput)

	assert.True(t, st.Active)
	assert.Equal(t, []Rule{
		{To: "22/tcp", Action: "ALLOW", From: "Anywhere"},
		{To: "OpenSSH", Action: "ALLOW", From: "Anywhere"},
		{To: "8080", Action: "DENY", From: "192.168.1.0/24"},
		{To: "22/tcp (v6)", Action: "ALLOW", From: "Anywhere (v6)"},
		{To: "5900", Action: "REJECT IN", From: "Anywhere"},
	}, st.Rules)
	assert.True(t, st.Allowed("22/tcp"))
	assert.True(t, st.Allowed("openssh"))
	assert.False(t, st.Allowed("8080"))
}

func TestParseStatusInactive(t *testing.T) {
	st := ParseStatus("Status: inactive\n")
	assert.False(t, st.Active)
	assert.Empty(t, st.Rules)
}

func TestValidTarget(t *testing.T) {
	for _, ok := range []string{"ssh", "smtp", "vnc", "8080", "8080/tcp", "6000:6007/udp", "OpenSSH"} {
		assert.True(t, ValidTarget(ok), ok)
	}
	for _, bad := range []string{"", "--force", "22/icmp", "a b", "123456", "ssh;reboot"} {
		assert.False(t, ValidTarget(bad), bad)
	}
}

func TestClientCommandsArePrivileged(t *testing.T) {
	runner := commandtest.New().
		On("ufw enable", "Firewall is active and enabled on system startup\n").
		On("ufw allow ssh", "Rule added\n").
		On("ufw deny 8080/tcp", "Rule added\n").
		On("ufw status", statusOutput)
	c := NewClient(runner, nil)
	ctx := context.Background()

	require.NoError(t, c.SetEnabled(ctx, true))
	require.NoError(t, c.SetAllowed(ctx, "ssh", true))
	require.NoError(t, c.Deny(ctx, " 8080/tcp "))
	st, err := c.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.Active)

	for _, cmd := range runner.Commands() {
		assert.True(t, cmd.Privileged, cmd.String())
	}
}

func TestClientRejectsBadTarget(t *testing.T) {
	runner := commandtest.New()
	c := NewClient(runner, nil)

	err := c.Allow(context.Background(), "--dry-run")
	assert.ErrorIs(t, err, ErrInvalidTarget)
	assert.Empty(t, runner.Calls())
}

func TestClientDisableFailure(t *testing.T) {
	runner := commandtest.New().Fail("ufw disable", 126, "Request dismissed")
	c := NewClient(runner, nil)

	err := c.SetEnabled(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to disable firewall")
}
