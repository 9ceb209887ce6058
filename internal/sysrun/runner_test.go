package sysrun

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerOutput(t *testing.T) {
	r := New()

	out, err := r.Output(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestExecRunnerFailureIncludesStderr(t *testing.T) {
	r := New()

	err := r.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "sh -c")
}

func TestExecRunnerRunInput(t *testing.T) {
	r := New()

	err := r.RunInput(context.Background(), "stdin-data", "sh", "-c", "grep -q stdin-data")
	assert.NoError(t, err)
}

func TestExecRunnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New().Run(ctx, "sleep", "5")
	assert.Error(t, err)
}

func TestFakeRecordsAndStubs(t *testing.T) {
	f := NewFake()
	f.StubOutput("id -u", "1001")
	f.StubError("apt-get install", errors.New("dpkg lock held"))

	ctx := context.Background()

	out, err := f.Output(ctx, "id", "-u", "openclaw")
	require.NoError(t, err)
	assert.Equal(t, "1001", out)

	err = f.Run(ctx, "apt-get", "install", "-y", "git")
	assert.ErrorContains(t, err, "dpkg lock held")

	require.NoError(t, f.RunInput(ctx, "* * * * * true", "crontab", "-"))

	lines := f.CommandLines()
	require.Len(t, lines, 3)
	assert.Equal(t, "id -u openclaw", lines[0])
	assert.Equal(t, "apt-get install -y git", lines[1])
	assert.Equal(t, "crontab -", lines[2])
	assert.Equal(t, "* * * * * true", f.Calls()[2].Input)
}

func TestFakeOverlappingPrefixesLongestWins(t *testing.T) {
	f := NewFake()
	f.StubOutput("crontab", "generic")
	f.StubOutput("crontab -l", "@reboot /usr/local/bin/clawup apply")
	f.StubError("systemctl", errors.New("generic failure"))
	f.StubError("systemctl is-active", errors.New("inactive"))

	ctx := context.Background()

	for i := 0; i < 20; i++ {
		out, err := f.Output(ctx, "crontab", "-l")
		require.NoError(t, err)
		assert.Equal(t, "@reboot /usr/local/bin/clawup apply", out)

		err = f.Run(ctx, "systemctl", "is-active", "openclaw.service")
		assert.ErrorContains(t, err, "inactive")
	}

	out, err := f.Output(ctx, "crontab", "-u", "root")
	require.NoError(t, err)
	assert.Equal(t, "generic", out)
}
