package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawup/internal/checkpoint"
	"github.com/openclaw/clawup/internal/config"
	"github.com/openclaw/clawup/internal/sysrun"
	"github.com/openclaw/clawup/internal/util/prerequisites"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newTestCheckpoint(t *testing.T, runner sysrun.Runner) *checkpoint.Checkpoint {
	t.Helper()
	cp, err := checkpoint.New(runner)
	require.NoError(t, err)
	dir := t.TempDir()
	cp.MarkerPath = filepath.Join(dir, "marker")
	cp.SentinelPath = filepath.Join(dir, "sentinel")
	cp.Executable = "/usr/local/bin/clawup"
	return cp
}

func TestDiagnose_UnprovisionedHost(t *testing.T) {
	saveAndRestoreFactories(t)

	checkHostPrereqs = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{
				{Tool: prerequisites.Tool{Name: "apt-get", Required: true}, Found: true, Path: "/usr/bin/apt-get"},
				{Tool: prerequisites.Tool{Name: "ufw", Required: false}, Found: false},
			},
		}
	}

	runner := sysrun.NewFake()
	runner.StubError("id -u", errors.New("no such user"))
	runner.StubOutput("systemctl is-active", "inactive")

	cfg := config.Default()
	cfg.Install.Dir = filepath.Join(t.TempDir(), "missing")

	status := diagnose(context.Background(), cfg, runner, newTestCheckpoint(t, runner))

	assert.False(t, status.Provisioned)
	assert.False(t, status.Account.Exists)
	assert.False(t, status.Install.DirExists)
	assert.False(t, status.Install.EnvPresent)
	assert.False(t, status.Service.Active)
	assert.False(t, status.Reboot.MarkerPresent)

	require.Len(t, status.Tools, 2)
	assert.True(t, status.Tools[0].Found)
	assert.Equal(t, "/usr/bin/apt-get", status.Tools[0].Path)
	assert.False(t, status.Tools[1].Found)
}

func TestDiagnose_ProvisionedHost(t *testing.T) {
	saveAndRestoreFactories(t)

	checkHostPrereqs = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{}
	}

	runner := sysrun.NewFake()
	runner.StubOutput("id -u", "998")
	runner.StubOutput("systemctl is-active", "active\n")

	installDir := t.TempDir()
	writeTestFile(t, filepath.Join(installDir, ".env"), "PORT=18789\n")

	cfg := config.Default()
	cfg.Install.Dir = installDir

	status := diagnose(context.Background(), cfg, runner, newTestCheckpoint(t, runner))

	assert.True(t, status.Account.Exists)
	assert.True(t, status.Install.DirExists)
	assert.True(t, status.Install.EnvPresent)
	assert.True(t, status.Service.Active)
	assert.False(t, status.Reboot.MarkerPresent)
	assert.False(t, status.Reboot.CronResidue)
}

func TestDiagnose_ReportsCronResidue(t *testing.T) {
	saveAndRestoreFactories(t)

	checkHostPrereqs = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{}
	}

	runner := sysrun.NewFake()
	runner.StubOutput("crontab -l", "@reboot /usr/local/bin/clawup apply\n")

	status := diagnose(context.Background(), config.Default(), runner, newTestCheckpoint(t, runner))

	assert.True(t, status.Reboot.CronResidue)
	assert.False(t, status.Provisioned)
}
