package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawup/internal/config"
	"github.com/openclaw/clawup/internal/provisioning"
	"github.com/openclaw/clawup/internal/sysrun"
)

func newPhaseContext(fake *sysrun.Fake) *provisioning.Context {
	ctx := provisioning.NewContext(context.Background(), config.Default(), config.Secrets{}, fake)
	ctx.Observer = &provisioning.RecordingObserver{}
	return ctx
}

func TestProvisionRunsUpdateAndUpgrade(t *testing.T) {
	fake := sysrun.NewFake()
	ctx := newPhaseContext(fake)
	phase := &Phase{SentinelPath: filepath.Join(t.TempDir(), "reboot-required")}

	require.NoError(t, phase.Provision(ctx))

	assert.Equal(t, []string{
		"apt-get update",
		"apt-get dist-upgrade -y",
	}, fake.CommandLines())
}

func TestProvisionReportsRebootRequired(t *testing.T) {
	fake := sysrun.NewFake()
	ctx := newPhaseContext(fake)

	sentinel := filepath.Join(t.TempDir(), "reboot-required")
	require.NoError(t, os.WriteFile(sentinel, nil, 0o644))
	phase := &Phase{SentinelPath: sentinel}

	err := phase.Provision(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, provisioning.ErrRebootRequired)
}

func TestProvisionSkippedOnResume(t *testing.T) {
	fake := sysrun.NewFake()
	ctx := newPhaseContext(fake)
	ctx.State.Resumed = true

	sentinel := filepath.Join(t.TempDir(), "reboot-required")
	require.NoError(t, os.WriteFile(sentinel, nil, 0o644))
	phase := &Phase{SentinelPath: sentinel}

	require.NoError(t, phase.Provision(ctx), "sentinel must not re-trigger a reboot on resume")
	assert.Empty(t, fake.CommandLines(), "update phase is skipped entirely on resume")

	observer := ctx.Observer.(*provisioning.RecordingObserver)
	assert.Contains(t, observer.EventTypes(), provisioning.EventPhaseSkipped)
}

func TestProvisionAbortsOnUpdateFailure(t *testing.T) {
	fake := sysrun.NewFake()
	fake.StubError("apt-get update", errors.New("mirror unreachable"))
	ctx := newPhaseContext(fake)
	phase := &Phase{SentinelPath: filepath.Join(t.TempDir(), "reboot-required")}

	err := phase.Provision(ctx)
	assert.ErrorContains(t, err, "mirror unreachable")
	assert.Len(t, fake.CommandLines(), 1, "upgrade must not run after a failed update")
}
