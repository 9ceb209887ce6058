package packages

import (
	"context"
	"errors"
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

func TestProvisionInstallsNodeWhenAbsent(t *testing.T) {
	fake := sysrun.NewFake()
	ctx := newPhaseContext(fake)

	require.NoError(t, New().Provision(ctx))

	lines := fake.CommandLines()
	require.Len(t, lines, 4)
	assert.Equal(t, "apt-get install -y git curl ca-certificates build-essential ufw", lines[0])
	assert.Equal(t, "bash -c command -v node", lines[1])
	assert.Contains(t, lines[2], "deb.nodesource.com/setup_22.x")
	assert.Equal(t, "apt-get install -y nodejs", lines[3])
}

func TestProvisionSkipsNodeWhenPresent(t *testing.T) {
	fake := sysrun.NewFake()
	fake.StubOutput("bash -c command -v node", "/usr/bin/node")
	ctx := newPhaseContext(fake)

	require.NoError(t, New().Provision(ctx))

	lines := fake.CommandLines()
	require.Len(t, lines, 2, "no NodeSource bootstrap when node exists")

	observer := ctx.Observer.(*provisioning.RecordingObserver)
	assert.Contains(t, observer.EventTypes(), provisioning.EventResourceExists)
}

func TestProvisionAbortsOnInstallFailure(t *testing.T) {
	fake := sysrun.NewFake()
	fake.StubError("apt-get install -y git", errors.New("held broken packages"))
	ctx := newPhaseContext(fake)

	err := New().Provision(ctx)
	assert.ErrorContains(t, err, "held broken packages")
	assert.Len(t, fake.CommandLines(), 1)
}
