package app

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

func newPhaseContext(t *testing.T, fake *sysrun.Fake) *provisioning.Context {
	t.Helper()
	cfg := config.Default()
	cfg.Install.Dir = filepath.Join(t.TempDir(), "openclaw")
	secrets := config.Secrets{AnthropicKey: "sk-ant-x", OpenRouterKey: "sk-or-y"}
	ctx := provisioning.NewContext(context.Background(), cfg, secrets, fake)
	ctx.Observer = &provisioning.RecordingObserver{}
	return ctx
}

func TestProvisionFreshClone(t *testing.T) {
	fake := sysrun.NewFake()
	ctx := newPhaseContext(t, fake)
	require.NoError(t, os.MkdirAll(ctx.Config.Install.Dir, 0o755))

	require.NoError(t, New().Provision(ctx))

	lines := fake.CommandLines()
	require.Len(t, lines, 4)
	assert.Equal(t, "git clone --branch main "+config.DefaultRepoURL+" "+ctx.Config.Install.Dir, lines[0])
	assert.Contains(t, lines[1], "chown -R openclaw:openclaw")
	assert.Equal(t, "sudo -u openclaw npm --prefix "+ctx.Config.Install.Dir+" install --omit=dev", lines[2])
	assert.Contains(t, lines[3], "chown openclaw:openclaw")

	assert.Equal(t, filepath.Join(ctx.Config.Install.Dir, ".env"), ctx.State.EnvFilePath)
}

func TestProvisionExistingCheckoutUpdates(t *testing.T) {
	fake := sysrun.NewFake()
	ctx := newPhaseContext(t, fake)
	require.NoError(t, os.MkdirAll(filepath.Join(ctx.Config.Install.Dir, ".git"), 0o755))

	require.NoError(t, New().Provision(ctx))

	lines := fake.CommandLines()
	assert.Equal(t, "git -C "+ctx.Config.Install.Dir+" fetch origin main", lines[0])
	assert.Equal(t, "git -C "+ctx.Config.Install.Dir+" checkout main", lines[1])
	assert.Equal(t, "git -C "+ctx.Config.Install.Dir+" pull --ff-only origin main", lines[2])
	for _, line := range lines {
		assert.NotContains(t, line, "git clone")
	}
}

func TestProvisionWritesEnvFile(t *testing.T) {
	fake := sysrun.NewFake()
	ctx := newPhaseContext(t, fake)
	require.NoError(t, os.MkdirAll(ctx.Config.Install.Dir, 0o755))

	require.NoError(t, New().Provision(ctx))

	data, err := os.ReadFile(ctx.State.EnvFilePath)
	require.NoError(t, err)
	assert.Equal(t, "PORT=18789\n"+
		"PRIMARY_PROVIDER=anthropic\n"+
		"PRIMARY_MODEL=claude-sonnet-4-5\n"+
		"FALLBACK_PROVIDER=openrouter\n"+
		"FALLBACK_MODEL=deepseek/deepseek-chat\n"+
		"ANTHROPIC_API_KEY=sk-ant-x\n"+
		"OPENROUTER_API_KEY=sk-or-y\n"+
		"LOG_LEVEL=info\n", string(data))

	info, err := os.Stat(ctx.State.EnvFilePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestProvisionIsByteIdenticalAcrossRuns(t *testing.T) {
	fake := sysrun.NewFake()
	ctx := newPhaseContext(t, fake)
	require.NoError(t, os.MkdirAll(ctx.Config.Install.Dir, 0o755))

	require.NoError(t, New().Provision(ctx))
	first, err := os.ReadFile(ctx.State.EnvFilePath)
	require.NoError(t, err)

	// Second run: same inputs, regenerated from scratch.
	require.NoError(t, os.MkdirAll(filepath.Join(ctx.Config.Install.Dir, ".git"), 0o755))
	require.NoError(t, New().Provision(ctx))
	second, err := os.ReadFile(ctx.State.EnvFilePath)
	require.NoError(t, err)

	assert.Equal(t, first, second, "env file must be byte-identical across runs")
}

func TestProvisionAbortsOnCloneFailure(t *testing.T) {
	fake := sysrun.NewFake()
	fake.StubError("git clone", errors.New("could not resolve host"))
	ctx := newPhaseContext(t, fake)

	err := New().Provision(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, "could not resolve host")
	assert.Empty(t, ctx.State.EnvFilePath, "no env file after a failed clone")
}
