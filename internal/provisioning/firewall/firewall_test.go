package firewall

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

func TestProvisionAppliesRulesInOrder(t *testing.T) {
	fake := sysrun.NewFake()
	cfg := config.Default()
	cfg.Gateway.Port = 18789
	ctx := provisioning.NewContext(context.Background(), cfg, config.Secrets{}, fake)
	ctx.Observer = &provisioning.RecordingObserver{}

	require.NoError(t, New().Provision(ctx))

	assert.Equal(t, []string{
		"ufw default deny incoming",
		"ufw default allow outgoing",
		"ufw allow OpenSSH",
		"ufw allow 18789/tcp",
		"ufw --force enable",
	}, fake.CommandLines())
}

func TestProvisionAbortsOnRuleFailure(t *testing.T) {
	fake := sysrun.NewFake()
	fake.StubError("ufw allow OpenSSH", errors.New("ufw not installed"))
	ctx := provisioning.NewContext(context.Background(), config.Default(), config.Secrets{}, fake)
	ctx.Observer = &provisioning.RecordingObserver{}

	err := New().Provision(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, "ufw not installed")
	assert.Len(t, fake.CommandLines(), 3, "enable must not run after a failed rule")
}
