package cloudinit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawup/internal/config"
)

func TestRender(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Gateway.Port = 9000

	script, err := Render(Params{
		Config: *cfg,
		Secrets: config.Secrets{
			AnthropicKey:  "sk-ant-test",
			OpenRouterKey: "sk-or-test",
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(script, "#!/bin/bash"))
	assert.Contains(t, script, DefaultReleaseURL)
	assert.Contains(t, script, "port: 9000")
	assert.Contains(t, script, `export ANTHROPIC_API_KEY="sk-ant-test"`)
	assert.Contains(t, script, `export OPENROUTER_API_KEY="sk-or-test"`)
	assert.Contains(t, script, "clawup apply --config /etc/clawup/clawup.yaml")
}

func TestRenderCustomBinaryURL(t *testing.T) {
	t.Parallel()
	script, err := Render(Params{
		Config:    *config.Default(),
		BinaryURL: "https://example.com/clawup",
	})
	require.NoError(t, err)
	assert.Contains(t, script, `curl -fsSL -o /usr/local/bin/clawup "https://example.com/clawup"`)
	assert.NotContains(t, script, DefaultReleaseURL)
}

func TestRenderConfigHeredocTerminated(t *testing.T) {
	t.Parallel()
	script, err := Render(Params{Config: *config.Default()})
	require.NoError(t, err)

	start := strings.Index(script, "<<'CLAWUP_CONFIG'")
	require.Greater(t, start, 0)
	end := strings.Index(script[start:], "\nCLAWUP_CONFIG\n")
	assert.Greater(t, end, 0, "heredoc must be terminated on its own line")
}
