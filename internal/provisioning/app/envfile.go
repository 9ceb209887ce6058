package app

import (
	"fmt"
	"strings"

	"github.com/openclaw/clawup/internal/config"
)

// RenderEnv produces the gateway's .env content. The key order is
// fixed so repeated runs with identical inputs produce byte-identical
// files.
//
// Both API keys are written in plaintext; the file is created with
// mode 0600 and owned by the service account.
func RenderEnv(cfg *config.Config, secrets config.Secrets) string {
	var b strings.Builder
	pairs := []struct {
		key   string
		value string
	}{
		{"PORT", fmt.Sprintf("%d", cfg.Gateway.Port)},
		{"PRIMARY_PROVIDER", cfg.Provider.Primary},
		{"PRIMARY_MODEL", cfg.Provider.PrimaryModel},
		{"FALLBACK_PROVIDER", cfg.Provider.Fallback},
		{"FALLBACK_MODEL", cfg.Provider.FallbackModel},
		{config.AnthropicKeyEnv, secrets.AnthropicKey},
		{config.OpenRouterKeyEnv, secrets.OpenRouterKey},
		{"LOG_LEVEL", cfg.Gateway.LogLevel},
	}
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s=%s\n", p.key, p.value)
	}
	return b.String()
}
