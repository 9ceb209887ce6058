package config

import (
	"fmt"
	"os"
	"strings"
)

// Secrets holds the provider API keys for a provisioning run.
//
// Both keys end up in plaintext in the rendered .env file and, when a
// reboot is scheduled, in the @reboot crontab line. That matches the
// tool's simplicity-over-secrecy contract; `clawup doctor` reports any
// crontab residue.
type Secrets struct {
	AnthropicKey  string
	OpenRouterKey string
}

// MissingSecretError reports an unset required environment variable
// together with instructions for obtaining the key.
type MissingSecretError struct {
	EnvVar  string
	Obtain  string
	Example string
}

func (e *MissingSecretError) Error() string {
	return fmt.Sprintf("%s is not set\n\nCreate a key at %s and export it before running clawup:\n\n  export %s=%s\n",
		e.EnvVar, e.Obtain, e.EnvVar, e.Example)
}

// LoadSecrets resolves both provider API keys from the environment.
// It fails with remediation instructions when either is missing, before
// any system mutation has happened.
func LoadSecrets() (Secrets, error) {
	return loadSecrets(os.Getenv)
}

func loadSecrets(getenv func(string) string) (Secrets, error) {
	s := Secrets{
		AnthropicKey:  strings.TrimSpace(getenv(AnthropicKeyEnv)),
		OpenRouterKey: strings.TrimSpace(getenv(OpenRouterKeyEnv)),
	}
	if s.AnthropicKey == "" {
		return Secrets{}, &MissingSecretError{
			EnvVar:  AnthropicKeyEnv,
			Obtain:  "https://console.anthropic.com/settings/keys",
			Example: "sk-ant-...",
		}
	}
	if s.OpenRouterKey == "" {
		return Secrets{}, &MissingSecretError{
			EnvVar:  OpenRouterKeyEnv,
			Obtain:  "https://openrouter.ai/keys",
			Example: "sk-or-...",
		}
	}
	return s, nil
}
