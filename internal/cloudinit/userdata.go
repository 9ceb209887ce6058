// Package cloudinit renders the user-data script that a freshly created
// server runs on first boot. The script fetches the clawup binary,
// writes the provisioning config, and starts an unattended apply run.
package cloudinit

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/openclaw/clawup/internal/config"
)

// DefaultReleaseURL is where first-boot provisioning fetches the binary
// when the caller does not supply one.
const DefaultReleaseURL = "https://github.com/openclaw/clawup/releases/latest/download/clawup-linux-amd64"

// Params holds the substitution values for the user-data template.
type Params struct {
	// Config is serialized to the remote config file verbatim.
	Config config.Config
	// Secrets are exported to the apply run. They end up in the
	// rendered script, which Hetzner stores server side.
	Secrets config.Secrets
	// BinaryURL overrides where the clawup binary is downloaded from.
	BinaryURL string
}

// Render produces the cloud-init user data for an unattended apply run.
func Render(p Params) (string, error) {
	if p.BinaryURL == "" {
		p.BinaryURL = DefaultReleaseURL
	}

	configYAML, err := yaml.Marshal(p.Config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpl, err := template.New("userdata").Parse(userDataTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse user data template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]string{
		"BinaryURL":        p.BinaryURL,
		"ConfigYAML":       string(configYAML),
		"AnthropicKeyEnv":  config.AnthropicKeyEnv,
		"AnthropicKey":     p.Secrets.AnthropicKey,
		"OpenRouterKeyEnv": config.OpenRouterKeyEnv,
		"OpenRouterKey":    p.Secrets.OpenRouterKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render user data template: %w", err)
	}
	return buf.String(), nil
}

const userDataTemplate = `#!/bin/bash
set -euo pipefail

log() { echo "[clawup-firstboot] $*" >&2; }

log "fetching clawup"
curl -fsSL -o /usr/local/bin/clawup "{{ .BinaryURL }}"
chmod 0755 /usr/local/bin/clawup

log "writing provisioning config"
mkdir -p /etc/clawup
cat > /etc/clawup/clawup.yaml <<'CLAWUP_CONFIG'
{{ .ConfigYAML }}CLAWUP_CONFIG
chmod 0600 /etc/clawup/clawup.yaml

log "starting apply"
export {{ .AnthropicKeyEnv }}="{{ .AnthropicKey }}"
export {{ .OpenRouterKeyEnv }}="{{ .OpenRouterKey }}"
/usr/local/bin/clawup apply --config /etc/clawup/clawup.yaml --yes >> /var/log/clawup-firstboot.log 2>&1
log "apply finished"
`
