// Package packages implements the dependency install phase.
package packages

import (
	"fmt"
	"strings"

	"github.com/openclaw/clawup/internal/provisioning"
)

// BasePackages are the apt packages every OpenClaw host needs.
var BasePackages = []string{
	"git",
	"curl",
	"ca-certificates",
	"build-essential",
	"ufw",
}

// NodeSourceSetupURL is the NodeSource bootstrap script for the Node.js
// LTS release the gateway runs on.
const NodeSourceSetupURL = "https://deb.nodesource.com/setup_22.x"

// Phase installs the base packages and the Node.js runtime.
type Phase struct{}

// New creates the dependency install phase.
func New() *Phase { return &Phase{} }

// Name implements provisioning.Phase.
func (p *Phase) Name() string { return "packages" }

// Provision implements provisioning.Phase.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	ctx.Observer.Printf("[packages] installing base dependencies: %s", strings.Join(BasePackages, " "))
	args := append([]string{"install", "-y"}, BasePackages...)
	if err := ctx.Runner.Run(ctx, "apt-get", args...); err != nil {
		return fmt.Errorf("apt-get install: %w", err)
	}

	if p.nodeInstalled(ctx) {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "nodejs")
		return nil
	}

	ctx.Observer.Printf("[packages] installing Node.js from NodeSource")
	setup := fmt.Sprintf("curl -fsSL %s | bash -", NodeSourceSetupURL)
	if err := ctx.Runner.Run(ctx, "bash", "-c", setup); err != nil {
		return fmt.Errorf("nodesource setup: %w", err)
	}
	if err := ctx.Runner.Run(ctx, "apt-get", "install", "-y", "nodejs"); err != nil {
		return fmt.Errorf("apt-get install nodejs: %w", err)
	}

	provisioning.LogResourceApplied(ctx.Observer, p.Name(), "nodejs", "installed")
	return nil
}

// nodeInstalled checks for an existing node binary on the host.
func (p *Phase) nodeInstalled(ctx *provisioning.Context) bool {
	out, err := ctx.Runner.Output(ctx, "bash", "-c", "command -v node")
	return err == nil && strings.TrimSpace(out) != ""
}
