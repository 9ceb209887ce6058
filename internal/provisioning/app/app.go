// Package app implements the application install phase: clone the
// OpenClaw source tree, install its dependencies, and render the
// environment file the gateway reads at startup.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/openclaw/clawup/internal/provisioning"
)

// Phase installs the OpenClaw application.
type Phase struct{}

// New creates the application install phase.
func New() *Phase { return &Phase{} }

// Name implements provisioning.Phase.
func (p *Phase) Name() string { return "app" }

// Provision implements provisioning.Phase.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	if err := p.syncRepo(ctx); err != nil {
		return err
	}
	if err := p.installDependencies(ctx); err != nil {
		return err
	}
	return p.renderEnvFile(ctx)
}

// syncRepo clones the repository on first run and fast-forwards the
// configured branch on later runs.
func (p *Phase) syncRepo(ctx *provisioning.Context) error {
	install := ctx.Config.Install

	if _, err := os.Stat(filepath.Join(install.Dir, ".git")); err == nil {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), install.Dir)
		if err := ctx.Runner.Run(ctx, "git", "-C", install.Dir, "fetch", "origin", install.Branch); err != nil {
			return fmt.Errorf("git fetch: %w", err)
		}
		if err := ctx.Runner.Run(ctx, "git", "-C", install.Dir, "checkout", install.Branch); err != nil {
			return fmt.Errorf("git checkout: %w", err)
		}
		if err := ctx.Runner.Run(ctx, "git", "-C", install.Dir, "pull", "--ff-only", "origin", install.Branch); err != nil {
			return fmt.Errorf("git pull: %w", err)
		}
		return nil
	}

	ctx.Observer.Printf("[app] cloning %s (%s) into %s", install.Repo, install.Branch, install.Dir)
	if err := ctx.Runner.Run(ctx, "git", "clone", "--branch", install.Branch, install.Repo, install.Dir); err != nil {
		return fmt.Errorf("git clone: %w", err)
	}
	provisioning.LogResourceApplied(ctx.Observer, p.Name(), install.Dir, "repository cloned")
	return nil
}

// installDependencies runs npm install as the service user.
func (p *Phase) installDependencies(ctx *provisioning.Context) error {
	install := ctx.Config.Install

	if err := ctx.Runner.Run(ctx, "chown", "-R", install.ServiceUser+":"+install.ServiceUser, install.Dir); err != nil {
		return fmt.Errorf("chown %s: %w", install.Dir, err)
	}
	if err := ctx.Runner.Run(ctx, "sudo", "-u", install.ServiceUser, "npm", "--prefix", install.Dir, "install", "--omit=dev"); err != nil {
		return fmt.Errorf("npm install: %w", err)
	}
	return nil
}

// renderEnvFile regenerates the .env file from scratch on every run.
// Output is byte-stable for identical inputs: fixed key order, no
// timestamps, no merging with prior content.
func (p *Phase) renderEnvFile(ctx *provisioning.Context) error {
	path := filepath.Join(ctx.Config.Install.Dir, ".env")

	content := RenderEnv(ctx.Config, ctx.Secrets)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	user := ctx.Config.Install.ServiceUser
	if err := ctx.Runner.Run(ctx, "chown", user+":"+user, path); err != nil {
		return fmt.Errorf("chown %s: %w", path, err)
	}

	ctx.State.EnvFilePath = path
	provisioning.LogResourceApplied(ctx.Observer, p.Name(), path, "environment file rendered")
	return nil
}
