// Package account implements the service account phase: create the
// system account OpenClaw runs as and carry over root's SSH access.
package account

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/openclaw/clawup/internal/provisioning"
)

// Phase creates the service account and copies authorized keys.
type Phase struct {
	// AuthorizedKeysSource is the root authorized_keys file copied to
	// the service account. A missing source is not an error.
	AuthorizedKeysSource string

	// HomeRoot is where user home directories live.
	HomeRoot string
}

// New creates the account phase with standard paths.
func New() *Phase {
	return &Phase{
		AuthorizedKeysSource: "/root/.ssh/authorized_keys",
		HomeRoot:             "/home",
	}
}

// Name implements provisioning.Phase.
func (p *Phase) Name() string { return "account" }

// Provision implements provisioning.Phase.
//
// The account is created at most once: an existing account is detected
// and left untouched, so repeated runs perform no redundant creation.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	user := ctx.Config.Install.ServiceUser
	home := filepath.Join(p.HomeRoot, user)
	ctx.State.AccountHome = home

	if _, err := ctx.Runner.Output(ctx, "id", "-u", user); err == nil {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), user)
	} else {
		if err := ctx.Runner.Run(ctx, "useradd", "--system", "--create-home", "--home-dir", home, "--shell", "/bin/bash", user); err != nil {
			return fmt.Errorf("useradd %s: %w", user, err)
		}
		ctx.State.AccountCreated = true
		provisioning.LogResourceApplied(ctx.Observer, p.Name(), user, "account created")
	}

	return p.copyAuthorizedKeys(ctx, user, home)
}

// copyAuthorizedKeys mirrors root's authorized_keys into the service
// account so the operator keeps SSH access under the new account.
func (p *Phase) copyAuthorizedKeys(ctx *provisioning.Context, user, home string) error {
	keys, err := os.ReadFile(p.AuthorizedKeysSource)
	if err != nil {
		if os.IsNotExist(err) {
			ctx.Observer.Printf("[account] no authorized_keys at %s, skipping SSH key copy", p.AuthorizedKeysSource)
			return nil
		}
		return fmt.Errorf("read %s: %w", p.AuthorizedKeysSource, err)
	}

	sshDir := filepath.Join(home, ".ssh")
	if err := os.MkdirAll(sshDir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", sshDir, err)
	}
	target := filepath.Join(sshDir, "authorized_keys")
	if err := os.WriteFile(target, keys, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := ctx.Runner.Run(ctx, "chown", "-R", user+":"+user, sshDir); err != nil {
		return fmt.Errorf("chown %s: %w", sshDir, err)
	}

	provisioning.LogResourceApplied(ctx.Observer, p.Name(), target, "authorized_keys copied")
	return nil
}
