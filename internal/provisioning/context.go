package provisioning

import (
	"context"

	"github.com/openclaw/clawup/internal/config"
	"github.com/openclaw/clawup/internal/sysrun"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Resumed is true when this invocation consumed a reboot
	// checkpoint. The system update phase is skipped entirely on
	// resume so the same pending-reboot condition cannot re-trigger.
	Resumed bool

	// Account results
	AccountCreated bool   // false when the account already existed
	AccountHome    string // service account home directory

	// Application results
	EnvFilePath  string // rendered .env location
	UnitFilePath string // rendered systemd unit location
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	Secrets  config.Secrets
	Runner   sysrun.Runner
	Observer Observer
	State    *State
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, secrets config.Secrets, runner sysrun.Runner) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Secrets:  secrets,
		Runner:   runner,
		Observer: NewConsoleObserver(),
		State:    &State{},
	}
}
