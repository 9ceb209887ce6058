// Package system implements the system update phase: refresh the
// package index, apply the full upgrade, and detect whether the
// upgrade left the host needing a reboot.
package system

import (
	"fmt"
	"os"

	"github.com/openclaw/clawup/internal/checkpoint"
	"github.com/openclaw/clawup/internal/provisioning"
)

// Phase performs the apt update/upgrade pass.
type Phase struct {
	// SentinelPath is consulted after the upgrade; its existence means
	// the kernel or a core library needs a reboot to take effect.
	SentinelPath string
}

// New creates the system update phase with the standard sentinel path.
func New() *Phase {
	return &Phase{SentinelPath: checkpoint.DefaultSentinelPath}
}

// Name implements provisioning.Phase.
func (p *Phase) Name() string { return "system" }

// Provision implements provisioning.Phase.
//
// On a resumed run the phase is skipped entirely: the update already
// ran before the reboot, and re-running it could re-detect the same
// pending-reboot condition and schedule a second, unwanted cycle.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	if ctx.State.Resumed {
		ctx.Observer.Event(provisioning.Event{
			Type:    provisioning.EventPhaseSkipped,
			Phase:   p.Name(),
			Message: "resumed after reboot, update already applied",
		})
		return nil
	}

	ctx.Observer.Printf("[system] refreshing package index")
	if err := ctx.Runner.Run(ctx, "apt-get", "update"); err != nil {
		return fmt.Errorf("apt-get update: %w", err)
	}

	ctx.Observer.Printf("[system] applying full upgrade")
	if err := ctx.Runner.Run(ctx, "apt-get", "dist-upgrade", "-y"); err != nil {
		return fmt.Errorf("apt-get dist-upgrade: %w", err)
	}

	if _, err := os.Stat(p.SentinelPath); err == nil {
		return fmt.Errorf("%s present after upgrade: %w", p.SentinelPath, provisioning.ErrRebootRequired)
	}

	return nil
}
