// Package firewall implements the ufw configuration phase.
package firewall

import (
	"fmt"
	"strconv"

	"github.com/openclaw/clawup/internal/provisioning"
)

// Phase applies the host firewall policy: deny inbound by default,
// allow outbound, allow SSH and the gateway port, then enable ufw.
type Phase struct{}

// New creates the firewall phase.
func New() *Phase { return &Phase{} }

// Name implements provisioning.Phase.
func (p *Phase) Name() string { return "firewall" }

// Provision implements provisioning.Phase.
//
// ufw tolerates re-applying existing rules, so the whole sequence is
// idempotent across runs.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	port := strconv.Itoa(ctx.Config.Gateway.Port)

	rules := [][]string{
		{"default", "deny", "incoming"},
		{"default", "allow", "outgoing"},
		{"allow", "OpenSSH"},
		{"allow", port + "/tcp"},
		{"--force", "enable"},
	}

	for _, rule := range rules {
		if err := ctx.Runner.Run(ctx, "ufw", rule...); err != nil {
			return fmt.Errorf("ufw %v: %w", rule, err)
		}
	}

	provisioning.LogResourceApplied(ctx.Observer, p.Name(), "ufw", fmt.Sprintf("SSH and %s/tcp open, all other inbound denied", port))
	return nil
}
