// Package service implements the service registration phase: render
// the systemd unit for the OpenClaw gateway, reload systemd, and
// enable and start the unit.
package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/coreos/go-systemd/v22/unit"

	"github.com/openclaw/clawup/internal/provisioning"
)

// UnitName is the systemd unit the gateway runs as.
const UnitName = "openclaw.service"

// Phase registers the gateway with systemd.
type Phase struct {
	// UnitDir is where the unit file is written.
	UnitDir string
}

// New creates the service phase targeting /etc/systemd/system.
func New() *Phase {
	return &Phase{UnitDir: "/etc/systemd/system"}
}

// Name implements provisioning.Phase.
func (p *Phase) Name() string { return "service" }

// Provision implements provisioning.Phase.
//
// The unit file is fully regenerated on every run; there is no merge
// with a previously installed unit.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	content, err := RenderUnit(ctx)
	if err != nil {
		return fmt.Errorf("render unit: %w", err)
	}

	path := filepath.Join(p.UnitDir, UnitName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	ctx.State.UnitFilePath = path

	if err := ctx.Runner.Run(ctx, "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("systemctl daemon-reload: %w", err)
	}
	if err := ctx.Runner.Run(ctx, "systemctl", "enable", "--now", UnitName); err != nil {
		return fmt.Errorf("systemctl enable: %w", err)
	}

	provisioning.LogResourceApplied(ctx.Observer, p.Name(), UnitName, "enabled and started")
	return nil
}

// RenderUnit serializes the gateway unit. Option order is fixed so
// repeated runs with identical inputs produce byte-identical files.
func RenderUnit(ctx *provisioning.Context) ([]byte, error) {
	install := ctx.Config.Install
	opts := []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", "OpenClaw gateway"),
		unit.NewUnitOption("Unit", "After", "network-online.target"),
		unit.NewUnitOption("Unit", "Wants", "network-online.target"),

		unit.NewUnitOption("Service", "Type", "simple"),
		unit.NewUnitOption("Service", "User", install.ServiceUser),
		unit.NewUnitOption("Service", "WorkingDirectory", install.Dir),
		unit.NewUnitOption("Service", "EnvironmentFile", filepath.Join(install.Dir, ".env")),
		unit.NewUnitOption("Service", "ExecStart", "/usr/bin/npm start"),
		unit.NewUnitOption("Service", "Restart", "on-failure"),
		unit.NewUnitOption("Service", "RestartSec", "5"),

		unit.NewUnitOption("Install", "WantedBy", "multi-user.target"),
	}

	content, err := io.ReadAll(unit.Serialize(opts))
	if err != nil {
		return nil, err
	}
	return content, nil
}
