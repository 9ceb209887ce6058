// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/openclaw/clawup/internal/checkpoint"
	"github.com/openclaw/clawup/internal/config"
	"github.com/openclaw/clawup/internal/provisioning"
	"github.com/openclaw/clawup/internal/provisioning/account"
	"github.com/openclaw/clawup/internal/provisioning/app"
	"github.com/openclaw/clawup/internal/provisioning/firewall"
	"github.com/openclaw/clawup/internal/provisioning/packages"
	"github.com/openclaw/clawup/internal/provisioning/service"
	"github.com/openclaw/clawup/internal/provisioning/system"
	"github.com/openclaw/clawup/internal/sysrun"
	"github.com/openclaw/clawup/internal/ui/tui"
	"github.com/openclaw/clawup/internal/util/prerequisites"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newRunner creates the command runner used for all host mutation.
	newRunner = func() sysrun.Runner {
		return &sysrun.ExecRunner{}
	}

	// newCheckpoint creates the reboot-resume checkpoint.
	newCheckpoint = func(runner sysrun.Runner) (*checkpoint.Checkpoint, error) {
		return checkpoint.New(runner)
	}

	// loadApplyConfig loads the provisioning config (for testing injection).
	loadApplyConfig = config.LoadOrDefault

	// loadSecrets resolves the provider API keys from the environment.
	loadSecrets = config.LoadSecrets

	// checkHostPrereqs runs the host tool checks.
	checkHostPrereqs = prerequisites.CheckHost

	// runApplyTUI wraps a run with the interactive dashboard.
	runApplyTUI = tui.RunApplyTUI

	// confirmApply asks for confirmation before mutating the host.
	confirmApply = promptConfirmApply

	// buildApplyPhases returns the provisioning phases in execution order.
	buildApplyPhases = buildPhases
)

// Apply provisions the host clawup runs on into an OpenClaw gateway.
//
// The workflow:
//  1. Loads configuration and resolves both provider API keys, failing
//     before any host mutation when either is missing
//  2. Consumes a pending reboot checkpoint, turning this invocation
//     into a resume when the marker file exists
//  3. Runs the six provisioning phases in order
//  4. On a pending OS reboot, schedules the resume crontab entry,
//     writes the marker and reboots the host
func Apply(ctx context.Context, configPath string, assumeYes, plain bool) error {
	cfg, loadedFrom, err := loadApplyConfig(configPath)
	if err != nil {
		return err
	}

	secrets, err := loadSecrets()
	if err != nil {
		return err
	}

	if results := checkHostPrereqs(); results.HasErrors() {
		return results.Error()
	}

	runner := newRunner()
	cp, err := newCheckpoint(runner)
	if err != nil {
		return err
	}

	resumed, err := cp.Consume(ctx)
	if err != nil {
		return err
	}
	if resumed {
		log.Printf("Resuming provisioning after reboot")
	}

	if !resumed && !assumeYes && isInteractiveTTY() {
		ok, err := confirmApply(cfg)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("aborted")
		}
	}

	phases := buildApplyPhases()
	run := func(obs provisioning.Observer) error {
		pCtx := provisioning.NewContext(ctx, cfg, secrets, runner)
		pCtx.Observer = obs
		pCtx.State.Resumed = resumed
		return provisioning.RunPhases(pCtx, phases)
	}

	var runErr error
	if !plain && isInteractiveTTY() {
		hostname, _ := os.Hostname()
		runErr = runApplyTUI(hostname, resumed, run)
	} else {
		runErr = run(provisioning.NewConsoleObserver())
	}

	if errors.Is(runErr, provisioning.ErrRebootRequired) {
		log.Printf("Reboot required, scheduling resume and rebooting")
		if err := cp.Schedule(ctx, secrets, loadedFrom); err != nil {
			return err
		}
		return cp.Reboot(ctx)
	}
	if runErr != nil {
		return runErr
	}

	printApplySuccess(cfg)
	return nil
}

// buildPhases returns the provisioning phases in execution order.
func buildPhases() []provisioning.Phase {
	return []provisioning.Phase{
		system.New(),
		packages.New(),
		account.New(),
		firewall.New(),
		app.New(),
		service.New(),
	}
}

// promptConfirmApply shows the pre-flight confirmation.
func promptConfirmApply(cfg *config.Config) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title("Provision this host?").
		Description(fmt.Sprintf(
			"Installs OpenClaw to %s as user %s, configures ufw and registers %s. The host may reboot.",
			cfg.Install.Dir, cfg.Install.ServiceUser, service.UnitName)).
		Affirmative("Provision").
		Negative("Abort").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation canceled: %w", err)
	}
	return ok, nil
}

// printApplySuccess prints the final summary with next steps.
func printApplySuccess(cfg *config.Config) {
	fmt.Println()
	fmt.Println("OpenClaw is up!")
	fmt.Println()
	fmt.Printf("  Gateway:  http://localhost:%d\n", cfg.Gateway.Port)
	fmt.Printf("  Install:  %s\n", cfg.Install.Dir)
	fmt.Printf("  Service:  %s\n", service.UnitName)
	fmt.Println()
	fmt.Println("Useful commands:")
	fmt.Printf("  systemctl status %s\n", service.UnitName)
	fmt.Printf("  journalctl -u %s -f\n", service.UnitName)
	fmt.Println()
}
