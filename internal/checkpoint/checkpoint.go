// Package checkpoint implements the reboot-resume protocol.
//
// A provisioning run is FRESH unless the marker file exists, in which
// case it is a RESUME of a PENDING_REBOOT cycle. Before rebooting, the
// run persists a marker file and a self-referencing @reboot crontab
// line carrying both provider API keys, so the next boot re-invokes
// clawup with the same inputs. The resumed run consumes both before any
// phase executes, guaranteeing the scheduled task fires exactly once
// and a second reboot cycle cannot be scheduled.
package checkpoint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openclaw/clawup/internal/config"
	"github.com/openclaw/clawup/internal/sysrun"
)

const (
	// DefaultMarkerPath flags a reboot already triggered by this
	// provisioning attempt. Existence is the whole signal.
	DefaultMarkerPath = "/tmp/.openclaw-setup-rebooted"

	// DefaultSentinelPath is written by Ubuntu packages when an
	// installed update needs a reboot to take effect.
	DefaultSentinelPath = "/var/run/reboot-required"
)

// Checkpoint persists and consumes the state needed to survive an OS
// reboot in the middle of a provisioning run.
type Checkpoint struct {
	// MarkerPath is the marker file recording a pending reboot cycle.
	MarkerPath string

	// SentinelPath is the OS reboot-required sentinel.
	SentinelPath string

	// Executable is the absolute path cron re-invokes after boot. It is
	// also the match key when removing stale crontab entries.
	Executable string

	runner sysrun.Runner
}

// New returns a Checkpoint for the current executable with default paths.
func New(runner sysrun.Runner) (*Checkpoint, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return &Checkpoint{
		MarkerPath:   DefaultMarkerPath,
		SentinelPath: DefaultSentinelPath,
		Executable:   exe,
		runner:       runner,
	}, nil
}

// RebootRequired reports whether the OS asks for a reboot.
func (c *Checkpoint) RebootRequired() bool {
	_, err := os.Stat(c.SentinelPath)
	return err == nil
}

// Pending reports whether a reboot cycle is already in flight, i.e.
// this invocation is a resume.
func (c *Checkpoint) Pending() bool {
	_, err := os.Stat(c.MarkerPath)
	return err == nil
}

// Schedule persists the resumption state and registers the @reboot
// task. Any existing crontab entry referencing the executable is
// removed first, so at most one matching entry exists at a time.
//
// configPath is the config file the current run loaded, or "" when it
// ran on built-in defaults. It is embedded as an absolute path because
// cron starts the resume from $HOME, not from this run's working
// directory.
//
// The secrets are embedded in the crontab line as environment
// assignments. That is plaintext on disk, matching the tool's
// documented simplicity-over-secrecy tradeoff.
func (c *Checkpoint) Schedule(ctx context.Context, secrets config.Secrets, configPath string) error {
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
		configPath = abs
	}

	if err := os.WriteFile(c.MarkerPath, []byte("1\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write reboot marker: %w", err)
	}

	entry := c.cronEntry(secrets, configPath)
	if err := c.rewriteCrontab(ctx, &entry); err != nil {
		return fmt.Errorf("failed to register @reboot task: %w", err)
	}
	return nil
}

// Consume clears the resumption state at the start of a resumed run.
// It returns true when this invocation resumed a pending cycle. The
// marker is deleted and every crontab line referencing the executable
// is removed before the caller proceeds.
func (c *Checkpoint) Consume(ctx context.Context) (bool, error) {
	if !c.Pending() {
		return false, nil
	}
	if err := os.Remove(c.MarkerPath); err != nil {
		return false, fmt.Errorf("failed to remove reboot marker: %w", err)
	}
	if err := c.rewriteCrontab(ctx, nil); err != nil {
		return false, fmt.Errorf("failed to remove @reboot task: %w", err)
	}
	return true, nil
}

// Reboot restarts the machine. It does not return on success.
func (c *Checkpoint) Reboot(ctx context.Context) error {
	if err := c.runner.Run(ctx, "systemctl", "reboot"); err != nil {
		return fmt.Errorf("failed to reboot: %w", err)
	}
	return nil
}

// HasCronEntry reports whether the crontab still carries a line
// referencing the executable. Used by doctor to surface residue.
func (c *Checkpoint) HasCronEntry(ctx context.Context) bool {
	out, err := c.runner.Output(ctx, "crontab", "-l")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, c.Executable) {
			return true
		}
	}
	return false
}

// cronEntry renders the single @reboot line.
func (c *Checkpoint) cronEntry(secrets config.Secrets, configPath string) string {
	cmd := c.Executable + " apply"
	if configPath != "" {
		cmd += " --config " + configPath
	}
	return fmt.Sprintf("@reboot %s=%q %s=%q %s >> /var/log/clawup-resume.log 2>&1",
		config.AnthropicKeyEnv, secrets.AnthropicKey,
		config.OpenRouterKeyEnv, secrets.OpenRouterKey,
		cmd)
}

// rewriteCrontab replaces the crontab with the current one minus any
// line referencing the executable, plus entry when non-nil. A missing
// crontab ("no crontab for root") is treated as empty.
func (c *Checkpoint) rewriteCrontab(ctx context.Context, entry *string) error {
	existing, err := c.runner.Output(ctx, "crontab", "-l")
	if err != nil {
		existing = ""
	}

	var kept []string
	for _, line := range strings.Split(existing, "\n") {
		if strings.TrimSpace(line) == "" || strings.Contains(line, c.Executable) {
			continue
		}
		kept = append(kept, line)
	}
	if entry != nil {
		kept = append(kept, *entry)
	}

	content := strings.Join(kept, "\n")
	if content != "" {
		content += "\n"
	}
	return c.runner.RunInput(ctx, content, "crontab", "-")
}
