// Package sysrun executes external system commands for provisioning
// phases.
//
// All host mutation goes through the [Runner] interface so tests can
// substitute a recording fake and assert on the exact command sequence
// without touching the machine.
package sysrun

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes external commands on the host.
type Runner interface {
	// Run executes a command, discarding stdout. Stderr is captured and
	// included in the returned error on failure.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes a command and returns its trimmed stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// RunInput executes a command with the given stdin.
	RunInput(ctx context.Context, input string, name string, args ...string) error
}

// ExecRunner runs commands via os/exec. Env entries, when set, are
// appended to the inherited environment of every command.
type ExecRunner struct {
	Env []string
}

// New returns a Runner backed by os/exec.
func New() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = r.environ(cmd)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return commandError(name, args, err, stderr.String())
	}
	return nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = r.environ(cmd)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", commandError(name, args, err, stderr.String())
	}
	return strings.TrimSpace(string(out)), nil
}

// RunInput implements Runner.
func (r *ExecRunner) RunInput(ctx context.Context, input string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = r.environ(cmd)
	cmd.Stdin = strings.NewReader(input)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return commandError(name, args, err, stderr.String())
	}
	return nil
}

func (r *ExecRunner) environ(cmd *exec.Cmd) []string {
	if len(r.Env) == 0 {
		return nil // inherit parent environment
	}
	return append(cmd.Environ(), r.Env...)
}

func commandError(name string, args []string, err error, stderr string) error {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	if stderr = strings.TrimSpace(stderr); stderr != "" {
		return fmt.Errorf("%s: %w: %s", cmdline, err, stderr)
	}
	return fmt.Errorf("%s: %w", cmdline, err)
}
