// Package tui provides a Bubble Tea terminal UI for provisioning runs.
package tui

// PhaseMsg reports progress of a provisioning phase.
type PhaseMsg struct {
	Phase   string
	Done    bool
	Skipped bool
	Err     error
}

// RebootMsg signals that the run is about to reboot the host and will
// resume afterwards. Err carries the pipeline's reboot error so the
// caller can act on it after the program exits.
type RebootMsg struct{ Err error }

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the run is complete.
type DoneMsg struct{}
