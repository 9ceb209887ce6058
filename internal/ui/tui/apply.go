package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclaw/clawup/internal/provisioning"
)

// programObserver forwards provisioning events to a running Bubble Tea
// program. Printf output is dropped, the dashboard renders the state.
type programObserver struct {
	program *tea.Program
}

func (o *programObserver) Printf(string, ...interface{}) {}

func (o *programObserver) Event(event provisioning.Event) {
	switch event.Type {
	case provisioning.EventPhaseStarted:
		o.program.Send(PhaseMsg{Phase: event.Phase})
	case provisioning.EventPhaseCompleted:
		o.program.Send(PhaseMsg{Phase: event.Phase, Done: true})
	case provisioning.EventPhaseSkipped:
		o.program.Send(PhaseMsg{Phase: event.Phase, Skipped: true})
	case provisioning.EventPhaseFailed:
		// The error itself arrives via the run function's return value.
		o.program.Send(PhaseMsg{Phase: event.Phase})
	}
}

// RunApplyTUI wraps a provisioning run with the dashboard. runFn
// receives an observer that drives the display. A reboot handoff is
// shown as such, and the underlying error is returned to the caller.
//
// The run outcome travels exclusively through messages and is read back
// off the final model, so a user quitting mid-run cannot race the still
// executing goroutine.
func RunApplyTUI(serverName string, resumed bool, runFn func(obs provisioning.Observer) error) error {
	m := NewApplyModel(serverName, resumed)

	p := tea.NewProgram(m)

	go func() {
		err := runFn(&programObserver{program: p})
		switch {
		case err == nil:
			p.Send(DoneMsg{})
		case errors.Is(err, provisioning.ErrRebootRequired):
			p.Send(RebootMsg{Err: err})
		default:
			p.Send(ErrMsg{Err: err})
		}
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	switch {
	case fm.RebootPending:
		return fm.RebootErr
	case fm.Err != nil:
		return fm.Err
	case fm.Done:
		return nil
	default:
		return errors.New("provisioning interrupted")
	}
}
