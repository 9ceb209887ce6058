package provisioning

import (
	"errors"
	"fmt"
	"time"
)

// RunPhases executes all provisioning phases sequentially.
//
// The first failing phase aborts the run; there is no retry and no
// rollback of phases that already completed. ErrRebootRequired is
// propagated unwrapped-matchable so the caller can distinguish it from
// a genuine failure.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Event(Event{Type: EventPhaseStarted, Phase: phase.Name(), Message: "starting"})

		if err := phase.Provision(ctx); err != nil {
			if errors.Is(err, ErrRebootRequired) {
				ctx.Observer.Printf("[%s] host requires a reboot before continuing", name)
				return fmt.Errorf("%s: %w", phase.Name(), ErrRebootRequired)
			}
			ctx.Observer.Event(Event{Type: EventPhaseFailed, Phase: phase.Name(), Message: err.Error()})
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Event(Event{
			Type:    EventPhaseCompleted,
			Phase:   phase.Name(),
			Message: fmt.Sprintf("completed in %v", time.Since(phaseStart).Round(time.Millisecond)),
		})
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
