package provisioning

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawup/internal/config"
	"github.com/openclaw/clawup/internal/sysrun"
)

type stubPhase struct {
	name string
	err  error
	runs *[]string
}

func (p *stubPhase) Name() string { return p.name }

func (p *stubPhase) Provision(*Context) error {
	*p.runs = append(*p.runs, p.name)
	return p.err
}

func newTestContext() (*Context, *RecordingObserver) {
	observer := &RecordingObserver{}
	ctx := NewContext(context.Background(), config.Default(), config.Secrets{}, sysrun.NewFake())
	ctx.Observer = observer
	return ctx, observer
}

func TestRunPhasesInOrder(t *testing.T) {
	ctx, observer := newTestContext()

	var runs []string
	phases := []Phase{
		&stubPhase{name: "system", runs: &runs},
		&stubPhase{name: "packages", runs: &runs},
		&stubPhase{name: "service", runs: &runs},
	}

	require.NoError(t, RunPhases(ctx, phases))
	assert.Equal(t, []string{"system", "packages", "service"}, runs)

	types := observer.EventTypes()
	assert.Equal(t, []EventType{
		EventPhaseStarted, EventPhaseCompleted,
		EventPhaseStarted, EventPhaseCompleted,
		EventPhaseStarted, EventPhaseCompleted,
	}, types)
}

func TestRunPhasesAbortsOnFirstError(t *testing.T) {
	ctx, observer := newTestContext()

	var runs []string
	boom := errors.New("ufw exploded")
	phases := []Phase{
		&stubPhase{name: "system", runs: &runs},
		&stubPhase{name: "firewall", err: boom, runs: &runs},
		&stubPhase{name: "service", runs: &runs},
	}

	err := RunPhases(ctx, phases)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "firewall phase failed")
	assert.Equal(t, []string{"system", "firewall"}, runs, "later phases must not run")
	assert.Contains(t, observer.EventTypes(), EventPhaseFailed)
}

func TestRunPhasesPropagatesRebootRequired(t *testing.T) {
	ctx, _ := newTestContext()

	var runs []string
	phases := []Phase{
		&stubPhase{name: "system", err: fmt.Errorf("pending kernel: %w", ErrRebootRequired), runs: &runs},
		&stubPhase{name: "packages", runs: &runs},
	}

	err := RunPhases(ctx, phases)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRebootRequired)
	assert.Equal(t, []string{"system"}, runs)
}
