package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal printf-style logging contract used by phases.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during
// provisioning.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType // Type of event
	Phase     string    // Phase name (e.g., "system", "firewall")
	Resource  string    // Resource name if applicable (package, rule, unit)
	Message   string    // Human-readable message
	Timestamp time.Time // When the event occurred
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"
	// EventPhaseSkipped indicates a phase was skipped, e.g. the update
	// phase on a resumed run.
	EventPhaseSkipped EventType = "phase.skipped"

	// EventResourceApplied indicates a host resource was created or updated.
	EventResourceApplied EventType = "resource.applied"
	// EventResourceExists indicates a resource already exists and was left alone.
	EventResourceExists EventType = "resource.exists"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	log.Print(formatEvent(event))
}

func formatEvent(event Event) string {
	parts := []string{string(event.Type)}
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	if event.Message != "" {
		parts = append(parts, event.Message)
	}
	return strings.Join(parts, " ")
}

// LogResourceApplied logs a resource create/update event.
func LogResourceApplied(observer Observer, phase, resource, message string) {
	observer.Event(Event{Type: EventResourceApplied, Phase: phase, Resource: resource, Message: message})
}

// LogResourceExists logs that a resource already exists.
func LogResourceExists(observer Observer, phase, resource string) {
	observer.Event(Event{Type: EventResourceExists, Phase: phase, Resource: resource, Message: "already exists"})
}
