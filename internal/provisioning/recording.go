package provisioning

import (
	"fmt"
	"sync"
)

// RecordingObserver captures log lines and events in memory. Tests use
// it in place of the console observer.
type RecordingObserver struct {
	mu     sync.Mutex
	Lines  []string
	Events []Event
}

// Printf implements Logger.
func (r *RecordingObserver) Printf(format string, v ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lines = append(r.Lines, fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (r *RecordingObserver) Event(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
}

// EventTypes returns the recorded event types in order.
func (r *RecordingObserver) EventTypes() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}
