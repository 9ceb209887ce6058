package sysrun

import (
	"context"
	"strings"
	"sync"
)

// Call records a single command invocation seen by a Fake.
type Call struct {
	Name  string
	Args  []string
	Input string
}

// String renders the call as a shell-like command line, used by tests to
// assert on command sequences.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Fake is an in-memory Runner that records every invocation.
//
// Responses are matched by command-line prefix. When several stub
// prefixes match a call, the longest one wins, so "crontab -l" takes
// precedence over "crontab".
type Fake struct {
	mu      sync.Mutex
	calls   []Call
	outputs map[string]string
	errors  map[string]error
}

// NewFake returns an empty recording Runner.
func NewFake() *Fake {
	return &Fake{
		outputs: make(map[string]string),
		errors:  make(map[string]error),
	}
}

// StubOutput makes Output return out for any call whose command line
// starts with prefix.
func (f *Fake) StubOutput(prefix, out string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outputs[prefix] = out
}

// StubError makes any method fail with err for calls whose command line
// starts with prefix.
func (f *Fake) StubError(prefix string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[prefix] = err
}

// Calls returns a copy of all recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CommandLines returns each recorded invocation rendered as a command line.
func (f *Fake) CommandLines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, name string, args ...string) error {
	return f.record(Call{Name: name, Args: args})
}

// Output implements Runner.
func (f *Fake) Output(_ context.Context, name string, args ...string) (string, error) {
	call := Call{Name: name, Args: args}
	if err := f.record(call); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if prefix, ok := longestMatch(f.outputs, call.String()); ok {
		return f.outputs[prefix], nil
	}
	return "", nil
}

// RunInput implements Runner.
func (f *Fake) RunInput(_ context.Context, input string, name string, args ...string) error {
	return f.record(Call{Name: name, Args: args, Input: input})
}

func (f *Fake) record(call Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if prefix, ok := longestMatch(f.errors, call.String()); ok {
		return f.errors[prefix]
	}
	return nil
}

// longestMatch returns the longest stub prefix matching line.
func longestMatch[V any](stubs map[string]V, line string) (string, bool) {
	best, found := "", false
	for prefix := range stubs {
		if strings.HasPrefix(line, prefix) && (!found || len(prefix) > len(best)) {
			best, found = prefix, true
		}
	}
	return best, found
}
