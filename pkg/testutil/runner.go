// Package testutil provides shared helpers for macprefs tests: a
// recording command runner and filesystem scaffolding for preference
// documents.
package testutil

import (
	"strings"
	"sync"

	"github.com/arthur-debert/macprefs/pkg/command"
)

// RecordingRunner is a command.Runner that never executes anything.
// It records invocations and replays canned outputs keyed by the
// space-joined command line.
type RecordingRunner struct {
	mu sync.Mutex

	// Calls holds every command line passed to Run, space-joined
	Calls []string

	// Outputs maps a command line to the stdout Run returns for it
	Outputs map[string][]byte

	// Errors maps a command line to the error Run returns for it
	Errors map[string]error

	// Missing lists binary names LookPath reports as not installed
	Missing map[string]bool
}

// NewRecordingRunner creates an empty RecordingRunner
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{
		Outputs: make(map[string][]byte),
		Errors:  make(map[string]error),
		Missing: make(map[string]bool),
	}
}

// Run implements command.Runner
func (r *RecordingRunner) Run(name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line := CommandLine(name, args...)
	r.Calls = append(r.Calls, line)

	if err, ok := r.Errors[line]; ok {
		return nil, err
	}
	return r.Outputs[line], nil
}

// LookPath implements command.Runner
func (r *RecordingRunner) LookPath(name string) (string, error) {
	if r.Missing[name] {
		return "", &command.RunError{Command: name, Err: errNotInstalled}
	}
	return "/usr/local/bin/" + name, nil
}

// CalledWith reports whether any recorded call starts with the given prefix
func (r *RecordingRunner) CalledWith(prefix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, call := range r.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// CommandLine joins a command and its arguments the way RecordingRunner
// keys its canned outputs
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
