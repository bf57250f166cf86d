// Package command provides the execution seam between macprefs and the
// external tools it drives (defaults, killall, duti). Appliers depend on
// the Runner interface so tests can substitute a recording fake.
package command

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/arthur-debert/macprefs/pkg/logging"
)

// Runner executes external commands
type Runner interface {
	// Run executes the command and returns its stdout. Stderr is captured
	// and included in the returned error on failure.
	Run(name string, args ...string) ([]byte, error)

	// LookPath reports the full path of the named binary, or an error if
	// it is not installed.
	LookPath(name string) (string, error)
}

// ExecRunner is the os/exec backed Runner used outside of tests
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner
func (r *ExecRunner) Run(name string, args ...string) ([]byte, error) {
	logging.LogCommand(name, args)

	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger := logging.GetLogger("command")
		logger.Debug().
			Str("command", name).
			Strs("args", args).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Err(err).
			Msg("Command failed")
		return stdout.Bytes(), &RunError{
			Command: name,
			Args:    args,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return stdout.Bytes(), nil
}

// LookPath implements Runner
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// RunError captures a failed command invocation along with its stderr
type RunError struct {
	Command string
	Args    []string
	Stderr  string
	Err     error
}

func (e *RunError) Error() string {
	if e.Stderr != "" {
		return e.Command + ": " + e.Err.Error() + ": " + e.Stderr
	}
	return e.Command + ": " + e.Err.Error()
}

func (e *RunError) Unwrap() error {
	return e.Err
}
