package store

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/macprefs/pkg/command"
	"github.com/arthur-debert/macprefs/pkg/errors"
	"github.com/arthur-debert/macprefs/pkg/logging"
	"howett.net/plist"
)

// ExecDefaults reads and writes preference domains through defaults(1).
// Reads use `defaults export` so the whole domain arrives as one plist;
// writes use `defaults write` with the type-appropriate form.
type ExecDefaults struct {
	runner command.Runner
}

// NewExecDefaults creates an ExecDefaults backed by the given runner
func NewExecDefaults(runner command.Runner) *ExecDefaults {
	return &ExecDefaults{runner: runner}
}

// Read implements Defaults. A domain defaults(1) does not know about is
// reported as empty, matching the "unset is not an error" contract.
func (s *ExecDefaults) Read(domain Domain) (map[string]any, error) {
	logger := logging.GetLogger("store.defaults")

	name, args := defaultsArgv(domain, "export", domain.Name, "-")
	out, err := s.runner.Run(name, args...)
	if err != nil {
		// defaults export fails for domains that were never written.
		// Treat every read failure as an unset domain; the write path
		// will surface real problems.
		logger.Debug().
			Str("domain", domain.Name).
			Err(err).
			Msg("Domain export failed, treating as unset")
		return map[string]any{}, nil
	}

	if len(out) == 0 {
		return map[string]any{}, nil
	}

	var values map[string]any
	if _, err := plist.Unmarshal(out, &values); err != nil {
		return nil, errors.Wrap(err, errors.ErrDefaultsRead, "cannot parse exported domain").
			WithDetail("domain", domain.Name)
	}
	if values == nil {
		values = map[string]any{}
	}

	return values, nil
}

// Write implements Defaults
func (s *ExecDefaults) Write(domain Domain, key string, value any) error {
	valueArgs, err := writeArgs(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrDefaultsWrite, "unsupported value type").
			WithDetail("domain", domain.Name).
			WithDetail("key", key)
	}

	name, args := defaultsArgv(domain, append([]string{"write", domain.Name, key}, valueArgs...)...)
	if _, err := s.runner.Run(name, args...); err != nil {
		return errors.Wrap(err, errors.ErrDefaultsWrite, "defaults write failed").
			WithDetail("domain", domain.Name).
			WithDetail("key", key)
	}

	return nil
}

// defaultsArgv assembles the defaults(1) command line for a domain,
// inserting -currentHost and the sudo prefix where required.
func defaultsArgv(domain Domain, args ...string) (string, []string) {
	argv := make([]string, 0, len(args)+3)
	argv = append(argv, "defaults")
	if domain.CurrentHost {
		argv = append(argv, "-currentHost")
	}
	argv = append(argv, args...)

	if domain.Sudo {
		return "sudo", argv
	}
	return argv[0], argv[1:]
}

// writeArgs returns the typed argument form of a value for defaults write
func writeArgs(value any) ([]string, error) {
	switch v := value.(type) {
	case bool:
		return []string{"-bool", strconv.FormatBool(v)}, nil
	case int:
		return []string{"-int", strconv.FormatInt(int64(v), 10)}, nil
	case int8:
		return []string{"-int", strconv.FormatInt(int64(v), 10)}, nil
	case int16:
		return []string{"-int", strconv.FormatInt(int64(v), 10)}, nil
	case int32:
		return []string{"-int", strconv.FormatInt(int64(v), 10)}, nil
	case int64:
		return []string{"-int", strconv.FormatInt(v, 10)}, nil
	case uint:
		return []string{"-int", strconv.FormatUint(uint64(v), 10)}, nil
	case uint8:
		return []string{"-int", strconv.FormatUint(uint64(v), 10)}, nil
	case uint16:
		return []string{"-int", strconv.FormatUint(uint64(v), 10)}, nil
	case uint32:
		return []string{"-int", strconv.FormatUint(uint64(v), 10)}, nil
	case uint64:
		return []string{"-int", strconv.FormatUint(v, 10)}, nil
	case float32:
		return []string{"-float", strconv.FormatFloat(float64(v), 'g', -1, 64)}, nil
	case float64:
		return []string{"-float", strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case string:
		return []string{"-string", v}, nil
	case map[string]any, []any:
		// Compound values go over as one XML plist argument, which
		// defaults(1) parses as a property list representation.
		data, err := plist.Marshal(v, plist.XMLFormat)
		if err != nil {
			return nil, err
		}
		return []string{string(data)}, nil
	default:
		return nil, fmt.Errorf("cannot encode %T for defaults write", value)
	}
}

// KillallProcesses terminates processes with killall(1)
type KillallProcesses struct {
	runner command.Runner
}

// NewKillallProcesses creates a Processes implementation backed by killall
func NewKillallProcesses(runner command.Runner) *KillallProcesses {
	return &KillallProcesses{runner: runner}
}

// ErrNotRunning reports that a kill target had no running process.
// This is the common, expected case and is never escalated.
var ErrNotRunning = errors.New(errors.ErrNotFound, "process not running")

// Terminate implements Processes
func (p *KillallProcesses) Terminate(name string) error {
	if _, err := p.runner.Run("killall", name); err != nil {
		var runErr *command.RunError
		if stderrors.As(err, &runErr) && strings.Contains(runErr.Stderr, "No matching processes") {
			return ErrNotRunning
		}
		return errors.Wrap(err, errors.ErrProcessKill, "killall failed").
			WithDetail("process", name)
	}
	return nil
}
