package prefs

import (
	"fmt"
	"io"
	"os"
	"sort"

	stderrors "errors"

	"github.com/arthur-debert/macprefs/pkg/logging"
	"github.com/arthur-debert/macprefs/pkg/store"
	"github.com/arthur-debert/macprefs/pkg/style"
	"github.com/rs/zerolog"
)

// prefsDaemon is restarted after any change so cached preference values
// are flushed before applications relaunch.
const prefsDaemon = "cfprefsd"

// Options configures an Applier
type Options struct {
	// Store is the OS preference store writes go into
	Store store.Defaults

	// Processes handles restart triggers
	Processes store.Processes

	// DryRun reads and compares but never writes or terminates
	DryRun bool

	// Verbosity selects reporting detail: 0 changes only, 1 adds
	// per-key comparison detail, 2+ also reports keys already correct
	Verbosity int

	// Out receives the human-readable report (default os.Stdout)
	Out io.Writer

	// RestartPrefsDaemon restarts cfprefsd once after a changed run
	RestartPrefsDaemon bool

	Logger zerolog.Logger
}

// Applier applies preference documents against the injected store
type Applier struct {
	store     store.Defaults
	processes store.Processes
	dryRun    bool
	verbosity int
	out       io.Writer
	restartPD bool
	logger    zerolog.Logger
}

// New creates an Applier
func New(opts Options) *Applier {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("prefs.applier")
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Applier{
		store:     opts.Store,
		processes: opts.Processes,
		dryRun:    opts.DryRun,
		verbosity: opts.Verbosity,
		out:       out,
		restartPD: opts.RestartPrefsDaemon,
		logger:    logger,
	}
}

// Result aggregates what a run did. Errors accumulate; the run always
// attempts every document and every key.
type Result struct {
	// Documents is the number of non-empty documents processed
	Documents int

	// Changed counts keys that were written (or would be, in dry-run)
	Changed int

	// Skipped counts keys already holding the desired value
	Skipped int

	// Restarted lists processes terminated by restart triggers
	Restarted []string

	// Errors holds every load and write error recorded during the run
	Errors []error
}

// Failed reports whether any error was recorded
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// ChangesMade reports whether any key differed from its desired value
func (r *Result) ChangesMade() bool {
	return r.Changed > 0
}

// Apply processes every document in order. Failures are recorded in the
// result and never abort the remaining documents or keys.
func (a *Applier) Apply(docs []Document) *Result {
	result := &Result{}
	terminated := make(map[string]bool)

	for _, doc := range docs {
		if doc.Empty() {
			a.logger.Trace().Str("file", doc.Name).Msg("Document has no settings, skipping")
			continue
		}
		result.Documents++
		a.applyDocument(doc, result, terminated)
	}

	if result.ChangesMade() && a.restartPD && !terminated[prefsDaemon] {
		a.terminate(prefsDaemon, result)
	}

	a.logger.Info().
		Int("documents", result.Documents).
		Int("changed", result.Changed).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Bool("dryRun", a.dryRun).
		Msg("Apply finished")

	return result
}

func (a *Applier) applyDocument(doc Document, result *Result, terminated map[string]bool) {
	logger := a.logger.With().Str("file", doc.Name).Logger()
	logger.Debug().Str("description", doc.Description).Msg("Processing document")

	if a.verbosity >= 1 && doc.Description != "" {
		fmt.Fprintf(a.out, "%s %s\n", style.Bold(doc.Name), style.Muted(doc.Description))
	}

	docChanged := false
	for _, ds := range doc.Domains {
		if a.applyDomain(doc, ds, result) {
			docChanged = true
		}
	}

	if !docChanged || len(doc.Kill) == 0 {
		return
	}

	for _, name := range doc.Kill {
		if terminated[name] {
			continue
		}
		terminated[name] = true
		a.terminate(name, result)
	}
}

// applyDomain applies one domain section and reports whether any key
// actually changed
func (a *Applier) applyDomain(doc Document, ds DomainSettings, result *Result) bool {
	domain := store.Domain{Name: ds.Domain, CurrentHost: doc.CurrentHost, Sudo: doc.Sudo}
	logger := a.logger.With().Str("domain", ds.Domain).Logger()

	current, err := a.store.Read(domain)
	if err != nil {
		logger.Error().Err(err).Msg("Cannot read current values")
		fmt.Fprintf(a.out, "%s %s: %v\n", style.Error(style.ErrorIndicator), ds.Domain, err)
		result.Errors = append(result.Errors, err)
		return false
	}

	keys := make([]string, 0, len(ds.Settings))
	for key := range ds.Settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	changed := false
	for _, key := range keys {
		cur, exists := current[key]
		merged := Merge(cur, ds.Settings[key])

		if exists && Equal(merged, cur) {
			result.Skipped++
			logger.Trace().Str("key", key).Msg("Already correct")
			if a.verbosity >= 2 {
				fmt.Fprintf(a.out, "  %s %s %s %s\n",
					style.OK(style.OKIndicator), ds.Domain, key, style.Muted(formatValue(cur)))
			}
			continue
		}

		a.reportChange(ds.Domain, key, cur, exists, merged)

		if a.dryRun {
			result.Changed++
			changed = true
			continue
		}

		if err := a.store.Write(domain, key, merged); err != nil {
			logger.Error().Err(err).Str("key", key).Msg("Write failed")
			fmt.Fprintf(a.out, "  %s %s %s: %v\n", style.Error(style.ErrorIndicator), ds.Domain, key, err)
			result.Errors = append(result.Errors, err)
			continue
		}

		logger.Debug().Str("key", key).Interface("value", merged).Msg("Value written")
		result.Changed++
		changed = true
	}

	return changed
}

func (a *Applier) reportChange(domain, key string, current any, exists bool, desired any) {
	prefix := ""
	if a.dryRun {
		prefix = style.DryRun("DRY RUN: ")
	}

	if a.verbosity >= 1 {
		was := style.Muted("(unset)")
		if exists {
			was = formatValue(current)
		}
		fmt.Fprintf(a.out, "  %s%s %s %s: %s %s %s\n",
			prefix, style.Changed(style.ChangedIndicator), domain, key,
			was, style.Changed("→"), formatValue(desired))
		return
	}

	fmt.Fprintf(a.out, "  %s%s %s %s = %s\n",
		prefix, style.Changed(style.ChangedIndicator), domain, key, formatValue(desired))
}

// terminate requests process termination, honoring dry-run. A missing
// process is the expected case and only logged at debug level.
func (a *Applier) terminate(name string, result *Result) {
	if a.dryRun {
		fmt.Fprintf(a.out, "%s%s\n", style.DryRun("DRY RUN: "), "Would restart "+name)
		return
	}

	err := a.processes.Terminate(name)
	switch {
	case err == nil:
		a.logger.Debug().Str("process", name).Msg("Restarted process")
		if a.verbosity >= 1 {
			fmt.Fprintf(a.out, "%s Restarted %s\n", style.OK(style.OKIndicator), name)
		}
		result.Restarted = append(result.Restarted, name)
	case stderrors.Is(err, store.ErrNotRunning):
		a.logger.Debug().Str("process", name).Msg("Process not running")
	default:
		// Restart failures never escalate past a warning
		a.logger.Warn().Err(err).Str("process", name).Msg("Failed to restart process")
		fmt.Fprintf(a.out, "%s Failed to restart %s: %v\n", style.Warn(style.WarnIndicator), name, err)
	}
}

// formatValue renders a value for the report
func formatValue(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		return fmt.Sprintf("%v", v)
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
