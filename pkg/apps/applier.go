package apps

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/macprefs/pkg/logging"
	"github.com/arthur-debert/macprefs/pkg/style"
	"github.com/rs/zerolog"
)

// Options configures an Applier
type Options struct {
	Handlers  Handlers
	DryRun    bool
	Verbosity int
	Out       io.Writer
	Logger    zerolog.Logger
}

// Applier applies default-application handler bindings
type Applier struct {
	handlers  Handlers
	dryRun    bool
	verbosity int
	out       io.Writer
	logger    zerolog.Logger
}

// New creates an Applier
func New(opts Options) *Applier {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("apps.applier")
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Applier{
		handlers:  opts.Handlers,
		dryRun:    opts.DryRun,
		verbosity: opts.Verbosity,
		out:       out,
		logger:    logger,
	}
}

// Result aggregates what a run did
type Result struct {
	// Changed maps bundle ids to the items (".ext" or "scheme://")
	// that were bound to them
	Changed map[string][]string

	// Skipped counts bindings that were already correct
	Skipped int

	// Errors holds every failed binding
	Errors []error
}

// Failed reports whether any binding failed
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// ChangesMade reports whether any binding was (or would be) changed
func (r *Result) ChangesMade() bool {
	return len(r.Changed) > 0
}

// Apply binds every declared extension and URL scheme, skipping the ones
// already held by the right application. Failures accumulate and never
// abort the remaining bindings.
func (a *Applier) Apply(cfg Config) *Result {
	result := &Result{Changed: make(map[string][]string)}
	b := cfg.bindings()

	for _, scheme := range sortedKeys(b.schemes) {
		bundleID := b.schemes[scheme]
		a.applyURL(scheme, bundleID, b.names[bundleID], result)
	}

	for _, ext := range sortedKeys(b.extensions) {
		bundleID := b.extensions[ext]
		a.applyExtension(ext, bundleID, b.names[bundleID], result)
	}

	a.logger.Info().
		Int("changedApps", len(result.Changed)).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Bool("dryRun", a.dryRun).
		Msg("Default apps applied")

	return result
}

func (a *Applier) applyURL(scheme, bundleID, name string, result *Result) {
	current, err := a.handlers.URLHandler(scheme)
	if err != nil {
		result.Errors = append(result.Errors, err)
		return
	}

	// LaunchServices stores bundle ids with inconsistent casing
	if current != "" && strings.EqualFold(current, bundleID) {
		result.Skipped++
		a.logger.Debug().Str("scheme", scheme).Str("handler", bundleID).Msg("URL handler already set")
		if a.verbosity >= 2 {
			fmt.Fprintf(a.out, "  %s %s:// handled by %s\n", style.OK(style.OKIndicator), scheme, name)
		}
		return
	}

	if a.dryRun {
		fmt.Fprintf(a.out, "%s%s %s:// %s %s\n",
			style.DryRun("DRY RUN: "), style.Changed(style.ChangedIndicator), scheme, style.Changed("→"), name)
		result.Changed[bundleID] = append(result.Changed[bundleID], scheme+"://")
		return
	}

	if err := a.handlers.SetURLHandler(scheme, bundleID); err != nil {
		a.logger.Error().Err(err).Str("scheme", scheme).Msg("Cannot set URL handler")
		fmt.Fprintf(a.out, "  %s %s:// %s: %v\n", style.Error(style.ErrorIndicator), scheme, name, err)
		result.Errors = append(result.Errors, err)
		return
	}

	fmt.Fprintf(a.out, "  %s %s:// %s %s\n",
		style.Changed(style.ChangedIndicator), scheme, style.Changed("→"), name)
	result.Changed[bundleID] = append(result.Changed[bundleID], scheme+"://")
}

func (a *Applier) applyExtension(ext, bundleID, name string, result *Result) {
	current, err := a.handlers.ExtensionHandler(ext)
	if err != nil {
		result.Errors = append(result.Errors, err)
		return
	}

	if current == bundleID {
		result.Skipped++
		a.logger.Debug().Str("extension", ext).Str("handler", bundleID).Msg("Extension handler already set")
		if a.verbosity >= 2 {
			fmt.Fprintf(a.out, "  %s .%s handled by %s\n", style.OK(style.OKIndicator), ext, name)
		}
		return
	}

	if a.dryRun {
		fmt.Fprintf(a.out, "%s%s .%s %s %s\n",
			style.DryRun("DRY RUN: "), style.Changed(style.ChangedIndicator), ext, style.Changed("→"), name)
		result.Changed[bundleID] = append(result.Changed[bundleID], "."+ext)
		return
	}

	if err := a.handlers.SetExtensionHandler(ext, bundleID); err != nil {
		a.logger.Error().Err(err).Str("extension", ext).Msg("Cannot set extension handler")
		fmt.Fprintf(a.out, "  %s .%s %s: %v\n", style.Error(style.ErrorIndicator), ext, name, err)
		result.Errors = append(result.Errors, err)
		return
	}

	fmt.Fprintf(a.out, "  %s .%s %s %s\n",
		style.Changed(style.ChangedIndicator), ext, style.Changed("→"), name)
	result.Changed[bundleID] = append(result.Changed[bundleID], "."+ext)
}
