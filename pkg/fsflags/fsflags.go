// Package fsflags applies BSD file flags (hidden, uchg, ...) to paths
// from a declarative TOML configuration.
package fsflags

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/arthur-debert/macprefs/pkg/errors"
	"github.com/arthur-debert/macprefs/pkg/logging"
	"github.com/arthur-debert/macprefs/pkg/paths"
	"github.com/arthur-debert/macprefs/pkg/style"
	"github.com/rs/zerolog"
	toml "github.com/pelletier/go-toml/v2"
)

// Flag bits from sys/stat.h
const (
	ufHidden    = 0x00008000 // UF_HIDDEN
	ufImmutable = 0x00000002 // UF_IMMUTABLE
	ufAppend    = 0x00000004 // UF_APPEND
	sfImmutable = 0x00020000 // SF_IMMUTABLE
	sfAppend    = 0x00040000 // SF_APPEND
)

// flagBits maps configuration flag names to their stat flag bits
var flagBits = map[string]uint32{
	"hidden": ufHidden,
	"uchg":   ufImmutable,
	"uappnd": ufAppend,
	"schg":   sfImmutable,
	"sappnd": sfAppend,
}

// Config is the file-flags configuration file: paths mapped to the
// flags that should be set or cleared on them.
type Config struct {
	Description string                     `toml:"description"`
	Paths       map[string]map[string]bool `toml:"paths"`
}

// LoadConfig reads and parses a file-flags configuration file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(err, errors.ErrNotFound, "config file not found").
				WithDetail("path", path)
		}
		return Config{}, errors.Wrap(err, errors.ErrFileAccess, "cannot read config file").
			WithDetail("path", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigParse, "cannot parse config file").
			WithDetail("path", path)
	}

	return cfg, nil
}

// Flagger reads and writes the stat flags of a path.
type Flagger interface {
	// Flags returns the current flag mask of path
	Flags(path string) (uint32, error)

	// SetFlags replaces the flag mask of path
	SetFlags(path string, flags uint32) error
}

// Options configures an Applier
type Options struct {
	Flagger   Flagger
	DryRun    bool
	Verbosity int
	Out       io.Writer
	Logger    zerolog.Logger
}

// Applier applies declared file flags
type Applier struct {
	flagger   Flagger
	dryRun    bool
	verbosity int
	out       io.Writer
	logger    zerolog.Logger
}

// New creates an Applier
func New(opts Options) *Applier {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("fsflags.applier")
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Applier{
		flagger:   opts.Flagger,
		dryRun:    opts.DryRun,
		verbosity: opts.Verbosity,
		out:       out,
		logger:    logger,
	}
}

// Result aggregates what a run did
type Result struct {
	// Changed counts paths whose flag mask was (or would be) rewritten
	Changed int

	// Skipped counts paths already holding the desired mask
	Skipped int

	// Errors holds every failed flag write
	Errors []error
}

// Failed reports whether any error was recorded
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// ChangesMade reports whether any mask differed
func (r *Result) ChangesMade() bool {
	return r.Changed > 0
}

// Apply processes every configured path in sorted order. Missing paths
// and unknown flag names are warnings; flag write failures accumulate.
func (a *Applier) Apply(cfg Config) *Result {
	result := &Result{}

	pathNames := make([]string, 0, len(cfg.Paths))
	for p := range cfg.Paths {
		pathNames = append(pathNames, p)
	}
	sort.Strings(pathNames)

	for _, raw := range pathNames {
		a.applyPath(raw, cfg.Paths[raw], result)
	}

	a.logger.Info().
		Int("changed", result.Changed).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Bool("dryRun", a.dryRun).
		Msg("File flags applied")

	return result
}

func (a *Applier) applyPath(raw string, flags map[string]bool, result *Result) {
	path := paths.ExpandHome(raw)
	logger := a.logger.With().Str("path", path).Logger()

	current, err := a.flagger.Flags(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Msg("Path does not exist, skipping")
			fmt.Fprintf(a.out, "%s %s does not exist, skipping\n", style.Warn(style.WarnIndicator), path)
			return
		}
		result.Errors = append(result.Errors, errors.Wrap(err, errors.ErrFlagRead, "cannot read flags").
			WithDetail("path", path))
		return
	}

	desired := current
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		bit, known := flagBits[name]
		if !known {
			logger.Warn().Str("flag", name).Msg("Unknown flag name, skipping")
			fmt.Fprintf(a.out, "%s Unknown flag %q for %s\n", style.Warn(style.WarnIndicator), name, path)
			continue
		}
		if flags[name] {
			desired |= bit
		} else {
			desired &^= bit
		}
	}

	if desired == current {
		result.Skipped++
		logger.Debug().Msg("Flags already correct")
		if a.verbosity >= 2 {
			fmt.Fprintf(a.out, "  %s %s %s\n", style.OK(style.OKIndicator), path,
				style.Muted(fmt.Sprintf("%#x", current)))
		}
		return
	}

	if a.dryRun {
		fmt.Fprintf(a.out, "%s%s %s: %#x %s %#x\n",
			style.DryRun("DRY RUN: "), style.Changed(style.ChangedIndicator), path,
			current, style.Changed("→"), desired)
		result.Changed++
		return
	}

	if err := a.flagger.SetFlags(path, desired); err != nil {
		logger.Error().Err(err).Msg("Cannot set flags")
		fmt.Fprintf(a.out, "  %s %s: %v\n", style.Error(style.ErrorIndicator), path, err)
		result.Errors = append(result.Errors, errors.Wrap(err, errors.ErrFlagWrite, "cannot set flags").
			WithDetail("path", path))
		return
	}

	logger.Debug().Uint32("from", current).Uint32("to", desired).Msg("Flags written")
	fmt.Fprintf(a.out, "  %s %s: %#x %s %#x\n",
		style.Changed(style.ChangedIndicator), path, current, style.Changed("→"), desired)
	result.Changed++
}
