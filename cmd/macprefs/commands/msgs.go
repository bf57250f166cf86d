package commands

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A declarative macOS preference applier"
	MsgApplyShort      = "Apply preference documents to the OS preference store"
	MsgAppsShort       = "Apply default-application handler bindings"
	MsgFSFlagsShort    = "Apply file system flags to configured paths"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice   = "\nDRY RUN MODE - No changes were made"
	MsgNoDocuments    = "No preference documents found in %s\n"
	MsgApplySummary   = "\n%d changed, %d already set"
	MsgRestartedItem  = ", restarted %s"
	MsgErrorCount     = ", %d errors"
	MsgAppsSummary    = "\n%d bindings changed, %d already set"
	MsgFlagsSummary   = "\n%d paths changed, %d already set"
	MsgDutiMissing    = "duti is not installed, skipping default application handlers\n"
	MsgNoAppsConfig   = "No application config found at %s\n"
	MsgNoFlagsConfig  = "No file flag config found at %s\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrRunFailed  = "%d errors recorded"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Preview changes without executing them"
	MsgFlagChangedExit = "Exit with this code when any preference was changed"
	MsgFlagNoRestart   = "Do not restart cfprefsd after changes"
)

// Long messages
const (
	MsgRootLong = `macprefs applies declaratively described macOS preferences.

Preference documents are TOML files that name a defaults domain and the
key/value pairs it should hold. macprefs reads the current state of each
domain, writes only the keys that differ, and restarts the affected
applications so the changes take effect.`

	MsgApplyLong = `Apply reads every preference document under the given path (or the
configured documents directory when no path is given), compares each
declared key against the preference store, and writes the keys that
differ. Applications named in a document's kill list are terminated
after their settings change so they pick up the new values.`

	MsgAppsLong = `Apps binds file extensions and URL schemes to the applications declared
in the application config, using duti. When duti is not installed the
command does nothing and exits successfully.`

	MsgFSFlagsLong = `Fsflags sets file system flags (hidden, uchg, schg, uappnd, sappnd) on
the paths declared in the flag config. Paths that do not exist are
skipped with a warning.`
)
