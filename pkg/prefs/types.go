// Package prefs implements the declarative preference applier: TOML
// documents describing preference domains are loaded, diffed against the
// OS preference store and written back key by key, restarting the
// affected processes when something actually changed.
package prefs

// Document is one preference-definition file.
type Document struct {
	// Path is the file the document was loaded from
	Path string

	// Name is the base filename, used in logs and reports
	Name string

	// Description is a human-readable label for logging
	Description string

	// Kill names processes to terminate after a successful change so
	// they pick up new values on next launch
	Kill []string

	// CurrentHost targets ByHost (per-hardware) preferences
	CurrentHost bool

	// Sudo routes reads and writes through sudo for root-owned domains
	Sudo bool

	// Domains holds the per-domain settings, sorted by domain name
	Domains []DomainSettings
}

// DomainSettings maps preference keys to desired values for one domain.
// Supported value kinds are bool, integer, float, string, nested mapping
// and array.
type DomainSettings struct {
	Domain   string
	Settings map[string]any
}

// Empty reports whether the document declares no settings at all.
// Empty documents are skipped without error.
func (d Document) Empty() bool {
	for _, ds := range d.Domains {
		if len(ds.Settings) > 0 {
			return false
		}
	}
	return true
}
