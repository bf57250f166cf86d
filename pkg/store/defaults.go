// Package store models the OS-owned state macprefs writes into: the
// preference store behind defaults(1) and the set of running processes.
// Both are expressed as interfaces so appliers can be tested against
// in-memory fakes without touching a real machine.
package store

// Domain identifies one preference domain to read from or write into.
type Domain struct {
	// Name is the domain identifier, typically an application bundle
	// identifier, NSGlobalDomain, or an absolute plist path.
	Name string

	// CurrentHost targets the ByHost (per-hardware) preference store.
	CurrentHost bool

	// Sudo runs reads and writes through sudo for root-owned domains.
	Sudo bool
}

// Defaults is the OS preference store.
type Defaults interface {
	// Read returns every key currently set in the domain. A domain that
	// has never been written is an empty map, not an error.
	Read(domain Domain) (map[string]any, error)

	// Write sets one key in the domain to a typed value. Supported value
	// types are bool, integers, floats, string, map[string]any and []any.
	Write(domain Domain, key string, value any) error
}

// Processes controls running applications so they pick up changed
// preferences on relaunch.
type Processes interface {
	// Terminate requests termination of every process with the given
	// name. A process that is not running returns ErrNotRunning.
	Terminate(name string) error
}
