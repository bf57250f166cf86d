//go:build !darwin

package fsflags

import (
	"github.com/arthur-debert/macprefs/pkg/errors"
)

// OSFlagger is only functional on darwin; elsewhere it reports every
// operation as unsupported.
type OSFlagger struct{}

// NewOSFlagger creates the real Flagger
func NewOSFlagger() *OSFlagger {
	return &OSFlagger{}
}

// Flags implements Flagger
func (f *OSFlagger) Flags(path string) (uint32, error) {
	return 0, errors.New(errors.ErrNotImplemented, "file flags require macOS")
}

// SetFlags implements Flagger
func (f *OSFlagger) SetFlags(path string, flags uint32) error {
	return errors.New(errors.ErrNotImplemented, "file flags require macOS")
}
