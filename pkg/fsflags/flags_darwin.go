//go:build darwin

package fsflags

import (
	"golang.org/x/sys/unix"
)

// OSFlagger reads and writes stat flags through chflags(2)
type OSFlagger struct{}

// NewOSFlagger creates the real Flagger
func NewOSFlagger() *OSFlagger {
	return &OSFlagger{}
}

// Flags implements Flagger
func (f *OSFlagger) Flags(path string) (uint32, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, err
	}
	return st.Flags, nil
}

// SetFlags implements Flagger
func (f *OSFlagger) SetFlags(path string, flags uint32) error {
	return unix.Chflags(path, int(flags))
}
