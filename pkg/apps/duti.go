package apps

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/macprefs/pkg/command"
	"github.com/arthur-debert/macprefs/pkg/errors"
	"github.com/arthur-debert/macprefs/pkg/logging"
	"howett.net/plist"
)

// Handlers is the OS default-application registry.
type Handlers interface {
	// Available reports whether handlers can be managed at all
	// (duti installed).
	Available() bool

	// ExtensionHandler returns the bundle id currently handling a file
	// extension, or "" when none is registered.
	ExtensionHandler(ext string) (string, error)

	// URLHandler returns the bundle id currently handling a URL scheme,
	// or "" when none is registered.
	URLHandler(scheme string) (string, error)

	// SetExtensionHandler registers bundleID for a file extension.
	SetExtensionHandler(ext, bundleID string) error

	// SetURLHandler registers bundleID for a URL scheme.
	SetURLHandler(scheme, bundleID string) error
}

// launchServices is the LaunchServices handler registry plist, relative
// to the user's home directory.
const launchServices = "Library/Preferences/com.apple.LaunchServices/com.apple.launchservices.secure.plist"

// DutiHandlers manages handlers through duti(1), reading current URL
// scheme handlers straight from the LaunchServices plist (one read for
// the whole run instead of one process per scheme).
type DutiHandlers struct {
	runner             command.Runner
	launchServicesPath string
	urlCache           map[string]string
}

// NewDutiHandlers creates a DutiHandlers for the current user
func NewDutiHandlers(runner command.Runner) *DutiHandlers {
	home, _ := os.UserHomeDir()
	return &DutiHandlers{
		runner:             runner,
		launchServicesPath: filepath.Join(home, launchServices),
	}
}

// NewDutiHandlersAt creates a DutiHandlers reading URL handlers from the
// given LaunchServices plist path
func NewDutiHandlersAt(runner command.Runner, launchServicesPath string) *DutiHandlers {
	return &DutiHandlers{runner: runner, launchServicesPath: launchServicesPath}
}

// Available implements Handlers
func (h *DutiHandlers) Available() bool {
	_, err := h.runner.LookPath("duti")
	return err == nil
}

// ExtensionHandler implements Handlers. duti -x prints the handler's
// name, path and bundle id on three lines; a nonzero exit means no
// handler is registered.
func (h *DutiHandlers) ExtensionHandler(ext string) (string, error) {
	out, err := h.runner.Run("duti", "-x", ext)
	if err != nil {
		return "", nil
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) < 3 {
		return "", nil
	}
	return strings.TrimSpace(lines[2]), nil
}

// URLHandler implements Handlers
func (h *DutiHandlers) URLHandler(scheme string) (string, error) {
	if h.urlCache == nil {
		h.urlCache = h.loadURLHandlers()
	}
	return h.urlCache[strings.ToLower(scheme)], nil
}

// lsHandler is one LSHandlers entry in the LaunchServices plist
type lsHandler struct {
	URLScheme string `plist:"LSHandlerURLScheme"`
	RoleAll   string `plist:"LSHandlerRoleAll"`
}

// loadURLHandlers reads every URL scheme handler from LaunchServices.
// A missing or unreadable plist is an empty registry, not an error.
func (h *DutiHandlers) loadURLHandlers() map[string]string {
	logger := logging.GetLogger("apps.handlers")
	handlers := make(map[string]string)

	data, err := os.ReadFile(h.launchServicesPath)
	if err != nil {
		logger.Debug().Err(err).Str("path", h.launchServicesPath).
			Msg("Cannot read LaunchServices plist")
		return handlers
	}

	var registry struct {
		LSHandlers []lsHandler `plist:"LSHandlers"`
	}
	if _, err := plist.Unmarshal(data, &registry); err != nil {
		logger.Debug().Err(err).Msg("Cannot parse LaunchServices plist")
		return handlers
	}

	for _, entry := range registry.LSHandlers {
		if entry.URLScheme != "" {
			handlers[strings.ToLower(entry.URLScheme)] = entry.RoleAll
		}
	}
	return handlers
}

// SetExtensionHandler implements Handlers
func (h *DutiHandlers) SetExtensionHandler(ext, bundleID string) error {
	if _, err := h.runner.Run("duti", "-s", bundleID, "."+ext, "all"); err != nil {
		return errors.Wrap(err, errors.ErrHandlerSet, "duti failed").
			WithDetail("extension", ext).
			WithDetail("bundleID", bundleID)
	}
	return nil
}

// SetURLHandler implements Handlers
func (h *DutiHandlers) SetURLHandler(scheme, bundleID string) error {
	if _, err := h.runner.Run("duti", "-s", bundleID, scheme, "viewer"); err != nil {
		return errors.Wrap(err, errors.ErrHandlerSet, "duti failed").
			WithDetail("scheme", scheme).
			WithDetail("bundleID", bundleID)
	}
	return nil
}
