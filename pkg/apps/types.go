// Package apps applies default-application handlers for file extensions
// and URL schemes, driving duti(1) through an injected handler store.
package apps

import (
	"os"
	"sort"

	"github.com/arthur-debert/macprefs/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// App declares one application and the extensions and URL schemes it
// should handle.
type App struct {
	Name       string   `toml:"name"`
	BundleID   string   `toml:"bundle_id"`
	Extensions []string `toml:"extensions"`
	URLs       []string `toml:"urls"`
}

// Config is the default-apps configuration file.
type Config struct {
	Apps map[string]App `toml:"apps"`
}

// LoadConfig reads and parses a default-apps configuration file
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

// bindings flattens the app-centric config into handler mappings
type bindings struct {
	extensions map[string]string // extension -> bundle id
	schemes    map[string]string // url scheme -> bundle id
	names      map[string]string // bundle id -> display name
}

func (c Config) bindings() bindings {
	b := bindings{
		extensions: make(map[string]string),
		schemes:    make(map[string]string),
		names:      make(map[string]string),
	}

	ids := make([]string, 0, len(c.Apps))
	for id := range c.Apps {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		app := c.Apps[id]
		if app.BundleID == "" {
			continue
		}
		name := app.Name
		if name == "" {
			name = app.BundleID
		}
		b.names[app.BundleID] = name
		for _, ext := range app.Extensions {
			b.extensions[ext] = app.BundleID
		}
		for _, scheme := range app.URLs {
			b.schemes[scheme] = app.BundleID
		}
	}

	return b
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
