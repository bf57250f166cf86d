// Package config loads the macprefs tool configuration: built-in
// defaults, overlaid by the user's config file, overlaid by MACPREFS_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/macprefs/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// baseConfig holds the built-in defaults. Empty paths resolve to the
// XDG config directory at load time.
var baseConfig = map[string]interface{}{
	"defaults.dir":                  "",
	"defaults.restart_prefs_daemon": true,
	"apps.config":                   "",
	"fsflags.config":                "",
}

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "MACPREFS_"

// DefaultsConfig configures the preference applier
type DefaultsConfig struct {
	// Dir is where preference documents live
	Dir string `koanf:"dir"`

	// RestartPrefsDaemon restarts cfprefsd after a changed run
	RestartPrefsDaemon bool `koanf:"restart_prefs_daemon"`
}

// AppsConfig configures the default-apps applier
type AppsConfig struct {
	// Config is the default-apps configuration file
	Config string `koanf:"config"`
}

// FlagsConfig configures the file-flags applier
type FlagsConfig struct {
	// Config is the file-flags configuration file
	Config string `koanf:"config"`
}

// Config is the resolved tool configuration
type Config struct {
	Defaults DefaultsConfig `koanf:"defaults"`
	Apps     AppsConfig     `koanf:"apps"`
	FSFlags  FlagsConfig    `koanf:"fsflags"`
}

// Load resolves the configuration for the given paths. A missing user
// config file is fine; a malformed one is an error.
func Load(p *paths.Paths) (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(baseConfig, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load base config: %w", err)
	}

	// 2. User config file, when present
	configPath := p.ConfigFile()
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	}

	// 3. Environment overrides: MACPREFS_DEFAULTS_DIR -> defaults.dir
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Empty paths fall back to the XDG layout
	if cfg.Defaults.Dir == "" {
		cfg.Defaults.Dir = p.DefaultsDir()
	}
	if cfg.Apps.Config == "" {
		cfg.Apps.Config = p.AppsConfigFile()
	}
	if cfg.FSFlags.Config == "" {
		cfg.FSFlags.Config = p.FlagsConfigFile()
	}

	return &cfg, nil
}
