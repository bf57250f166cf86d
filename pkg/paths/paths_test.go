package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_ConfigDirOverride(t *testing.T) {
	t.Setenv(EnvConfigDir, "/custom/macprefs")

	p := New()

	assert.Equal(t, "/custom/macprefs", p.ConfigDir())
	assert.Equal(t, filepath.Join("/custom/macprefs", "config.toml"), p.ConfigFile())
	assert.Equal(t, filepath.Join("/custom/macprefs", "defaults"), p.DefaultsDir())
	assert.Equal(t, filepath.Join("/custom/macprefs", "default-apps.toml"), p.AppsConfigFile())
	assert.Equal(t, filepath.Join("/custom/macprefs", "fs-flags.toml"), p.FlagsConfigFile())
}

func TestNew_DefaultConfigDir(t *testing.T) {
	t.Setenv(EnvConfigDir, "")

	p := New()

	assert.Contains(t, p.ConfigDir(), AppDirName)
	assert.Contains(t, p.LogFile(), LogFileName)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/Library", filepath.Join(home, "Library")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"~user/path", "~user/path"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandHome(tt.in), "ExpandHome(%q)", tt.in)
	}
}
