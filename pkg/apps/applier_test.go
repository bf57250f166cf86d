package apps_test

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/macprefs/pkg/apps"
	"github.com/arthur-debert/macprefs/pkg/errors"
	"github.com/arthur-debert/macprefs/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editorConfig() apps.Config {
	return apps.Config{
		Apps: map[string]apps.App{
			"vscode": {
				Name:       "VS Code",
				BundleID:   "com.microsoft.VSCode",
				Extensions: []string{"py", "md"},
			},
			"firefox": {
				Name:     "Firefox",
				BundleID: "org.mozilla.firefox",
				URLs:     []string{"http", "https"},
			},
		},
	}
}

func TestApply_SetsMissingHandlers(t *testing.T) {
	handlers := apps.NewMemoryHandlers()
	out := &bytes.Buffer{}
	applier := apps.New(apps.Options{Handlers: handlers, Out: out})

	result := applier.Apply(editorConfig())

	assert.False(t, result.Failed())
	assert.ElementsMatch(t, []string{".py", ".md"}, result.Changed["com.microsoft.VSCode"])
	assert.ElementsMatch(t, []string{"http://", "https://"}, result.Changed["org.mozilla.firefox"])
	assert.Equal(t, "com.microsoft.VSCode", handlers.Extensions["py"])
	assert.Equal(t, "org.mozilla.firefox", handlers.URLs["https"])
}

func TestApply_SkipsCorrectHandlers(t *testing.T) {
	handlers := apps.NewMemoryHandlers()
	handlers.Extensions["py"] = "com.microsoft.VSCode"
	handlers.Extensions["md"] = "com.microsoft.VSCode"
	// LaunchServices reports bundle ids with arbitrary casing
	handlers.URLs["http"] = "org.mozilla.Firefox"
	handlers.URLs["https"] = "org.mozilla.firefox"

	applier := apps.New(apps.Options{Handlers: handlers, Out: &bytes.Buffer{}})
	result := applier.Apply(editorConfig())

	assert.False(t, result.ChangesMade())
	assert.Equal(t, 4, result.Skipped)
	assert.Empty(t, handlers.Sets)
}

func TestApply_DryRun(t *testing.T) {
	handlers := apps.NewMemoryHandlers()
	out := &bytes.Buffer{}
	applier := apps.New(apps.Options{Handlers: handlers, DryRun: true, Out: out})

	result := applier.Apply(editorConfig())

	assert.True(t, result.ChangesMade())
	assert.Empty(t, handlers.Sets, "dry-run never calls duti")
	assert.Contains(t, out.String(), "DRY RUN")
}

func TestApply_FailureIsIsolated(t *testing.T) {
	handlers := apps.NewMemoryHandlers()
	handlers.SetErr["py"] = stderrors.New("duti: no such bundle")

	applier := apps.New(apps.Options{Handlers: handlers, Out: &bytes.Buffer{}})
	result := applier.Apply(editorConfig())

	assert.True(t, result.Failed())
	require.Len(t, result.Errors, 1)
	// The remaining bindings were still applied
	assert.Equal(t, "com.microsoft.VSCode", handlers.Extensions["md"])
	assert.Equal(t, "org.mozilla.firefox", handlers.URLs["http"])
}

func TestLoadConfig(t *testing.T) {
	dir := testutil.DocumentDir(t, map[string]string{
		"default-apps.toml": `
[apps.vscode]
name = "VS Code"
bundle_id = "com.microsoft.VSCode"
extensions = ["py", "js"]

[apps.firefox]
name = "Firefox"
bundle_id = "org.mozilla.firefox"
urls = ["http", "https"]
`,
	})

	cfg, err := apps.LoadConfig(filepath.Join(dir, "default-apps.toml"))

	require.NoError(t, err)
	require.Len(t, cfg.Apps, 2)
	assert.Equal(t, []string{"py", "js"}, cfg.Apps["vscode"].Extensions)
	assert.Equal(t, []string{"http", "https"}, cfg.Apps["firefox"].URLs)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := apps.LoadConfig("/nonexistent/default-apps.toml")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

const launchServicesPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>LSHandlers</key>
	<array>
		<dict>
			<key>LSHandlerRoleAll</key>
			<string>org.mozilla.firefox</string>
			<key>LSHandlerURLScheme</key>
			<string>HTTP</string>
		</dict>
		<dict>
			<key>LSHandlerContentType</key>
			<string>public.html</string>
			<key>LSHandlerRoleAll</key>
			<string>com.apple.Safari</string>
		</dict>
	</array>
</dict>
</plist>
`

func TestDutiHandlers_URLHandlerFromLaunchServices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "launchservices.plist")
	require.NoError(t, os.WriteFile(path, []byte(launchServicesPlist), 0644))

	runner := testutil.NewRecordingRunner()
	h := apps.NewDutiHandlersAt(runner, path)

	// Schemes are matched case-insensitively
	got, err := h.URLHandler("http")
	require.NoError(t, err)
	assert.Equal(t, "org.mozilla.firefox", got)

	got, err = h.URLHandler("mailto")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDutiHandlers_URLHandlerMissingPlist(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	h := apps.NewDutiHandlersAt(runner, "/nonexistent/launchservices.plist")

	got, err := h.URLHandler("http")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDutiHandlers_ExtensionHandler(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	runner.Outputs["duti -x py"] = []byte("Visual Studio Code\n/Applications/Visual Studio Code.app\ncom.microsoft.VSCode\n")

	h := apps.NewDutiHandlersAt(runner, "/nonexistent")
	got, err := h.ExtensionHandler("py")

	require.NoError(t, err)
	assert.Equal(t, "com.microsoft.VSCode", got)
}

func TestDutiHandlers_ExtensionHandlerUnset(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	runner.Errors["duti -x zig"] = stderrors.New("exit status 1")

	h := apps.NewDutiHandlersAt(runner, "/nonexistent")
	got, err := h.ExtensionHandler("zig")

	require.NoError(t, err, "an unregistered extension is not an error")
	assert.Empty(t, got)
}

func TestDutiHandlers_SetCalls(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	h := apps.NewDutiHandlersAt(runner, "/nonexistent")

	require.NoError(t, h.SetExtensionHandler("py", "com.microsoft.VSCode"))
	require.NoError(t, h.SetURLHandler("http", "org.mozilla.firefox"))

	assert.Equal(t, []string{
		"duti -s com.microsoft.VSCode .py all",
		"duti -s org.mozilla.firefox http viewer",
	}, runner.Calls)
}

func TestDutiHandlers_Available(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	h := apps.NewDutiHandlersAt(runner, "/nonexistent")
	assert.True(t, h.Available())

	runner.Missing["duti"] = true
	assert.False(t, h.Available())
}
