package prefs_test

import (
	"testing"

	"github.com/arthur-debert/macprefs/pkg/errors"
	"github.com/arthur-debert/macprefs/pkg/prefs"
	"github.com/arthur-debert/macprefs/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Directory(t *testing.T) {
	dir := testutil.DocumentDir(t, map[string]string{
		"finder.toml": `
description = "Finder tweaks"
kill = ["Finder"]

[data."com.apple.finder"]
AppleShowAllFiles = true
`,
		"dock.toml": `
description = "Dock layout"

[data."com.apple.dock"]
orientation = "left"
tilesize = 48
`,
	})

	docs, errs := prefs.Load(dir)
	require.Empty(t, errs)
	require.Len(t, docs, 2)

	// Sorted by filename: dock before finder
	assert.Equal(t, "dock.toml", docs[0].Name)
	assert.Equal(t, "finder.toml", docs[1].Name)

	dock := docs[0]
	require.Len(t, dock.Domains, 1)
	assert.Equal(t, "com.apple.dock", dock.Domains[0].Domain)
	assert.Equal(t, "left", dock.Domains[0].Settings["orientation"])
	assert.Equal(t, int64(48), dock.Domains[0].Settings["tilesize"])

	finder := docs[1]
	assert.Equal(t, []string{"Finder"}, finder.Kill)
	assert.Equal(t, "Finder tweaks", finder.Description)
}

func TestLoad_SingleFile(t *testing.T) {
	dir := testutil.DocumentDir(t, map[string]string{
		"keyboard.toml": `
current_host = true

[data.NSGlobalDomain]
InitialKeyRepeat = 15
`,
	})

	docs, errs := prefs.Load(dir + "/keyboard.toml")
	require.Empty(t, errs)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].CurrentHost)
	assert.Equal(t, "NSGlobalDomain", docs[0].Domains[0].Domain)
}

func TestLoad_MalformedFileIsIsolated(t *testing.T) {
	dir := testutil.DocumentDir(t, map[string]string{
		"good.toml": `
[data."com.apple.finder"]
ShowPathbar = true
`,
		"broken.toml": `description = "no closing quote`,
	})

	docs, errs := prefs.Load(dir)

	require.Len(t, errs, 1)
	assert.True(t, errors.IsErrorCode(errs[0], errors.ErrDocumentParse))
	require.Len(t, docs, 1)
	assert.Equal(t, "good.toml", docs[0].Name)
}

func TestLoad_MissingPath(t *testing.T) {
	docs, errs := prefs.Load("/nonexistent/macprefs-test")

	assert.Empty(t, docs)
	require.Len(t, errs, 1)
	assert.True(t, errors.IsErrorCode(errs[0], errors.ErrNotFound))
}

func TestLoad_UnsupportedValueKind(t *testing.T) {
	dir := testutil.DocumentDir(t, map[string]string{
		"dates.toml": `
[data."com.example.app"]
updated = 2024-01-01
`,
	})

	docs, errs := prefs.Load(dir)

	assert.Empty(t, docs)
	require.Len(t, errs, 1)
	assert.True(t, errors.IsErrorCode(errs[0], errors.ErrDocumentValue))
}

func TestLoad_EmptyDataIsNotAnError(t *testing.T) {
	dir := testutil.DocumentDir(t, map[string]string{
		"todo.toml": `description = "nothing here yet"`,
	})

	docs, errs := prefs.Load(dir)

	require.Empty(t, errs)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].Empty())
}

func TestLoad_IgnoresNonDocuments(t *testing.T) {
	dir := testutil.DocumentDir(t, map[string]string{
		"notes.md": "# not a document",
		"good.toml": `
[data."com.apple.dock"]
autohide = true
`,
	})

	docs, errs := prefs.Load(dir)

	require.Empty(t, errs)
	require.Len(t, docs, 1)
	assert.Equal(t, "good.toml", docs[0].Name)
}

func TestLoad_NestedSettings(t *testing.T) {
	dir := testutil.DocumentDir(t, map[string]string{
		"symbolichotkeys.toml": `
[data."com.apple.symbolichotkeys"]
AppleSymbolicHotKeys = { "64" = { enabled = false, value = { type = "standard", parameters = [65535, 49, 1048576] } } }
`,
	})

	docs, errs := prefs.Load(dir)
	require.Empty(t, errs)
	require.Len(t, docs, 1)

	hotkeys, ok := docs[0].Domains[0].Settings["AppleSymbolicHotKeys"].(map[string]any)
	require.True(t, ok)
	entry, ok := hotkeys["64"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, entry["enabled"])
}
