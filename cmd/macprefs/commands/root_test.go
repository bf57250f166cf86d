package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCmd()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setupConfigDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("MACPREFS_CONFIG_DIR", dir)
	t.Setenv("MACPREFS_DEFAULTS_DIR", "")
	t.Setenv("MACPREFS_APPS_CONFIG", "")
	t.Setenv("MACPREFS_FSFLAGS_CONFIG", "")
	return dir
}

func TestRootCmd_NoSubcommand(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "macprefs version")
	assert.Contains(t, out, "commit:")
}

func TestCompletionCmd(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "macprefs")
}

func TestCompletionCmd_InvalidShell(t *testing.T) {
	_, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestApplyCmd_MissingDocumentsDir(t *testing.T) {
	setupConfigDir(t)

	out, err := execute(t, "apply")
	require.NoError(t, err)
	assert.Contains(t, out, "No preference documents found")
}

func TestApplyCmd_EmptyDocumentsDir(t *testing.T) {
	dir := setupConfigDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "defaults"), 0755))

	out, err := execute(t, "apply")
	require.NoError(t, err)
	assert.Contains(t, out, "0 changed, 0 already set")
}

func TestApplyCmd_BrokenDocument(t *testing.T) {
	dir := setupConfigDir(t)
	docsDir := filepath.Join(dir, "defaults")
	require.NoError(t, os.MkdirAll(docsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "broken.toml"), []byte("not [valid toml"), 0644))

	out, err := execute(t, "apply")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, out, "1 errors")
}

func TestApplyCmd_ChangedExitCodeInDryRun(t *testing.T) {
	dir := setupConfigDir(t)
	docsDir := filepath.Join(dir, "defaults")
	require.NoError(t, os.MkdirAll(docsDir, 0755))
	doc := `
[data."com.example.test"]
SomeKey = true
`
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "test.toml"), []byte(doc), 0644))

	_, err := execute(t, "apply", "--dry-run", "--changed-exit-code", "2")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Empty(t, exitErr.Message)
}

func TestAppsCmd_MissingConfig(t *testing.T) {
	setupConfigDir(t)

	out, err := execute(t, "apps")
	require.NoError(t, err)
	assert.Contains(t, out, "No application config found")
}

func TestFSFlagsCmd_MissingConfig(t *testing.T) {
	setupConfigDir(t)

	out, err := execute(t, "fsflags")
	require.NoError(t, err)
	assert.Contains(t, out, "No file flag config found")
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "3 errors recorded", (&ExitError{Code: 1, Message: "3 errors recorded"}).Error())
	assert.Equal(t, "exit code 2", (&ExitError{Code: 2}).Error())
}
