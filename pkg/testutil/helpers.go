package testutil

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
)

var errNotInstalled = stderrors.New("executable file not found in $PATH")

// WriteDocument writes a preference document into dir and returns its path
func WriteDocument(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing document %s: %v", name, err)
	}
	return path
}

// DocumentDir creates a temp directory populated with the given documents,
// keyed by filename
func DocumentDir(t *testing.T, docs map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range docs {
		WriteDocument(t, dir, name, content)
	}
	return dir
}
