// Package testutil holds fixtures shared by package tests
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTree builds a directory tree under root. Keys are slash-separated
// relative paths; a key ending in "/" creates a directory, any other key
// creates a file holding the mapped content.
func CreateTree(t *testing.T, root string, structure map[string]string) {
	t.Helper()
	for rel, content := range structure {
		fullPath := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(fullPath, 0o755), "Failed to create dir %s", fullPath)
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755), "Failed to create parent of %s", fullPath)
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644), "Failed to write file %s", fullPath)
	}
}

// TempTree creates a fresh temp directory populated by CreateTree and
// returns its absolute path.
func TempTree(t *testing.T, structure map[string]string) string {
	t.Helper()
	root := t.TempDir()
	CreateTree(t, root, structure)
	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	return abs
}

// Abs joins slash-separated rel onto root
func Abs(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
