package testutil

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() afero.Fs {
	return afero.NewMemMapFs()
}

// NewTestFSWithFiles creates an in-memory filesystem holding files
func NewTestFSWithFiles(t testing.TB, files map[string]string) afero.Fs {
	t.Helper()
	fs := NewTestFS()
	WriteFiles(t, fs, files)
	return fs
}

// WriteFiles writes every path -> content pair, creating parent directories.
// A path ending in "/" creates an empty directory.
func WriteFiles(t testing.TB, fs afero.Fs, files map[string]string) {
	t.Helper()

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if p[len(p)-1] == '/' {
			require.NoError(t, fs.MkdirAll(filepath.FromSlash(p), 0755))
			continue
		}
		path := filepath.FromSlash(p)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(files[p]), 0644))
	}
}
