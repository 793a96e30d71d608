package testutil

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestFSWithFiles(t *testing.T) {
	fs := NewTestFSWithFiles(t, map[string]string{
		"/mod/bower.json":  `{"main": "dist/mod.js"}`,
		"/mod/dist/mod.js": "export default 1",
		"/empty/":          "",
	})

	data, err := afero.ReadFile(fs, "/mod/bower.json")
	require.NoError(t, err)
	assert.Equal(t, `{"main": "dist/mod.js"}`, string(data))

	info, err := fs.Stat("/empty")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestClearBuildEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "production")
	ClearBuildEnv(t)

	_, set := os.LookupEnv("NODE_ENV")
	assert.False(t, set)
}
