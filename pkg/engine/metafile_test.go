package engine

import (
	"testing"

	"github.com/arthur-debert/packwise/pkg/compose"
	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetsFromMetafile(t *testing.T) {
	cfg := compose.Compose(types.Env{BuildMode: types.BuildModeDevelopment}, testProject("/site"))
	raw := `{
  "inputs": {},
  "outputs": {
    "../public/js/app.js": {"bytes": 120, "entryPoint": "packwise:entry"},
    "../public/js/app.css": {"bytes": 24},
    "../public/js/app.js.map": {"bytes": 300}
  }
}`

	assets, err := Assets(cfg, raw)
	require.NoError(t, err)
	assert.Equal(t, []Asset{
		{Path: "css/app.css", Bytes: 24},
		{Path: "js/app.js", Bytes: 120, EntryPoint: "packwise:entry"},
		{Path: "js/app.js.map", Bytes: 300},
	}, assets)
}

func TestAssetsWithInlineStyles(t *testing.T) {
	cfg := compose.Compose(types.Env{BuildMode: types.BuildModeDevelopment, HotReload: true}, testProject("/site"))

	assets, err := Assets(cfg, `{"outputs": {"../public/js/app.css": {"bytes": 8}}}`)
	require.NoError(t, err)
	assert.Equal(t, []Asset{{Path: "js/app.css", Bytes: 8}}, assets)
}

func TestAssetsEmptyAndInvalid(t *testing.T) {
	cfg := compose.Compose(types.Env{BuildMode: types.BuildModeDevelopment}, testProject("/site"))

	assets, err := Assets(cfg, "")
	require.NoError(t, err)
	assert.Empty(t, assets)

	_, err = Assets(cfg, "{")
	assert.Error(t, err)
}
