package compose

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProject() types.Project {
	return types.Project{
		Root:      "/work/site",
		Context:   "app",
		Entry:     "./app.jsx",
		OutputDir: "public",
		Dev: types.DevSettings{
			Host:       "0.0.0.0",
			Port:       8080,
			PublicHost: "localhost",
		},
	}
}

func env(mode types.BuildMode, hot, progress bool) types.Env {
	return types.Env{BuildMode: mode, HotReload: hot, Progress: progress}
}

func TestComposeProduction(t *testing.T) {
	cfg := Compose(env(types.BuildModeProduction, false, false), testProject())

	names := cfg.PluginNames()
	require.NotEmpty(t, names)
	assert.Equal(t, types.PluginUglify, names[len(names)-1])
	assert.NotContains(t, names, types.PluginHotModuleReplacement)
	assert.NotContains(t, names, types.PluginProgress)
	assert.Nil(t, cfg.DevServer)

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	_, present := decoded["devServer"]
	assert.False(t, present, "devServer must be absent, not null")

	uglify, ok := cfg.Plugin(types.PluginUglify)
	require.True(t, ok)
	opts := uglify.Options.(types.UglifyOptions)
	assert.True(t, opts.Minimize)
	assert.False(t, opts.Comments)
	assert.True(t, opts.Compress.DropConsole)
	assert.True(t, opts.Compress.DropDebugger)
	assert.False(t, opts.Compress.Warnings)
}

func TestComposeDevelopmentHot(t *testing.T) {
	cfg := Compose(env(types.BuildModeDevelopment, true, true), testProject())

	assert.Equal(t, []string{
		"live-reload/client?http://localhost:8080/",
		"live-reload/hot-acceptor",
		"./app.jsx",
	}, cfg.Entry)

	names := cfg.PluginNames()
	assert.Equal(t, types.PluginOccurrenceOrder, names[0])
	assert.Contains(t, names, types.PluginProgress)
	assert.Contains(t, names, types.PluginHotModuleReplacement)
	assert.NotContains(t, names, types.PluginExtractText)
	assert.NotContains(t, names, types.PluginUglify)

	assert.Equal(t, "http://localhost:8080/", cfg.Output.PublicPath)
	require.NotNil(t, cfg.DevServer)
}

func TestComposePluginOrder(t *testing.T) {
	tests := []struct {
		name     string
		env      types.Env
		expected []types.PluginName
	}{
		{
			name: "development",
			env:  env(types.BuildModeDevelopment, false, false),
			expected: []types.PluginName{
				types.PluginNoErrors, types.PluginDefine, types.PluginCommonsChunk,
				types.PluginResolver, types.PluginIgnore, types.PluginExtractText,
			},
		},
		{
			name: "development hot progress",
			env:  env(types.BuildModeDevelopment, true, true),
			expected: []types.PluginName{
				types.PluginOccurrenceOrder,
				types.PluginNoErrors, types.PluginDefine, types.PluginCommonsChunk,
				types.PluginResolver, types.PluginIgnore,
				types.PluginProgress, types.PluginHotModuleReplacement,
			},
		},
		{
			name: "production progress",
			env:  env(types.BuildModeProduction, false, true),
			expected: []types.PluginName{
				types.PluginNoErrors, types.PluginDefine, types.PluginCommonsChunk,
				types.PluginResolver, types.PluginIgnore, types.PluginExtractText,
				types.PluginProgress, types.PluginUglify,
			},
		},
		{
			name: "production hot",
			env:  env(types.BuildModeProduction, true, false),
			expected: []types.PluginName{
				types.PluginOccurrenceOrder,
				types.PluginNoErrors, types.PluginDefine, types.PluginCommonsChunk,
				types.PluginResolver, types.PluginIgnore, types.PluginUglify,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.Configuration{Plugins: Plugins(tt.env, nil)}
			assert.Equal(t, tt.expected, cfg.PluginNames())
		})
	}
}

func TestComposeProductionHotHasNoReloadEntries(t *testing.T) {
	cfg := Compose(env(types.BuildModeProduction, true, false), testProject())
	assert.Equal(t, []string{"./app.jsx"}, cfg.Entry)

	css, ok := cfg.Rule(types.ClassStyle)
	require.True(t, ok)
	assert.Equal(t, types.StrategyInline, css.Strategy)
}

func TestComposeStyleStrategyIsGlobal(t *testing.T) {
	for _, mode := range []types.BuildMode{types.BuildModeDevelopment, types.BuildModeProduction} {
		for _, hot := range []bool{false, true} {
			e := env(mode, hot, false)
			cfg := Compose(e, testProject())

			css, ok := cfg.Rule(types.ClassStyle)
			require.True(t, ok)
			scss, ok := cfg.Rule(types.ClassSCSS)
			require.True(t, ok)

			assert.Equal(t, e.StyleStrategy(), css.Strategy)
			assert.Equal(t, css.Strategy, scss.Strategy)

			_, extract := cfg.Plugin(types.PluginExtractText)
			assert.Equal(t, css.Strategy == types.StrategyExtract, extract)
		}
	}
}

func TestComposeOutputAndResolve(t *testing.T) {
	cfg := Compose(env(types.BuildModeDevelopment, false, false), testProject())

	assert.Equal(t, filepath.Join("/work/site", "app"), cfg.Context)
	assert.Equal(t, filepath.Join("/work/site", "public"), cfg.Output.Path)
	assert.Equal(t, "/", cfg.Output.PublicPath)
	assert.Equal(t, "js/app.js", cfg.Output.Filename)
	assert.Equal(t, "js/[name]_[id]_[hash].js", cfg.Output.ChunkFilename)

	assert.Equal(t, filepath.Join("/work/site", "public", "img"), cfg.Resolve.Alias["img"])
	assert.Equal(t, []string{"node_modules", "bower_components"}, cfg.Resolve.SearchDirs)
	assert.Equal(t, []string{"", ".js", ".jsx", ".es6", ".css", ".scss"}, cfg.Resolve.Extensions)
	assert.Equal(t, []string{"webpackLoader", "webLoader", "loader", "main"}, cfg.ResolveLoader.PackageMains)
	assert.Equal(t, []string{`.min.js$`}, cfg.Module.NoParse)
	assert.Len(t, cfg.Module.Rules, 4)
}

func TestComposeDevServer(t *testing.T) {
	cfg := Compose(env(types.BuildModeDevelopment, false, false), testProject())

	require.NotNil(t, cfg.DevServer)
	assert.Equal(t, "0.0.0.0", cfg.DevServer.Host)
	assert.Equal(t, 8080, cfg.DevServer.Port)
	assert.Equal(t, "*", cfg.DevServer.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "http://0.0.0.0:8080/", cfg.DevServer.PublicPath)
	assert.Equal(t, cfg.Output.Path, cfg.DevServer.ContentBase)
	assert.Equal(t, cfg.Stats, cfg.DevServer.Stats)
}

func TestComposeDefine(t *testing.T) {
	for _, mode := range []types.BuildMode{types.BuildModeDevelopment, types.BuildModeProduction} {
		cfg := Compose(env(mode, false, false), testProject())
		define, ok := cfg.Plugin(types.PluginDefine)
		require.True(t, ok)
		assert.Equal(t, `"`+mode.String()+`"`, define.Options.(types.DefineOptions).Definitions["NODE_ENV"])
	}
}

func TestComposeResolverDescriptors(t *testing.T) {
	cfg := Compose(env(types.BuildModeDevelopment, false, false), testProject())
	resolver, ok := cfg.Plugin(types.PluginResolver)
	require.True(t, ok)

	opts := resolver.Options.(types.ResolverOptions)
	assert.Equal(t, []string{".bower.json", "bower.json", "component.json", "package.json"}, opts.Descriptors)
	assert.Equal(t, []string{"normal", "context"}, opts.Targets)
}

func TestComposeProgressHandler(t *testing.T) {
	var got []string
	handler := func(_ float64, msg string) { got = append(got, msg) }

	cfg := Compose(env(types.BuildModeDevelopment, false, true), testProject(), WithProgressHandler(handler))
	progress, ok := cfg.Plugin(types.PluginProgress)
	require.True(t, ok)
	require.NotNil(t, progress.Handler)

	progress.Handler(0.5, "1/2 building modules")
	assert.Equal(t, []string{"1/2 building modules"}, got)
}

func TestComposeIsDeterministic(t *testing.T) {
	e := env(types.BuildModeProduction, false, true)
	assert.Equal(t, Compose(e, testProject()), Compose(e, testProject()))
}
