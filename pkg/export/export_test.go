package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/packwise/pkg/compose"
	"github.com/arthur-debert/packwise/pkg/errors"
	"github.com/arthur-debert/packwise/pkg/export"
	"github.com/arthur-debert/packwise/pkg/rules"
	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testProject() types.Project {
	return types.Project{
		Root:      "/srv/site",
		Context:   "app",
		Entry:     "./app.jsx",
		OutputDir: "public",
		Dev:       types.DevSettings{Host: "0.0.0.0", Port: 8080, PublicHost: "localhost"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want export.Format
	}{
		{"", export.FormatJSON},
		{"json", export.FormatJSON},
		{"JSON", export.FormatJSON},
		{"yaml", export.FormatYAML},
		{" yml ", export.FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := export.ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := export.ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExportFormat))
}

func TestWrite_JSON(t *testing.T) {
	env := types.Env{BuildMode: types.BuildModeDevelopment}
	cfg := compose.Compose(env, testProject())

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, cfg, export.FormatJSON))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "/srv/site/app", decoded["context"])
	assert.Contains(t, decoded, "devServer")
	assert.Contains(t, buf.String(), "\n  \"entry\"")

	output := decoded["output"].(map[string]interface{})
	assert.Equal(t, "js/app.js", output["filename"])
	assert.Equal(t, "/", output["publicPath"])
}

func TestWrite_JSONProductionHasNoDevServer(t *testing.T) {
	env := types.Env{BuildMode: types.BuildModeProduction}
	cfg := compose.Compose(env, testProject())

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, cfg, export.FormatJSON))
	assert.NotContains(t, buf.String(), "devServer")
	assert.Contains(t, buf.String(), `"uglify"`)
}

func TestWrite_YAML(t *testing.T) {
	env := types.Env{BuildMode: types.BuildModeDevelopment, HotReload: true}
	cfg := compose.Compose(env, testProject())

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, cfg, export.FormatYAML))

	var decoded struct {
		Entry  []string `yaml:"entry"`
		Output struct {
			PublicPath string `yaml:"publicPath"`
		} `yaml:"output"`
		DevServer struct {
			Port int `yaml:"port"`
		} `yaml:"devServer"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Entry, 3)
	assert.Equal(t, "./app.jsx", decoded.Entry[2])
	assert.Equal(t, "http://localhost:8080/", decoded.Output.PublicPath)
	assert.Equal(t, 8080, decoded.DevServer.Port)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := export.Write(&bytes.Buffer{}, types.Configuration{}, export.Format("xml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExportFormat))
}

func TestPipeline(t *testing.T) {
	image, ok := rules.Select(types.ClassImage, false, types.BuildModeDevelopment)
	require.True(t, ok)
	assert.Equal(t, "url?limit=10000!img?minimize=true", export.Pipeline(image))

	style, ok := rules.Select(types.ClassSCSS, true, types.BuildModeDevelopment)
	require.True(t, ok)
	assert.Equal(t, "style!css!postcss!resolve-url!sass", export.Pipeline(style))

	prod, ok := rules.Select(types.ClassStyle, false, types.BuildModeProduction)
	require.True(t, ok)
	assert.Equal(t, "css?minimize=true!postcss!resolve-url", export.Pipeline(prod))
}

func TestRulesData(t *testing.T) {
	data := export.RulesData(types.Env{BuildMode: types.BuildModeDevelopment})

	require.Len(t, data, 1+len(types.FileClasses))
	assert.Equal(t, []string{"Class", "Test", "Strategy", "Pipeline"}, data[0])

	assert.Equal(t, "script", data[1][0])
	assert.Equal(t, "-", data[1][2])
	assert.Equal(t, "babel?hot=false", data[1][3])

	assert.Equal(t, "css", data[2][0])
	assert.Equal(t, "extract", data[2][2])
}

func TestRulesTable(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	out, err := export.RulesTable(types.Env{BuildMode: types.BuildModeDevelopment, HotReload: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 1+len(types.FileClasses))
	assert.Contains(t, lines[0], "Pipeline")
	assert.Contains(t, out, "babel?hot=true")
	assert.Contains(t, out, "inline")
}
