package engine

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/packwise/pkg/rules"
	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/afero"
)

const inlineStyleTemplate = `(function () {
  var style = document.createElement("style");
  style.setAttribute("data-packwise", %s);
  style.textContent = %s;
  document.head.appendChild(style);
})();
`

// InlineStyleSource returns a module that injects css into the page
func InlineStyleSource(id, css string) string {
	return fmt.Sprintf(inlineStyleTemplate, strconv.Quote(id), strconv.Quote(css))
}

// stylePlugin loads style files according to the global style strategy:
// injected by script when inline, handed to esbuild's css bundler when
// extracted
func (e *Engine) stylePlugin() api.Plugin {
	strategy := types.StrategyExtract
	if rule, ok := e.cfg.Rule(types.ClassStyle); ok && rule.Strategy != types.StrategyNone {
		strategy = rule.Strategy
	}
	_, hasSass := e.sassRule()

	return api.Plugin{
		Name: "packwise-styles",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `\.s?css$`, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					data, err := afero.ReadFile(e.fs, args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					css := string(data)

					var warnings []api.Message
					if hasSass && strings.HasSuffix(args.Path, ".scss") {
						warnings = append(warnings, api.Message{
							Text: "sass is not run by the build engine; " + filepath.Base(args.Path) + " is bundled as plain css",
						})
					}

					if strategy == types.StrategyInline {
						contents := InlineStyleSource(e.relative(args.Path), css)
						return api.OnLoadResult{Contents: &contents, Loader: api.LoaderJS, Warnings: warnings}, nil
					}
					return api.OnLoadResult{Contents: &css, Loader: api.LoaderCSS, Warnings: warnings}, nil
				})
		},
	}
}

func (e *Engine) sassRule() (types.Rule, bool) {
	rule, ok := e.cfg.Rule(types.ClassSCSS)
	if !ok {
		return types.Rule{}, false
	}
	_, ok = rule.Step("sass")
	return rule, ok
}

// StylePath places an extracted stylesheet (or its source map) according to
// the extract-text filename pattern. Other outputs keep their path.
func StylePath(outdir, path, filename string) string {
	base := filepath.Base(path)
	suffix := ""
	switch {
	case strings.HasSuffix(base, ".css.map"):
		suffix = ".map"
		base = strings.TrimSuffix(base, ".css.map")
	case strings.HasSuffix(base, ".css"):
		base = strings.TrimSuffix(base, ".css")
	default:
		return path
	}
	name := strings.ReplaceAll(filename, "[name]", base)
	return filepath.Join(outdir, filepath.FromSlash(name)) + suffix
}

// imagePlugin inlines images below the url step's limit as data URIs and
// emits larger ones as files
func (e *Engine) imagePlugin() api.Plugin {
	limit := int64(rules.ImageInlineLimit)
	test := rules.ImageTest
	if rule, ok := e.cfg.Rule(types.ClassImage); ok {
		test = rule.Test
		if step, ok := rule.Step("url"); ok {
			if l, ok := step.Options["limit"].(int); ok {
				limit = int64(l)
			}
		}
	}

	return api.Plugin{
		Name: "packwise-images",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: test, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					data, err := afero.ReadFile(e.fs, args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					contents := string(data)
					return api.OnLoadResult{
						Contents: &contents,
						Loader:   ImageLoader(int64(len(data)), limit),
					}, nil
				})
		},
	}
}

// ImageLoader picks the loader for an image of size bytes
func ImageLoader(size, limit int64) api.Loader {
	if size < limit {
		return api.LoaderDataURL
	}
	return api.LoaderFile
}

func (e *Engine) relative(path string) string {
	if rel, err := filepath.Rel(e.cfg.Context, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
