package engine

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/evanw/esbuild/pkg/api"
)

// EntryModule is the virtual module importing all configured entries
const EntryModule = "packwise:entry"

// BuildOptions translates cfg into esbuild options, without plugins
func BuildOptions(cfg types.Configuration) api.BuildOptions {
	uglify, minify := uglifyOptions(cfg)

	opts := api.BuildOptions{
		EntryPointsAdvanced: []api.EntryPoint{
			{InputPath: EntryModule, OutputPath: trimExt(cfg.Output.Filename)},
		},
		AbsWorkingDir: cfg.Context,
		Outdir:        cfg.Output.Path,
		PublicPath:    cfg.Output.PublicPath,
		ChunkNames:    ChunkNames(cfg.Output.ChunkFilename),
		AssetNames:    "img/[name]_[hash]",
		Bundle:        true,
		Splitting:     hasPlugin(cfg, types.PluginCommonsChunk),
		Format:        api.FormatESModule,
		Write:         false,
		Metafile:      cfg.Stats.Assets,
		JSX:           api.JSXTransform,
		Define:        defines(cfg),
		Loader: map[string]api.Loader{
			".js":  api.LoaderJSX,
			".jsx": api.LoaderJSX,
			".es6": api.LoaderJS,
		},
		ResolveExtensions: resolveExtensions(cfg.Resolve.Extensions),
		MinifyWhitespace:  minify,
		MinifyIdentifiers: minify,
		MinifySyntax:      minify,
		Sourcemap:         cond(uglify != nil && !uglify.SourceMap, api.SourceMapNone, api.SourceMapLinked),
		LogLevel:          api.LogLevelSilent,
	}

	if uglify != nil {
		if uglify.Compress.DropConsole {
			opts.Drop |= api.DropConsole
		}
		if uglify.Compress.DropDebugger {
			opts.Drop |= api.DropDebugger
		}
		if !uglify.Comments {
			opts.LegalComments = api.LegalCommentsNone
		}
	}
	return opts
}

// ChunkNames converts a chunk filename pattern into esbuild's chunk name
// template. esbuild has no chunk ids; chunk hashes already keep names
// stable across builds.
func ChunkNames(chunkFilename string) string {
	name := trimExt(chunkFilename)
	name = strings.ReplaceAll(name, "_[id]", "")
	name = strings.ReplaceAll(name, "[id]", "")
	return name
}

func uglifyOptions(cfg types.Configuration) (*types.UglifyOptions, bool) {
	p, ok := cfg.Plugin(types.PluginUglify)
	if !ok {
		return nil, false
	}
	opts, ok := p.Options.(types.UglifyOptions)
	if !ok {
		return nil, false
	}
	return &opts, opts.Minimize
}

func defines(cfg types.Configuration) map[string]string {
	p, ok := cfg.Plugin(types.PluginDefine)
	if !ok {
		return nil
	}
	opts, ok := p.Options.(types.DefineOptions)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(opts.Definitions)+1)
	for k, v := range opts.Definitions {
		out[k] = v
	}
	if mode, ok := opts.Definitions["NODE_ENV"]; ok {
		out["process.env.NODE_ENV"] = mode
	}
	return out
}

func resolveExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext != "" {
			out = append(out, ext)
		}
	}
	return out
}

func hasPlugin(cfg types.Configuration, name types.PluginName) bool {
	_, ok := cfg.Plugin(name)
	return ok
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
