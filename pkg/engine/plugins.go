package engine

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/packwise/pkg/compose"
	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/evanw/esbuild/pkg/api"
)

const (
	entryNamespace  = "packwise-entry"
	liveNamespace   = "packwise-live"
	ignoreNamespace = "packwise-ignore"
)

// entryPlugin serves the virtual entry module
func (e *Engine) entryPlugin() api.Plugin {
	return api.Plugin{
		Name: "packwise-entry",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: "^" + regexp.QuoteMeta(EntryModule) + "$"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{Path: EntryModule, Namespace: entryNamespace}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: entryNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					contents := EntrySource(e.cfg.Entry)
					return api.OnLoadResult{
						Contents:   &contents,
						ResolveDir: e.cfg.Context,
						Loader:     api.LoaderJS,
					}, nil
				})
		},
	}
}

// EntrySource imports every entry in order
func EntrySource(entries []string) string {
	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "import %s;\n", strconv.Quote(entry))
	}
	return b.String()
}

// livePlugin serves the reload client and hot acceptor modules
func (e *Engine) livePlugin() api.Plugin {
	return api.Plugin{
		Name: "packwise-live-reload",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: "^live-reload/"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{Path: args.Path, Namespace: liveNamespace}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: liveNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					contents, err := LiveModuleSource(args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					return api.OnLoadResult{Contents: &contents, Loader: api.LoaderJS}, nil
				})
		},
	}
}

// aliasPlugin rewrites requests starting with an alias onto its target
func (e *Engine) aliasPlugin() api.Plugin {
	aliases := make([]string, 0, len(e.cfg.Resolve.Alias))
	for name := range e.cfg.Resolve.Alias {
		aliases = append(aliases, name)
	}
	sort.Strings(aliases)

	return api.Plugin{
		Name: "packwise-alias",
		Setup: func(build api.PluginBuild) {
			for _, name := range aliases {
				target := e.cfg.Resolve.Alias[name]
				filter := "^" + regexp.QuoteMeta(name) + "(/.*)?$"
				build.OnResolve(api.OnResolveOptions{Filter: filter},
					func(args api.OnResolveArgs) (api.OnResolveResult, error) {
						rest := strings.TrimPrefix(args.Path, name)
						path := filepath.Join(target, filepath.FromSlash(rest))
						if resolved, ok := e.completeFile(path); ok {
							path = resolved
						}
						return api.OnResolveResult{Path: path}, nil
					})
			}
		},
	}
}

// completeFile finds path itself or path with one of the resolve extensions
func (e *Engine) completeFile(path string) (string, bool) {
	for _, ext := range e.cfg.Resolve.Extensions {
		if info, err := e.fs.Stat(path + ext); err == nil && !info.IsDir() {
			return path + ext, true
		}
	}
	return "", false
}

// ignorePlugin replaces modules matching the ignore pattern with an empty
// module
func (e *Engine) ignorePlugin(opts types.IgnoreOptions) api.Plugin {
	return api.Plugin{
		Name: "packwise-ignore",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: opts.Pattern},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					e.logger.Debug().Str("module", args.Path).Msg("Ignoring module")
					return api.OnResolveResult{Path: args.Path, Namespace: ignoreNamespace}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: ignoreNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					empty := ""
					return api.OnLoadResult{Contents: &empty, Loader: api.LoaderJS}, nil
				})
		},
	}
}

// resolverPlugin resolves bare module requests through package descriptors
// in the resolve search directories. Requests it cannot resolve fall through
// to esbuild's own resolution.
func (e *Engine) resolverPlugin() api.Plugin {
	return api.Plugin{
		Name: "packwise-descriptor-resolver",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `^[^./]`, Namespace: "file"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					if args.Kind == api.ResolveEntryPoint || args.ResolveDir == "" {
						return api.OnResolveResult{}, nil
					}

					res, found, err := e.resolver.ResolveModule(args.Path, args.ResolveDir, e.cfg.Resolve.SearchDirs)
					if err != nil {
						return api.OnResolveResult{}, err
					}
					if !found {
						return api.OnResolveResult{}, nil
					}

					e.logger.Trace().
						Str("module", args.Path).
						Str("descriptor", res.Descriptor).
						Str("path", res.Path).
						Msg("Resolved through descriptor")
					return api.OnResolveResult{Path: res.Path}, nil
				})
		},
	}
}

// Plugins returns the esbuild plugins for the engine's configuration in
// registration order
func (e *Engine) Plugins() []api.Plugin {
	var plugins []api.Plugin

	if p, ok := e.cfg.Plugin(types.PluginProgress); ok && p.Handler != nil {
		plugins = append(plugins, e.progress.plugin())
	}

	plugins = append(plugins, e.entryPlugin())
	if hasLiveEntries(e.cfg.Entry) {
		plugins = append(plugins, e.livePlugin())
	}
	if len(e.cfg.Resolve.Alias) > 0 {
		plugins = append(plugins, e.aliasPlugin())
	}
	if p, ok := e.cfg.Plugin(types.PluginIgnore); ok {
		if opts, ok := p.Options.(types.IgnoreOptions); ok && opts.Pattern != "" {
			plugins = append(plugins, e.ignorePlugin(opts))
		}
	}
	if hasPlugin(e.cfg, types.PluginResolver) {
		plugins = append(plugins, e.resolverPlugin())
	}

	plugins = append(plugins, e.stylePlugin(), e.imagePlugin(), e.endPlugin())
	return plugins
}

func hasLiveEntries(entries []string) bool {
	for _, entry := range entries {
		if strings.HasPrefix(entry, compose.HotAcceptorEntry) || strings.HasPrefix(entry, compose.ReloadClientEntry) {
			return true
		}
	}
	return false
}
