package compose

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/packwise/pkg/rules"
	"github.com/arthur-debert/packwise/pkg/types"
)

// Output name patterns
const (
	BundleFilename = "js/app.js"
	ChunkFilename  = "js/[name]_[id]_[hash].js"
	StyleFilename  = "css/[name].css"
)

// Virtual entry modules served by the build engine while hot reloading
const (
	ReloadClientEntry = "live-reload/client"
	HotAcceptorEntry  = "live-reload/hot-acceptor"
)

// Option customizes a composition
type Option func(*options)

type options struct {
	progress types.ProgressHandler
}

// WithProgressHandler attaches the handler the progress plugin forwards to
func WithProgressHandler(h types.ProgressHandler) Option {
	return func(o *options) {
		o.progress = h
	}
}

// Compose builds the configuration for env and project
func Compose(env types.Env, project types.Project, opts ...Option) types.Configuration {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	outputDir := filepath.Join(project.Root, project.OutputDir)

	cfg := types.Configuration{
		Context: filepath.Join(project.Root, project.Context),
		Entry:   Entries(env, project),
		Output: types.Output{
			Path:          outputDir,
			PublicPath:    publicPath(env, project),
			Filename:      BundleFilename,
			ChunkFilename: ChunkFilename,
		},
		Plugins: Plugins(env, o.progress),
		Resolve: types.Resolve{
			Alias: map[string]string{
				"img": filepath.Join(outputDir, "img"),
			},
			SearchDirs: []string{"node_modules", "bower_components"},
			Extensions: []string{"", ".js", ".jsx", ".es6", ".css", ".scss"},
		},
		ResolveLoader: types.ResolveLoader{
			SearchDirs:      []string{"node_modules"},
			Extensions:      []string{"", ".webpack-loader.js", ".web-loader.js", ".loader.js", ".js"},
			PackageMains:    []string{"webpackLoader", "webLoader", "loader", "main"},
			ModuleTemplates: []string{"*-webpack-loader", "*-web-loader", "*-loader", "*"},
		},
		Module: types.Module{
			Rules:   rules.All(env),
			NoParse: []string{`.min.js$`},
		},
		ImageOptions: rules.ImageOptions(),
		Stats:        DefaultStats(),
	}

	if !env.Production() {
		cfg.DevServer = devServer(project, outputDir)
	}
	return cfg
}

// Entries returns the entry list. The reload client must come before the
// hot acceptor and both before the application module.
func Entries(env types.Env, project types.Project) []string {
	entries := []string{project.Entry}
	if env.HotModuleReplacement() {
		client := fmt.Sprintf("%s?http://%s:%d/", ReloadClientEntry, project.Dev.PublicHost, project.Dev.Port)
		entries = append([]string{client, HotAcceptorEntry}, entries...)
	}
	return entries
}

func publicPath(env types.Env, project types.Project) string {
	if env.HotReload {
		return fmt.Sprintf("http://%s:%d/", project.Dev.PublicHost, project.Dev.Port)
	}
	return "/"
}

func devServer(project types.Project, outputDir string) *types.DevServer {
	return &types.DevServer{
		Stats: DefaultStats(),
		Host:  project.Dev.Host,
		Port:  project.Dev.Port,
		Headers: map[string]string{
			"Access-Control-Allow-Origin": "*",
		},
		PublicPath:  fmt.Sprintf("http://%s:%d/", project.Dev.Host, project.Dev.Port),
		ContentBase: outputDir,
	}
}

// DefaultStats is the build reporting preset
func DefaultStats() types.Stats {
	return types.Stats{
		Hash:         true,
		Timings:      true,
		Assets:       true,
		ErrorDetails: true,
		AssetsSort:   "chunkNames",
	}
}
