package engine

import (
	"context"
	"hash/fnv"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/arthur-debert/packwise/pkg/errors"
	"github.com/arthur-debert/packwise/pkg/logging"
	"github.com/arthur-debert/packwise/pkg/resolve"
	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Result summarizes one build
type Result struct {
	Hash     string
	Outputs  []string
	Assets   []Asset
	Errors   []string
	Warnings []string
	Duration time.Duration
}

// Failed reports whether the build had errors
func (r Result) Failed() bool {
	return len(r.Errors) > 0
}

// Engine builds one configuration, once or repeatedly while watching
type Engine struct {
	cfg      types.Configuration
	fs       afero.Fs
	resolver *resolve.Resolver
	progress *tracker
	session  string
	logger   zerolog.Logger

	mu        sync.Mutex
	started   time.Time
	last      Result
	onRebuild func(Result)
}

// Option configures an Engine
type Option func(*Engine)

// WithFS sets the filesystem sources are read from and outputs written to
func WithFS(fs afero.Fs) Option {
	return func(e *Engine) {
		e.fs = fs
	}
}

// New creates an engine for cfg
func New(cfg types.Configuration, opts ...Option) (*Engine, error) {
	session := uuid.New().String()
	e := &Engine{
		cfg:     cfg,
		fs:      afero.NewOsFs(),
		session: session,
		logger:  logging.GetLogger("engine").With().Str("session", session).Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	var handler types.ProgressHandler
	if p, ok := cfg.Plugin(types.PluginProgress); ok {
		handler = p.Handler
	}
	e.progress = newTracker(handler)

	resolverOpts := []resolve.Option{resolve.WithExtensions(resolveExtensions(cfg.Resolve.Extensions)...)}
	if p, ok := cfg.Plugin(types.PluginResolver); ok {
		if ro, ok := p.Options.(types.ResolverOptions); ok {
			resolverOpts = append(resolverOpts, resolve.WithDescriptors(ro.Descriptors...), resolve.WithFields(ro.Fields...))
		}
	}
	r, err := resolve.New(e.fs, resolverOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrEngineSetup, "failed to create resolver")
	}
	e.resolver = r

	for _, name := range []types.PluginName{types.PluginOccurrenceOrder, types.PluginHotModuleReplacement} {
		if hasPlugin(cfg, name) {
			e.logger.Debug().Str("plugin", string(name)).Msg("Plugin has no engine counterpart; output order is already deterministic and reloads go through the dev server")
		}
	}
	return e, nil
}

// Session returns the id that tags this engine's log lines
func (e *Engine) Session() string {
	return e.session
}

// Options returns the complete esbuild options, plugins included
func (e *Engine) Options() api.BuildOptions {
	opts := BuildOptions(e.cfg)
	opts.Plugins = e.Plugins()
	return opts
}

func (e *Engine) buildContext() (api.BuildContext, error) {
	bctx, cerr := api.Context(e.Options())
	if cerr != nil {
		texts := messageTexts(cerr.Errors, e.cfg.Stats.ErrorDetails)
		for _, text := range texts {
			e.logger.Error().Str("error", text).Msg("Invalid build options")
		}
		return nil, errors.New(errors.ErrEngineSetup, "failed to set up build").
			WithDetail("errors", texts)
	}
	return bctx, nil
}

// Build runs one build. A failed build returns its result together with an
// ENGINE_BUILD error.
func (e *Engine) Build(ctx context.Context) (Result, error) {
	bctx, err := e.buildContext()
	if err != nil {
		return Result{}, err
	}
	defer bctx.Dispose()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			bctx.Cancel()
		case <-done:
		}
	}()

	e.logger.Info().Str("context", e.cfg.Context).Str("output", e.cfg.Output.Path).Msg("Building")
	bctx.Rebuild()
	close(done)

	if err := ctx.Err(); err != nil {
		return Result{}, errors.Wrap(err, errors.ErrEngineBuild, "build cancelled")
	}

	result := e.lastResult()
	if result.Failed() {
		return result, errors.Newf(errors.ErrEngineBuild, "build failed with %d errors", len(result.Errors)).
			WithDetail("errors", result.Errors)
	}
	return result, nil
}

// Watch builds, then rebuilds whenever a source changes, until ctx ends.
// onRebuild is called after every build, failed ones included.
func (e *Engine) Watch(ctx context.Context, onRebuild func(Result)) error {
	e.mu.Lock()
	e.onRebuild = onRebuild
	e.mu.Unlock()

	bctx, err := e.buildContext()
	if err != nil {
		return err
	}
	defer bctx.Dispose()

	if err := bctx.Watch(api.WatchOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrEngineSetup, "failed to start watching")
	}
	e.logger.Info().Str("context", e.cfg.Context).Msg("Watching for changes")

	<-ctx.Done()
	return nil
}

func (e *Engine) lastResult() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// endPlugin times builds and writes their outputs
func (e *Engine) endPlugin() api.Plugin {
	return api.Plugin{
		Name: "packwise-output",
		Setup: func(build api.PluginBuild) {
			build.OnStart(func() (api.OnStartResult, error) {
				e.mu.Lock()
				e.started = time.Now()
				e.mu.Unlock()
				return api.OnStartResult{}, nil
			})

			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				e.finish(result)
				return api.OnEndResult{}, nil
			})
		},
	}
}

func (e *Engine) finish(result *api.BuildResult) {
	e.mu.Lock()
	started := e.started
	onRebuild := e.onRebuild
	e.mu.Unlock()

	res := Result{
		Errors:   messageTexts(result.Errors, e.cfg.Stats.ErrorDetails),
		Warnings: messageTexts(result.Warnings, e.cfg.Stats.ErrorDetails),
	}
	if !started.IsZero() {
		res.Duration = time.Since(started)
	}

	for _, text := range res.Warnings {
		e.logger.Warn().Str("warning", text).Msg("Build warning")
	}
	for _, text := range res.Errors {
		e.logger.Error().Str("error", text).Msg("Build error")
	}

	// A failing build never replaces the previous output
	if !res.Failed() || !hasPlugin(e.cfg, types.PluginNoErrors) {
		outputs, err := e.writeOutputs(result.OutputFiles)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			e.logger.Error().Err(err).Msg("Failed to write outputs")
		}
		res.Outputs = outputs
		res.Hash = outputHash(result.OutputFiles)

		if e.cfg.Stats.Assets {
			assets, err := Assets(e.cfg, result.Metafile)
			if err != nil {
				e.logger.Warn().Err(err).Msg("Failed to read build metafile")
			}
			res.Assets = assets
		}
	}

	e.report(res)

	e.mu.Lock()
	e.last = res
	e.mu.Unlock()

	if onRebuild != nil {
		onRebuild(res)
	}
}

func (e *Engine) writeOutputs(files []api.OutputFile) ([]string, error) {
	extractTo := extractFilename(e.cfg)

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := f.Path
		if extractTo != "" {
			path = StylePath(e.cfg.Output.Path, path, extractTo)
		}

		if err := e.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, errors.Wrapf(err, errors.ErrEngineBuild, "failed to create %s", filepath.Dir(path))
		}
		if err := afero.WriteFile(e.fs, path, f.Contents, 0644); err != nil {
			return written, errors.Wrapf(err, errors.ErrEngineBuild, "failed to write %s", path)
		}
		written = append(written, path)
	}
	sort.Strings(written)
	return written, nil
}

func (e *Engine) report(res Result) {
	stats := e.cfg.Stats
	event := e.logger.Info()
	if stats.Hash && res.Hash != "" {
		event = event.Str("hash", res.Hash)
	}
	if stats.Timings {
		event = event.Dur("duration", res.Duration)
	}
	event.Int("errors", len(res.Errors)).Int("warnings", len(res.Warnings)).Msg("Build finished")

	if stats.Assets {
		for _, asset := range res.Assets {
			e.logger.Info().Str("asset", asset.Path).Int("bytes", asset.Bytes).Msg("Emitted")
		}
	}
}

// outputHash identifies a build by the contents it produced
func outputHash(files []api.OutputFile) string {
	if len(files) == 0 {
		return ""
	}
	sorted := make([]api.OutputFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	h := fnv.New64a()
	for _, f := range sorted {
		_, _ = h.Write([]byte(f.Path))
		_, _ = h.Write(f.Contents)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func messageTexts(msgs []api.Message, details bool) []string {
	texts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		text := m.Text
		if details && m.Location != nil {
			text = m.Location.File + ":" + strconv.Itoa(m.Location.Line) + ":" + strconv.Itoa(m.Location.Column) + ": " + text
		}
		if m.PluginName != "" {
			text = "[" + m.PluginName + "] " + text
		}
		texts = append(texts, text)
	}
	return texts
}
