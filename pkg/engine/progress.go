package engine

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/evanw/esbuild/pkg/api"
)

// tracker counts resolved and loaded modules. esbuild calls plugins from
// several goroutines; the handler only ever sees one event at a time.
type tracker struct {
	mu       sync.Mutex
	handler  types.ProgressHandler
	resolved map[string]struct{}
	loaded   int
}

func newTracker(handler types.ProgressHandler) *tracker {
	return &tracker{handler: handler, resolved: make(map[string]struct{})}
}

func (t *tracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resolved = make(map[string]struct{})
	t.loaded = 0
}

func (t *tracker) resolve(namespace, dir, path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resolved[namespace+"\x00"+dir+"\x00"+path] = struct{}{}
}

func (t *tracker) load() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.loaded++
	total := len(t.resolved)
	if total < t.loaded {
		total = t.loaded
	}
	t.emit(float64(t.loaded)/float64(total), fmt.Sprintf("%d/%d building modules", t.loaded, total))
}

func (t *tracker) finish(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emit(1, message)
}

func (t *tracker) emit(fraction float64, message string) {
	if t.handler != nil {
		t.handler(fraction, message)
	}
}

// plugin observes every resolve and load without handling them; it must be
// registered first to see all of them
func (t *tracker) plugin() api.Plugin {
	return api.Plugin{
		Name: "packwise-progress",
		Setup: func(build api.PluginBuild) {
			build.OnStart(func() (api.OnStartResult, error) {
				t.reset()
				return api.OnStartResult{}, nil
			})

			build.OnResolve(api.OnResolveOptions{Filter: ".*"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					t.resolve(args.Namespace, args.ResolveDir, args.Path)
					return api.OnResolveResult{}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: ".*"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					t.load()
					return api.OnLoadResult{}, nil
				})

			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				t.finish("emitting")
				return api.OnEndResult{}, nil
			})
		},
	}
}
