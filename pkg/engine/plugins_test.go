package engine

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/arthur-debert/packwise/pkg/errors"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrySource(t *testing.T) {
	src := EntrySource([]string{
		"live-reload/client?http://localhost:8080/",
		"live-reload/hot-acceptor",
		"./app.jsx",
	})

	assert.Equal(t, `import "live-reload/client?http://localhost:8080/";
import "live-reload/hot-acceptor";
import "./app.jsx";
`, src)
}

func TestReloadURL(t *testing.T) {
	tests := []struct {
		query    string
		expected string
		ok       bool
	}{
		{"?http://localhost:8080/", "ws://localhost:8080/__livereload", true},
		{"?https://dev.example.com/", "wss://dev.example.com/__livereload", true},
		{"?http://192.168.0.100:8080", "ws://192.168.0.100:8080/__livereload", true},
		{"", "", false},
		{"?not a url", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := ReloadURL(tt.query)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLiveModuleSource(t *testing.T) {
	client, err := LiveModuleSource("live-reload/client?http://localhost:8080/")
	require.NoError(t, err)
	assert.Contains(t, client, `"ws://localhost:8080/__livereload"`)
	assert.Contains(t, client, `"packwise:reload"`)

	acceptor, err := LiveModuleSource("live-reload/hot-acceptor")
	require.NoError(t, err)
	assert.Contains(t, acceptor, `addEventListener("packwise:reload"`)

	_, err = LiveModuleSource("live-reload/other")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestInlineStyleSource(t *testing.T) {
	src := InlineStyleSource("styles/main.css", "body { content: \"x\"; }\n")
	assert.Contains(t, src, `style.setAttribute("data-packwise", "styles/main.css")`)
	assert.Contains(t, src, `style.textContent = "body { content: \"x\"; }\n"`)
}

func TestStylePath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/site/public/js/app.css", "/site/public/css/app.css"},
		{"/site/public/js/app.css.map", "/site/public/css/app.css.map"},
		{"/site/public/js/app.js", "/site/public/js/app.js"},
		{"/site/public/js/vendor_ABC.css", "/site/public/css/vendor_ABC.css"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, StylePath("/site/public", tt.path, "css/[name].css"))
		})
	}
}

func TestImageLoader(t *testing.T) {
	assert.Equal(t, api.LoaderDataURL, ImageLoader(9999, 10000))
	assert.Equal(t, api.LoaderFile, ImageLoader(10000, 10000))
	assert.Equal(t, api.LoaderFile, ImageLoader(50000, 10000))
}

func TestTracker(t *testing.T) {
	var mu sync.Mutex
	var messages []string
	tr := newTracker(func(_ float64, msg string) {
		mu.Lock()
		defer mu.Unlock()
		messages = append(messages, msg)
	})

	tr.resolve("file", "/app", "./a.js")
	tr.resolve("file", "/app", "./a.js")
	tr.resolve("file", "/app", "./b.js")
	tr.resolve("file", "/app", "./c.js")
	tr.load()
	tr.load()
	tr.finish("emitting")

	assert.Equal(t, []string{"1/3 building modules", "2/3 building modules", "emitting"}, messages)

	tr.reset()
	messages = nil
	tr.load()
	assert.Equal(t, []string{"1/1 building modules"}, messages)
}

func TestTrackerConcurrentLoads(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}
	tr := newTracker(func(_ float64, msg string) {
		mu.Lock()
		defer mu.Unlock()
		seen[msg] = true
	})

	for i := 0; i < 20; i++ {
		tr.resolve("file", "/app", fmt.Sprintf("./m%d.js", i))
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.load()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 20)
	assert.True(t, seen["20/20 building modules"])
}

func TestMessageTexts(t *testing.T) {
	msgs := []api.Message{
		{Text: "Could not resolve \"x\"", Location: &api.Location{File: "app.jsx", Line: 3, Column: 7}},
		{Text: "boom", PluginName: "packwise-styles"},
	}

	assert.Equal(t, []string{`app.jsx:3:7: Could not resolve "x"`, "[packwise-styles] boom"}, messageTexts(msgs, true))
	assert.Equal(t, `Could not resolve "x"`, messageTexts(msgs, false)[0])
}

func TestOutputHash(t *testing.T) {
	a := []api.OutputFile{{Path: "/o/a.js", Contents: []byte("a")}, {Path: "/o/b.js", Contents: []byte("b")}}
	b := []api.OutputFile{a[1], a[0]}

	assert.Equal(t, outputHash(a), outputHash(b))
	assert.NotEqual(t, outputHash(a), outputHash([]api.OutputFile{{Path: "/o/a.js", Contents: []byte("changed")}}))
	assert.Empty(t, outputHash(nil))
	assert.False(t, strings.Contains(outputHash(a), " "))
}
