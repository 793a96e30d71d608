package progress

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu       sync.Mutex
	lines    []Line
	finished int
}

func (s *recordingSink) Redraw(line Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

func (s *recordingSink) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished++
	return nil
}

func TestRendererOnProgress(t *testing.T) {
	sink := &recordingSink{}
	r := NewRenderer(sink)

	r.OnProgress(0.25, "3/12 building modules")

	require.Len(t, sink.lines, 1)
	assert.Equal(t, Line{
		Current: 3,
		Total:   12,
		Bar:     strings.Repeat("#", 7) + strings.Repeat(" ", 18),
		Message: "3/12 building modules",
	}, sink.lines[0])
}

func TestRendererIgnoresMessagesWithoutCount(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(NewTerminalSink(&buf))

	r.OnProgress(0.1, "building modules")
	r.OnProgress(0.9, "emit")
	r.Done()

	assert.Empty(t, buf.String())
}

func TestRendererIsSafeForConcurrentUse(t *testing.T) {
	sink := &recordingSink{}
	r := NewRenderer(sink)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.OnProgress(float64(i)/50, fmt.Sprintf("%d/50 building modules", i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, sink.lines, 50)
}

func TestRendererHandler(t *testing.T) {
	sink := &recordingSink{}
	r := NewRenderer(sink)

	h := r.Handler()
	h(0.5, "1/2 building modules")
	r.Done()

	assert.Len(t, sink.lines, 1)
	assert.Equal(t, 1, sink.finished)
}

func TestTerminalSinkRedraw(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTerminalSink(&buf)

	require.NoError(t, sink.Redraw(Line{Current: 3, Total: 12, Bar: Bar(3, 12), Message: "3/12 building modules"}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\r\x1b[0K"), "line must be erased before drawing: %q", out)
	assert.Contains(t, out, "progress:")
	assert.Contains(t, out, " [#######                  ] ")
	assert.True(t, strings.HasSuffix(out, "3/12 building modules"))

	require.NoError(t, sink.Finish())
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestTerminalSinkFinishWithoutDrawing(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTerminalSink(&buf)

	require.NoError(t, sink.Finish())
	assert.Empty(t, buf.String())
}

func TestPlainSinkWritesAtDefaultVerbosity(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	r := NewRenderer(NewPlainSink(&buf))

	r.OnProgress(0.25, "3/12 building modules")
	r.OnProgress(0.5, "building modules")
	r.Done()

	assert.Equal(t, "progress: [#######                  ] 3/12 building modules\n", buf.String())
}
