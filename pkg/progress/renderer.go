package progress

import (
	"sync"

	"github.com/arthur-debert/packwise/pkg/logging"
	"github.com/arthur-debert/packwise/pkg/types"
)

// Renderer turns progress events into bar lines. Each event is a pure
// projection of (current, total, message); nothing is accumulated between
// events. It is safe to call from several goroutines.
type Renderer struct {
	mu   sync.Mutex
	sink Sink
}

// NewRenderer creates a renderer drawing to sink
func NewRenderer(sink Sink) *Renderer {
	return &Renderer{sink: sink}
}

// OnProgress draws message when its first word is a "current/total" count.
// fraction is accepted for the engine's callback shape; the bar is computed
// from the count.
func (r *Renderer) OnProgress(fraction float64, message string) {
	current, total, ok := ParseCount(message)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.sink.Redraw(Line{
		Current: current,
		Total:   total,
		Bar:     Bar(current, total),
		Message: message,
	})
	if err != nil {
		logger := logging.GetLogger("progress")
		logger.Debug().Err(err).Float64("fraction", fraction).Msg("Failed to draw progress")
	}
}

// Handler returns OnProgress as a plugin progress handler
func (r *Renderer) Handler() types.ProgressHandler {
	return r.OnProgress
}

// Done finishes the progress display
func (r *Renderer) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.sink.Finish(); err != nil {
		logger := logging.GetLogger("progress")
		logger.Debug().Err(err).Msg("Failed to finish progress")
	}
}
