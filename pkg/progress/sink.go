package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Line is one progress event ready to be drawn
type Line struct {
	Current int
	Total   int
	Bar     string
	Message string
}

// Sink draws progress lines. Redraw replaces whatever the previous call
// drew; Finish ends the progress display.
type Sink interface {
	Redraw(line Line) error
	Finish() error
}

// NewSink picks a TerminalSink when f is a terminal and a PlainSink
// otherwise
func NewSink(f *os.File) Sink {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewTerminalSink(f)
	}
	return NewPlainSink(f)
}

// TerminalSink overwrites the current terminal line on every event
type TerminalSink struct {
	w       io.Writer
	term    *termenv.Output
	label   lipgloss.Style
	bar     lipgloss.Style
	message lipgloss.Style
	drawn   bool
}

// NewTerminalSink creates a sink drawing to w. Colors follow w's detected
// profile, so a non-terminal writer gets plain text.
func NewTerminalSink(w io.Writer) *TerminalSink {
	r := lipgloss.NewRenderer(w)
	return &TerminalSink{
		w:       w,
		term:    termenv.NewOutput(w),
		label:   r.NewStyle().Foreground(lipgloss.Color("1")),
		bar:     r.NewStyle().Foreground(lipgloss.Color("2")),
		message: r.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// Redraw returns to the line start, erases it and draws line
func (s *TerminalSink) Redraw(line Line) error {
	if _, err := io.WriteString(s.w, "\r"); err != nil {
		return err
	}
	s.term.ClearLineRight()

	_, err := fmt.Fprint(s.w,
		s.label.Render("progress:"),
		s.bar.Render(" ["+line.Bar+"] "),
		s.message.Render(line.Message),
	)
	s.drawn = true
	return err
}

// Finish moves past the progress line if one was drawn
func (s *TerminalSink) Finish() error {
	if !s.drawn {
		return nil
	}
	s.drawn = false
	_, err := io.WriteString(s.w, "\n")
	return err
}

// PlainSink writes every event as its own line, for output that is not a
// terminal. Lines go straight to w so they show at any log level.
type PlainSink struct {
	w io.Writer
}

// NewPlainSink creates a sink writing plain progress lines to w
func NewPlainSink(w io.Writer) *PlainSink {
	return &PlainSink{w: w}
}

func (s *PlainSink) Redraw(line Line) error {
	_, err := fmt.Fprintf(s.w, "progress: [%s] %s\n", line.Bar, line.Message)
	return err
}

func (s *PlainSink) Finish() error {
	return nil
}
