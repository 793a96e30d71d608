// Package progress renders build progress as a single, continuously
// redrawn bar line and prints the one-time build mode banner.
//
// The build engine reports progress as (fraction, message) pairs. Only
// messages whose first word is a "current/total" count are drawn; all others
// are dropped without writing anything. Drawing goes through a Sink so the
// same Renderer works on an interactive terminal (TerminalSink) and in
// headless environments (PlainSink, which writes one plain line per event).
package progress
