package progress

import (
	"io"
	"os"

	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DefaultWidth is used when the terminal width cannot be determined
const DefaultWidth = 31

// Banner colors
var (
	Red   = lipgloss.Color("1")
	Green = lipgloss.Color("2")
)

var hashBorder = lipgloss.Border{
	Top:         "#",
	Bottom:      "#",
	Left:        "#",
	Right:       "#",
	TopLeft:     "#",
	TopRight:    "#",
	BottomLeft:  "#",
	BottomRight: "#",
}

// ModeLabel returns the banner label and color describing env
func ModeLabel(env types.Env) (string, lipgloss.Color) {
	switch {
	case env.Production():
		return "PRODUCTION ", Red
	case env.HotReload:
		return "HOT RELOAD ", Green
	default:
		return "DEVELOPMENT", Green
	}
}

// TerminalWidth returns the width of the terminal behind f, or DefaultWidth
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// RenderBanner draws a box of '#' width columns wide with one blank row
// above and below the centered label
func RenderBanner(r *lipgloss.Renderer, label string, color lipgloss.Color, width int) string {
	if width < 2 {
		width = DefaultWidth
	}

	return r.NewStyle().
		Border(hashBorder).
		BorderForeground(color).
		Foreground(color).
		Width(width-2).
		Padding(1, 0).
		Align(lipgloss.Center).
		Render(label)
}

// PrintBanner writes the banner for label to f, sized to f's terminal
func PrintBanner(f *os.File, label string, color lipgloss.Color) error {
	return WriteBanner(f, label, color, TerminalWidth(f))
}

// WriteBanner writes the banner followed by an empty line
func WriteBanner(w io.Writer, label string, color lipgloss.Color, width int) error {
	banner := RenderBanner(lipgloss.NewRenderer(w), label, color, width)
	_, err := io.WriteString(w, banner+"\n\n")
	return err
}
