package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/packwise/cmd/packwise"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	rootCmd := packwise.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		_, _ = fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
