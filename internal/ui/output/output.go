// Package output provides utilities for creating termenv.Output with consistent
// color profile and TTY handling across the CLI.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorProfile returns the color profile to use for interactive environments.
// It checks if NO_COLOR is set, returning Ascii if so.
// Otherwise, it detects the terminal's capabilities automatically.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output with the specific profile logic.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stdout
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Paint renders s in the given brand color on out.
func Paint(out *termenv.Output, s string, c lipgloss.Color) string {
	return out.String(s).Foreground(termenv.RGBColor(string(c))).String()
}

// Bold renders s in bold on out.
func Bold(out *termenv.Output, s string) string {
	return out.String(s).Bold().String()
}
