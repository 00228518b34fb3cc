// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Brand Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Branch  = "└─"
)

// RuleWidth is the width of banner rules.
const RuleWidth = 60

// Rule returns the horizontal rule used above and below banners.
func Rule() string {
	return strings.Repeat("=", RuleWidth)
}
