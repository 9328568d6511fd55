package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/textdir/internal/direction"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)

	ltrColor = color.New(color.FgGreen)
	rtlColor = color.New(color.FgMagenta)
)

// PrintSuccess prints a success message with a checkmark.
func PrintSuccess(msg string) {
	_, _ = successColor.Printf("✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol.
func PrintWarning(msg string) {
	_, _ = warningColor.Printf("⚠ %s\n", msg)
}

// PrintError prints an error message to stderr.
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// PrintInfo prints a plain informational message.
func PrintInfo(msg string) {
	fmt.Println(msg)
}

// PrintSection prints a section header.
func PrintSection(title string) {
	fmt.Println()
	_, _ = headerColor.Printf("▸ %s\n", title)
	fmt.Println()
}

// PrintEmptyState prints a dimmed message when there is nothing to show.
func PrintEmptyState(msg string) {
	_, _ = dimColor.Printf("  %s\n", msg)
}

// PrintLabelValue prints an aligned label-value pair.
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Printf("  %-10s ", label+":")
	fmt.Println(value)
}

// PrintList prints items as an indented bullet list.
func PrintList(items []string, indent int) {
	pad := strings.Repeat("  ", indent)
	for _, item := range items {
		fmt.Printf("%s• %s\n", pad, item)
	}
}

// PrintTable prints two-column rows under a header. The first column is
// padded to its widest cell; the second may carry color codes.
func PrintTable(headers [2]string, rows [][2]string) {
	width := len(headers[0])
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	_, _ = headerColor.Printf("  %-*s  %s\n", width, headers[0], headers[1])
	for _, row := range rows {
		fmt.Printf("  %-*s  %s\n", width, row[0], row[1])
	}
}

// countNoun formats a count with the right singular or plural noun.
func countNoun(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// directionBadge renders a direction with its arrow glyph.
func directionBadge(d direction.Direction) string {
	if d == direction.RTL {
		return "← rtl"
	}
	return "→ ltr"
}

// directionColor picks the display color for a direction.
func directionColor(d direction.Direction) *color.Color {
	if d == direction.RTL {
		return rtlColor
	}
	return ltrColor
}

// coloredBadge renders a direction badge wrapped in its color.
func coloredBadge(d direction.Direction) string {
	return directionColor(d).Sprint(directionBadge(d))
}
