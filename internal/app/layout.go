package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// splitWidths divides totalWidth between the old and new columns, leaving
// one cell for the divider. The old column gets the smaller half.
func splitWidths(totalWidth int) (int, int) {
	available := totalWidth - 1
	if available < 2 {
		return 1, 1
	}
	left := available / 2
	return left, available - left
}

// bodyHeight is the number of rows left for the diff once the header and
// footer are drawn.
func bodyHeight(totalHeight, footerHeight int) int {
	return max(1, totalHeight-1-footerHeight)
}

func truncateLinesToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}
