package diffview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// RenderSplit renders rows as two columns of fixed display width. The row at
// cursor gets a ">" mark; pass -1 for none.
func RenderSplit(rows []DiffRow, oldWidth, newWidth, cursor int) ([]string, []string) {
	oldWidth = max(oldWidth, 1)
	newWidth = max(newWidth, 1)

	maxOld := 0
	maxNew := 0
	for _, row := range rows {
		if row.OldLine != nil && *row.OldLine > maxOld {
			maxOld = *row.OldLine
		}
		if row.NewLine != nil && *row.NewLine > maxNew {
			maxNew = *row.NewLine
		}
	}
	oldNumW := max(3, digits(maxOld))
	newNumW := max(3, digits(maxNew))

	oldLines := make([]string, 0, len(rows))
	newLines := make([]string, 0, len(rows))
	for i, row := range rows {
		oldLines = append(oldLines, renderRowForSide(row, SideOld, oldWidth, oldNumW, i == cursor))
		newLines = append(newLines, renderRowForSide(row, SideNew, newWidth, newNumW, i == cursor))
	}
	return oldLines, newLines
}

func renderRowForSide(row DiffRow, side Side, width, numW int, isCursor bool) string {
	prefix := "  "
	if isCursor {
		prefix = "> "
	}
	lineWidth := max(1, width-len(prefix))

	if row.Kind.Header() {
		header := row.OldText
		if header == "" {
			header = row.NewText
		}
		return prefix + fit(header, lineWidth)
	}

	cell, ok := row.On(side)
	if !ok {
		return prefix + strings.Repeat(" ", lineWidth)
	}

	num := strconv.Itoa(cell.Line)
	base := string(cell.Marker) + " " + strings.Repeat(" ", max(0, numW-len(num))) + num + " " + expandTabs(cell.Text)
	return prefix + fit(base, lineWidth)
}

// fit truncates or pads s to exactly width display cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}
