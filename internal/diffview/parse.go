package diffview

import (
	"fmt"
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"

	"unidiff/internal/unified"
)

// ParseUnifiedDiff parses unified diff text, one or more files, into rows.
// Delete runs directly followed by add runs are paired into RowChange rows.
func ParseUnifiedDiff(raw []byte) ([]DiffRow, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}
	fileDiffs, err := sgdiff.ParseMultiFileDiff(raw)
	if err != nil {
		return nil, fmt.Errorf("parse unified diff: %w", err)
	}

	rows := make([]DiffRow, 0, 64)
	for _, fd := range fileDiffs {
		path := normalizePath(fd)
		rows = append(rows, DiffRow{
			Kind:    RowFileHeader,
			OldText: path,
			Path:    path,
		})

		for hunkID, h := range fd.Hunks {
			rows = append(rows, DiffRow{
				Kind:    RowHunkHeader,
				OldText: formatHunkHeader(h),
				Path:    path,
				HunkID:  hunkID,
			})
			hunkRows, err := parseHunkBody(h, path, hunkID)
			if err != nil {
				return nil, fmt.Errorf("%s hunk %d: %w", path, hunkID+1, err)
			}
			rows = append(rows, hunkRows...)
		}
	}
	return rows, nil
}

func parseHunkBody(h *sgdiff.Hunk, path string, hunkID int) ([]DiffRow, error) {
	var rows []DiffRow
	oldLn := int(h.OrigStartLine)
	newLn := int(h.NewStartLine)
	lines := splitHunkBody(h.Body)
	for i := 0; i < len(lines); {
		line := lines[i]
		if line == "" {
			i++
			continue
		}
		switch line[0] {
		case ' ':
			rows = append(rows, DiffRow{
				Kind:    RowContext,
				OldLine: linePtr(oldLn),
				NewLine: linePtr(newLn),
				OldText: line[1:],
				NewText: line[1:],
				Path:    path,
				HunkID:  hunkID,
			})
			oldLn++
			newLn++
			i++

		case '-', '+':
			dels, next := takeRun(lines, i, '-')
			adds, next := takeRun(lines, next, '+')
			rows = append(rows, pairEditRuns(path, hunkID, &oldLn, &newLn, dels, adds)...)
			i = next

		case '\\':
			// "\ No newline at end of file"
			i++

		default:
			return nil, fmt.Errorf("unexpected hunk line prefix %q", line)
		}
	}
	return rows, nil
}

// takeRun collects consecutive lines starting with prefix, skipping marker
// lines in between, and returns them without the prefix.
func takeRun(lines []string, i int, prefix byte) ([]string, int) {
	var out []string
	for i < len(lines) && len(lines[i]) > 0 {
		switch lines[i][0] {
		case prefix:
			out = append(out, lines[i][1:])
		case '\\':
		default:
			return out, i
		}
		i++
	}
	return out, i
}

func pairEditRuns(path string, hunkID int, oldLn, newLn *int, dels, adds []string) []DiffRow {
	count := max(len(dels), len(adds))
	out := make([]DiffRow, 0, count)
	for i := 0; i < count; i++ {
		row := DiffRow{Path: path, HunkID: hunkID}
		hasDel := i < len(dels)
		hasAdd := i < len(adds)
		if hasDel {
			row.OldLine = linePtr(*oldLn)
			row.OldText = dels[i]
			*oldLn++
		}
		if hasAdd {
			row.NewLine = linePtr(*newLn)
			row.NewText = adds[i]
			*newLn++
		}

		switch {
		case hasDel && hasAdd:
			row.Kind = RowChange
		case hasDel:
			row.Kind = RowDelete
		default:
			row.Kind = RowAdd
		}
		out = append(out, row)
	}
	return out
}

func formatHunkHeader(h *sgdiff.Hunk) string {
	header := "@@ -" + unified.FormatRange(int(h.OrigStartLine), int(h.OrigLines)) +
		" +" + unified.FormatRange(int(h.NewStartLine), int(h.NewLines)) + " @@"
	if h.Section != "" {
		header += " " + h.Section
	}
	return header
}

func normalizePath(fd *sgdiff.FileDiff) string {
	path := fd.NewName
	if path == "" || path == "/dev/null" {
		path = fd.OrigName
	}
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")
	return path
}

func splitHunkBody(body []byte) []string {
	lines := strings.Split(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func linePtr(n int) *int {
	v := n
	return &v
}
