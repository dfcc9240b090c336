// Package diffview turns unified diff text into side-by-side rows.
package diffview

// Side selects a column of the split view.
type Side int

const (
	SideOld Side = iota
	SideNew
)

func (s Side) String() string {
	if s == SideOld {
		return "old"
	}
	return "new"
}

// RowKind classifies a row by the edit it shows.
type RowKind int

const (
	RowContext RowKind = iota
	RowDelete
	RowAdd
	RowChange
	RowHunkHeader
	RowFileHeader
)

var rowKindNames = [...]string{
	RowContext:    "context",
	RowDelete:     "delete",
	RowAdd:        "add",
	RowChange:     "change",
	RowHunkHeader: "hunk",
	RowFileHeader: "file",
}

func (k RowKind) String() string {
	if k < 0 || int(k) >= len(rowKindNames) {
		return "unknown"
	}
	return rowKindNames[k]
}

// Header reports whether the row is a file or hunk header spanning both
// columns.
func (k RowKind) Header() bool {
	return k == RowFileHeader || k == RowHunkHeader
}

// DiffRow is one visual row of a split view. Line numbers are nil on the side
// a row does not touch.
type DiffRow struct {
	Kind    RowKind
	OldLine *int
	NewLine *int
	OldText string
	NewText string
	Path    string
	HunkID  int
}

// Cell is the content of one side of a row.
type Cell struct {
	Line   int
	Text   string
	Marker byte
}

// On returns the cell shown in column side. ok is false when the row leaves
// that column blank.
func (r DiffRow) On(side Side) (cell Cell, ok bool) {
	if side == SideOld {
		if r.OldLine == nil {
			return Cell{}, false
		}
		cell = Cell{Line: *r.OldLine, Text: r.OldText, Marker: ' '}
		if r.Kind == RowDelete || r.Kind == RowChange {
			cell.Marker = '-'
		}
		return cell, true
	}
	if r.NewLine == nil {
		return Cell{}, false
	}
	cell = Cell{Line: *r.NewLine, Text: r.NewText, Marker: ' '}
	if r.Kind == RowAdd || r.Kind == RowChange {
		cell.Marker = '+'
	}
	return cell, true
}
