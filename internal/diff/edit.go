package diff

import "strings"

// Op is the operation of an Edit.
type Op int

// Edit operations.
const (
	Keep Op = iota
	Add
	Remove
)

// String returns the lower-case name of the operation.
func (o Op) String() string {
	switch o {
	case Keep:
		return "keep"
	case Add:
		return "add"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Prefix returns the unified diff line prefix for the operation.
func (o Op) Prefix() byte {
	switch o {
	case Add:
		return '+'
	case Remove:
		return '-'
	default:
		return ' '
	}
}

// Edit is one line of an edit script.
type Edit struct {
	Op        Op
	Line      string // line content including its terminator, if any
	FromIndex int    // index in the from sequence; -1 for Add
	ToIndex   int    // index in the to sequence; -1 for Remove
}

// Script is an ordered edit script transforming one Sequence into another.
type Script []Edit

// From returns the Keep and Remove lines, which make up the from sequence.
func (s Script) From() []string {
	return s.lines(Add)
}

// To returns the Keep and Add lines, which make up the to sequence.
func (s Script) To() []string {
	return s.lines(Remove)
}

func (s Script) lines(skip Op) []string {
	var out []string
	for _, e := range s {
		if e.Op != skip {
			out = append(out, e.Line)
		}
	}
	return out
}

// Changed reports whether the script contains any Add or Remove.
func (s Script) Changed() bool {
	for _, e := range s {
		if e.Op != Keep {
			return true
		}
	}
	return false
}

// Stats counts added and removed lines.
func (s Script) Stats() (added, removed int) {
	for _, e := range s {
		switch e.Op {
		case Add:
			added++
		case Remove:
			removed++
		}
	}
	return added, removed
}

// String renders the script one edit per line, prefixed like a unified diff
// body. Terminators are dropped so that every edit occupies one line.
func (s Script) String() string {
	var b strings.Builder
	for _, e := range s {
		b.WriteByte(e.Op.Prefix())
		b.WriteString(strings.TrimRight(e.Line, "\r\n"))
		b.WriteByte('\n')
	}
	return b.String()
}
