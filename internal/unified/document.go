package unified

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"unidiff/internal/diff"
)

// NoNewlineMarker follows any line that lacks a terminator.
const NoNewlineMarker = `\ No newline at end of file`

// Line is one body line of a hunk.
type Line struct {
	Op   diff.Op
	Text string // content including its terminator, if any
}

// Hunk is one @@ block. Starts are 1-based; a range with a zero count starts
// at the line before it, so an empty side is 0,0.
type Hunk struct {
	FromStart int
	FromCount int
	ToStart   int
	ToCount   int
	Lines     []Line
}

// Header returns the @@ line without its terminator.
func (h Hunk) Header() string {
	return "@@ -" + FormatRange(h.FromStart, h.FromCount) + " +" + FormatRange(h.ToStart, h.ToCount) + " @@"
}

// FormatRange formats one side of a hunk header, dropping the count when it is 1.
func FormatRange(start, count int) string {
	if count == 1 {
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "," + strconv.Itoa(count)
}

// Document is a complete unified diff for one file pair.
type Document struct {
	Header              []string
	Hunks               []Hunk
	OmitNoNewlineMarker bool
}

// Empty reports whether the document has no hunks. Empty documents render as
// nothing at all.
func (d Document) Empty() bool {
	return len(d.Hunks) == 0
}

// WriteTo writes the document text to w.
func (d Document) WriteTo(w io.Writer) (int64, error) {
	if d.Empty() {
		return 0, nil
	}
	cw := &countingWriter{w: w}
	buf := bufio.NewWriter(cw)
	for _, l := range d.Header {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	for _, h := range d.Hunks {
		buf.WriteString(h.Header())
		buf.WriteByte('\n')
		for _, l := range h.Lines {
			buf.WriteByte(l.Op.Prefix())
			buf.WriteString(l.Text)
			if strings.HasSuffix(l.Text, "\n") {
				continue
			}
			buf.WriteByte('\n')
			if !d.OmitNoNewlineMarker {
				buf.WriteString(NoNewlineMarker)
				buf.WriteByte('\n')
			}
		}
	}
	err := buf.Flush()
	return cw.n, err
}

// String returns the document text.
func (d Document) String() string {
	var b strings.Builder
	_, _ = d.WriteTo(&b)
	return b.String()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
