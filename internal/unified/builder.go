// Package unified renders edit scripts as unified diffs that patch(1) and
// git apply accept.
package unified

import (
	"errors"
	"fmt"
	"strings"

	"unidiff/internal/diff"
)

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 3

// Default header labels.
const (
	DefaultFromFile = "Original"
	DefaultToFile   = "New"
)

var (
	ErrInvalidContext = errors.New("context line count must not be negative")
	ErrInvalidHeader  = errors.New("header must not contain line breaks")
)

// Option configures a Builder.
type Option func(*Builder)

// WithContext sets the number of context lines around each change.
func WithContext(n int) Option {
	return func(b *Builder) { b.context = n }
}

// WithFiles sets the labels written on the --- and +++ lines.
func WithFiles(from, to string) Option {
	return func(b *Builder) { b.fromFile, b.toFile = from, to }
}

// WithDates appends tab-separated dates to the --- and +++ lines.
func WithDates(from, to string) Option {
	return func(b *Builder) { b.fromDate, b.toDate = from, to }
}

// WithHeader replaces the --- and +++ lines with custom lines, written verbatim.
func WithHeader(lines ...string) Option {
	return func(b *Builder) { b.header = lines }
}

// WithoutNoNewlineMarker drops the "\ No newline at end of file" marker and
// terminates such lines with a bare "\n" instead. The output is then no longer
// exact for patch tools.
func WithoutNoNewlineMarker() Option {
	return func(b *Builder) { b.omitMarker = true }
}

// Builder groups edit scripts into hunks. It holds only configuration and can
// be shared between goroutines.
type Builder struct {
	context    int
	fromFile   string
	toFile     string
	fromDate   string
	toDate     string
	header     []string
	omitMarker bool
}

// NewBuilder validates the options and returns a Builder.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		context:  DefaultContext,
		fromFile: DefaultFromFile,
		toFile:   DefaultToFile,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.context < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidContext, b.context)
	}
	for _, s := range append([]string{b.fromFile, b.toFile, b.fromDate, b.toDate}, b.header...) {
		if strings.ContainsAny(s, "\r\n") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, s)
		}
	}
	return b, nil
}

// Context returns the configured number of context lines.
func (b *Builder) Context() int {
	return b.context
}

// Build groups script into hunks. An unchanged script yields a Document
// without hunks.
func (b *Builder) Build(script diff.Script) Document {
	doc := Document{Header: b.headerLines(), OmitNoNewlineMarker: b.omitMarker}

	fromLine, toLine, pos := 0, 0, 0
	for _, sp := range b.spans(script) {
		for ; pos < sp.start; pos++ {
			fromLine, toLine = advance(script[pos].Op, fromLine, toLine)
		}

		h := Hunk{FromStart: fromLine + 1, ToStart: toLine + 1}
		for ; pos < sp.end; pos++ {
			e := script[pos]
			h.Lines = append(h.Lines, Line{Op: e.Op, Text: e.Line})
			if e.Op != diff.Add {
				h.FromCount++
			}
			if e.Op != diff.Remove {
				h.ToCount++
			}
			fromLine, toLine = advance(e.Op, fromLine, toLine)
		}
		// An empty range starts at the line before it.
		if h.FromCount == 0 {
			h.FromStart--
		}
		if h.ToCount == 0 {
			h.ToStart--
		}
		doc.Hunks = append(doc.Hunks, h)
	}
	return doc
}

// Render builds script and returns its text.
func (b *Builder) Render(script diff.Script) string {
	return b.Build(script).String()
}

type span struct {
	start, end int // script indexes, end exclusive
}

// spans finds the script ranges covered by hunks. Change runs separated by at
// most 2*context unchanged lines share a hunk.
func (b *Builder) spans(script diff.Script) []span {
	var out []span
	start, last := 0, -1
	for i, e := range script {
		if e.Op == diff.Keep {
			continue
		}
		switch {
		case last < 0:
			start = max(0, i-b.context)
		case i-last-1 > 2*b.context:
			out = append(out, span{start: start, end: last + 1 + b.context})
			start = i - b.context
		}
		last = i
	}
	if last >= 0 {
		out = append(out, span{start: start, end: min(len(script), last+1+b.context)})
	}
	return out
}

func (b *Builder) headerLines() []string {
	if b.header != nil {
		return b.header
	}
	return []string{
		"--- " + withDate(b.fromFile, b.fromDate),
		"+++ " + withDate(b.toFile, b.toDate),
	}
}

func withDate(label, date string) string {
	if date == "" {
		return label
	}
	return label + "\t" + date
}

func advance(op diff.Op, fromLine, toLine int) (int, int) {
	switch op {
	case diff.Keep:
		return fromLine + 1, toLine + 1
	case diff.Remove:
		return fromLine + 1, toLine
	default:
		return fromLine, toLine + 1
	}
}

// Diff diffs two texts and renders them with a default Differ. It fails only
// on invalid options.
func Diff(from, to string, opts ...Option) (string, error) {
	b, err := NewBuilder(opts...)
	if err != nil {
		return "", err
	}
	return b.Render(diff.New().DiffText(from, to)), nil
}
