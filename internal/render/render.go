// Package render colours unified diff documents for terminals.
package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"

	"unidiff/internal/diff"
	"unidiff/internal/unified"
)

// Styles holds the styles for each kind of output line.
type Styles struct {
	FileHeader lipgloss.Style
	HunkHeader lipgloss.Style
	Added      lipgloss.Style
	Removed    lipgloss.Style
	Context    lipgloss.Style
	Marker     lipgloss.Style
}

// DefaultStyles returns the stock palette bound to r. Tabs are left as they
// are so uncoloured output keeps the bytes of the patch.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return Styles{
		FileHeader: base.Bold(true),
		HunkHeader: base.Foreground(lipgloss.Color("#56b6c2")),
		Added:      base.Foreground(lipgloss.Color("#98c379")),
		Removed:    base.Foreground(lipgloss.Color("#e06c75")),
		Context:    base,
		Marker:     base.Faint(true),
	}
}

// Renderer colours documents. Context lines are syntax highlighted when a
// lexer matches the file name.
type Renderer struct {
	styles Styles
	lexer  chroma.Lexer
}

// New returns a Renderer for the given file name. An unknown name disables
// syntax highlighting.
func New(r *lipgloss.Renderer, filename string) *Renderer {
	rd := &Renderer{styles: DefaultStyles(r)}
	if lexer := lexers.Match(filename); lexer != nil {
		rd.lexer = chroma.Coalesce(lexer)
	}
	return rd
}

// Render returns the coloured text of doc. Empty documents render as "".
func (rd *Renderer) Render(doc unified.Document) string {
	if doc.Empty() {
		return ""
	}
	var b strings.Builder
	for _, l := range doc.Header {
		b.WriteString(rd.styles.FileHeader.Render(l))
		b.WriteByte('\n')
	}
	for _, h := range doc.Hunks {
		b.WriteString(rd.styles.HunkHeader.Render(h.Header()))
		b.WriteByte('\n')
		for _, l := range h.Lines {
			b.WriteString(rd.line(l))
			if strings.HasSuffix(l.Text, "\r\n") {
				b.WriteByte('\r')
			}
			b.WriteByte('\n')
			if !strings.HasSuffix(l.Text, "\n") && !doc.OmitNoNewlineMarker {
				b.WriteString(rd.styles.Marker.Render(unified.NoNewlineMarker))
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

func (rd *Renderer) line(l unified.Line) string {
	text := strings.TrimSuffix(l.Text, "\n")
	if len(text) < len(l.Text) {
		text = strings.TrimSuffix(text, "\r")
	}
	prefix := string(l.Op.Prefix())
	switch l.Op {
	case diff.Add:
		return rd.styles.Added.Render(prefix + text)
	case diff.Remove:
		return rd.styles.Removed.Render(prefix + text)
	default:
		return prefix + rd.highlight(text)
	}
}

func (rd *Renderer) highlight(text string) string {
	if rd.lexer == nil || text == "" {
		return rd.styles.Context.Render(text)
	}
	iterator, err := rd.lexer.Tokenise(nil, text)
	if err != nil {
		return rd.styles.Context.Render(text)
	}
	var b strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		value := strings.TrimRight(token.Value, "\n")
		if value == "" {
			continue
		}
		b.WriteString(rd.tokenStyle(token.Type).Render(value))
	}
	return b.String()
}

// tokenStyle maps chroma token categories onto a small One Dark palette.
func (rd *Renderer) tokenStyle(tt chroma.TokenType) lipgloss.Style {
	style := rd.styles.Context
	switch {
	case tt.InCategory(chroma.Keyword):
		return style.Foreground(lipgloss.Color("#c678dd")).Bold(true)
	case tt.InCategory(chroma.Comment):
		return style.Foreground(lipgloss.Color("#5c6370"))
	case tt.InSubCategory(chroma.String):
		return style.Foreground(lipgloss.Color("#98c379"))
	case tt.InSubCategory(chroma.Number):
		return style.Foreground(lipgloss.Color("#d19a66"))
	case tt.InCategory(chroma.Operator):
		return style.Foreground(lipgloss.Color("#56b6c2"))
	case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
		return style.Foreground(lipgloss.Color("#61afef"))
	case tt == chroma.NameBuiltin || tt == chroma.NameBuiltinPseudo:
		return style.Foreground(lipgloss.Color("#e5c07b"))
	default:
		return style
	}
}
