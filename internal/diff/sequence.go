package diff

import "strings"

// Sequence is a text split into lines. Every line keeps its terminator ("\n"
// or "\r\n"); only the last line may lack one, and NoFinalNewline records that.
type Sequence struct {
	Lines          []string
	NoFinalNewline bool
}

// Split splits text after every "\n".
func Split(text string) Sequence {
	if text == "" {
		return Sequence{}
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return Sequence{
		Lines:          lines,
		NoFinalNewline: !strings.HasSuffix(text, "\n"),
	}
}

// SplitBytes is Split for byte slices.
func SplitBytes(b []byte) Sequence {
	return Split(string(b))
}

// FromLines builds a Sequence from unterminated lines. Each line gets a "\n",
// except the last one when finalNewline is false.
func FromLines(lines []string, finalNewline bool) Sequence {
	if len(lines) == 0 {
		return Sequence{}
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	if !finalNewline {
		out[len(out)-1] = lines[len(lines)-1]
	}
	return Sequence{Lines: out, NoFinalNewline: !finalNewline}
}

// Len returns the number of lines.
func (s Sequence) Len() int {
	return len(s.Lines)
}

// String joins the lines back into the original text.
func (s Sequence) String() string {
	return strings.Join(s.Lines, "")
}
