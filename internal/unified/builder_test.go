package unified

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unidiff/internal/diff"
	"unidiff/internal/lcs"
)

func TestRenderReplacedLine(t *testing.T) {
	t.Parallel()

	got := render(t, "a\nb\nc\n", "a\nx\nc\n")

	assert.Equal(t, "--- Original\n+++ New\n@@ -1,3 +1,3 @@\n a\n-b\n+x\n c\n", got)
}

func TestRenderNewFile(t *testing.T) {
	t.Parallel()

	got := render(t, "", "a\n")

	assert.Equal(t, "--- Original\n+++ New\n@@ -0,0 +1 @@\n+a\n", got)
}

func TestRenderDeletedFile(t *testing.T) {
	t.Parallel()

	got := render(t, "a\nb\n", "")

	assert.Equal(t, "--- Original\n+++ New\n@@ -1,2 +0,0 @@\n-a\n-b\n", got)
}

func TestRenderIdenticalInputsIsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, render(t, "a", "a"))
	assert.Empty(t, render(t, "a\nb\n", "a\nb\n"))
	assert.Empty(t, render(t, "", ""))
}

func TestRenderRemovedLastLineWithoutNewline(t *testing.T) {
	t.Parallel()

	got := render(t, "a\nb\nc", "a\nb\n")

	assert.Equal(t, "--- Original\n+++ New\n@@ -1,3 +1,2 @@\n a\n b\n-c\n\\ No newline at end of file\n", got)
	assert.Equal(t, 1, strings.Count(got, NoNewlineMarker))
}

func TestRenderNoNewlineMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{
			name: "newline added at end",
			from: "a\nb",
			to:   "a\nb\n",
			want: "@@ -1,2 +1,2 @@\n a\n-b\n\\ No newline at end of file\n+b\n",
		},
		{
			name: "newline removed at end",
			from: "a\nb\n",
			to:   "a\nb",
			want: "@@ -1,2 +1,2 @@\n a\n-b\n+b\n\\ No newline at end of file\n",
		},
		{
			name: "unterminated context line",
			from: "a\nb\nc",
			to:   "x\nb\nc",
			want: "@@ -1,3 +1,3 @@\n-a\n+x\n b\n c\n\\ No newline at end of file\n",
		},
		{
			name: "both sides unterminated and changed",
			from: "a\nb",
			to:   "a\nc",
			want: "@@ -1,2 +1,2 @@\n a\n-b\n\\ No newline at end of file\n+c\n\\ No newline at end of file\n",
		},
	}

	b, err := NewBuilder(WithHeader([]string{}...))
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, b.Render(diff.New().DiffText(tt.from, tt.to)))
		})
	}
}

func TestRenderWithoutNoNewlineMarker(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder(WithoutNoNewlineMarker(), WithHeader([]string{}...))
	require.NoError(t, err)

	got := b.Render(diff.New().DiffText("a\nb", "a\n"))

	assert.Equal(t, "@@ -1,2 +1 @@\n a\n-b\n", got)
}

func TestHunkMergeThreshold(t *testing.T) {
	t.Parallel()

	for _, context := range []int{0, 1, 2, 3} {
		t.Run(fmt.Sprintf("context %d", context), func(t *testing.T) {
			t.Parallel()

			b, err := NewBuilder(WithContext(context))
			require.NoError(t, err)

			merged := b.Build(changesSeparatedBy(2*context, context))
			assert.Len(t, merged.Hunks, 1, "gap of 2*context merges")

			split := b.Build(changesSeparatedBy(2*context+1, context))
			assert.Len(t, split.Hunks, 2, "gap of 2*context+1 splits")
		})
	}
}

func TestBuildHunkPositions(t *testing.T) {
	t.Parallel()

	from := lines(1, 20)
	to := strings.Replace(from, "5\n", "five\n", 1)
	to = strings.Replace(to, "16\n", "", 1)

	b, err := NewBuilder(WithContext(2))
	require.NoError(t, err)
	doc := b.Build(diff.New().DiffText(from, to))

	require.Len(t, doc.Hunks, 2)
	assert.Equal(t, "@@ -3,5 +3,5 @@", doc.Hunks[0].Header())
	assert.Equal(t, "@@ -14,5 +14,4 @@", doc.Hunks[1].Header())
	requireHunkInvariants(t, doc)
}

func TestBuildContextClippedAtEdges(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder(WithContext(3))
	require.NoError(t, err)

	doc := b.Build(diff.New().DiffText("a\nb\nc\n", "x\nb\nc\n"))
	require.Len(t, doc.Hunks, 1)
	assert.Equal(t, "@@ -1,3 +1,3 @@", doc.Hunks[0].Header())

	doc = b.Build(diff.New().DiffText("a\nb\nc\n", "a\nb\nx\n"))
	require.Len(t, doc.Hunks, 1)
	assert.Equal(t, "@@ -1,3 +1,3 @@", doc.Hunks[0].Header())
}

func TestBuildZeroContextInsertion(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder(WithContext(0), WithHeader([]string{}...))
	require.NoError(t, err)

	got := b.Render(diff.New().DiffText("a\nb\n", "a\nnew\nb\n"))

	assert.Equal(t, "@@ -1,0 +2 @@\n+new\n", got)
}

func TestRenderHeaders(t *testing.T) {
	t.Parallel()

	script := diff.New().DiffText("a\n", "b\n")

	t.Run("labels and dates", func(t *testing.T) {
		t.Parallel()
		b, err := NewBuilder(WithFiles("a/f.txt", "b/f.txt"), WithDates("2020-01-01", "2020-01-02"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(b.Render(script), "--- a/f.txt\t2020-01-01\n+++ b/f.txt\t2020-01-02\n@@ -1 +1 @@\n"))
	})

	t.Run("custom header lines", func(t *testing.T) {
		t.Parallel()
		b, err := NewBuilder(WithHeader("diff --git a/f b/f", "--- a/f", "+++ b/f"))
		require.NoError(t, err)
		assert.Equal(t, "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -1 +1 @@\n-a\n+b\n", b.Render(script))
	})
}

func TestNewBuilderRejectsInvalidConfiguration(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder(WithContext(-1))
	require.ErrorIs(t, err, ErrInvalidContext)

	_, err = NewBuilder(WithFiles("a\nb", "c"))
	require.ErrorIs(t, err, ErrInvalidHeader)

	_, err = NewBuilder(WithDates("", "x\r"))
	require.ErrorIs(t, err, ErrInvalidHeader)

	_, err = NewBuilder(WithHeader("--- a", "+++ b\n"))
	require.ErrorIs(t, err, ErrInvalidHeader)

	b, err := NewBuilder()
	require.NoError(t, err)
	assert.Equal(t, DefaultContext, b.Context())
}

func TestRenderIsByteStableAcrossStrategies(t *testing.T) {
	t.Parallel()

	from := lines(1, 40)
	to := strings.NewReplacer("7\n", "seven\n", "20\n", "", "33\n", "33\nextra\n").Replace(from)

	b, err := NewBuilder()
	require.NoError(t, err)

	want := b.Render(diff.New(diff.WithCalculator(lcs.Table{})).DiffText(from, to))
	for i := 0; i < 3; i++ {
		assert.Equal(t, want, b.Render(diff.New(diff.WithCalculator(lcs.Hirschberg{})).DiffText(from, to)))
		assert.Equal(t, want, b.Render(diff.New(diff.WithCalculator(lcs.Table{})).DiffText(from, to)))
	}
}

func TestDocumentWriteTo(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder()
	require.NoError(t, err)
	doc := b.Build(diff.New().DiffText("a\n", "b\n"))

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, doc.String(), buf.String())

	n, err = Document{}.WriteTo(&buf)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDiff(t *testing.T) {
	t.Parallel()

	got, err := Diff("a\n", "b\n", WithFiles("x", "y"))
	require.NoError(t, err)
	assert.Equal(t, "--- x\n+++ y\n@@ -1 +1 @@\n-a\n+b\n", got)

	_, err = Diff("a", "b", WithContext(-3))
	assert.ErrorIs(t, err, ErrInvalidContext)
}

func TestFormatRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0,0", FormatRange(0, 0))
	assert.Equal(t, "4", FormatRange(4, 1))
	assert.Equal(t, "4,2", FormatRange(4, 2))
}

func render(t *testing.T, from, to string) string {
	t.Helper()
	b, err := NewBuilder()
	require.NoError(t, err)
	return b.Render(diff.New().DiffText(from, to))
}

// lines returns "lo\n...hi\n".
func lines(lo, hi int) string {
	var b strings.Builder
	for i := lo; i <= hi; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	return b.String()
}

// changesSeparatedBy returns a script with two replacements separated by gap
// unchanged lines, padded with pad unchanged lines on both ends.
func changesSeparatedBy(gap, pad int) diff.Script {
	var from, to strings.Builder
	n := 0
	keep := func(count int) {
		for i := 0; i < count; i++ {
			fmt.Fprintf(&from, "k%d\n", n)
			fmt.Fprintf(&to, "k%d\n", n)
			n++
		}
	}
	keep(pad)
	from.WriteString("old1\n")
	to.WriteString("new1\n")
	keep(gap)
	from.WriteString("old2\n")
	to.WriteString("new2\n")
	keep(pad)
	return diff.New().DiffText(from.String(), to.String())
}

func requireHunkInvariants(t *testing.T, doc Document) {
	t.Helper()
	prevEnd := 0
	for _, h := range doc.Hunks {
		var from, to int
		for _, l := range h.Lines {
			if l.Op != diff.Add {
				from++
			}
			if l.Op != diff.Remove {
				to++
			}
		}
		require.Equal(t, from, h.FromCount, h.Header())
		require.Equal(t, to, h.ToCount, h.Header())
		require.Greater(t, h.FromStart, prevEnd, "hunks overlap or are out of order")
		prevEnd = h.FromStart + h.FromCount - 1
	}
}
