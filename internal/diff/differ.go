package diff

import (
	"go.uber.org/zap"

	"unidiff/internal/lcs"
)

// Differ computes edit scripts. The zero value is not usable; call New.
type Differ struct {
	calculator lcs.Calculator
	policy     lcs.Policy
	logger     *zap.Logger
}

// Option configures a Differ.
type Option func(*Differ)

// WithCalculator forces a Calculator instead of letting the memory policy pick one.
func WithCalculator(c lcs.Calculator) Option {
	return func(d *Differ) { d.calculator = c }
}

// WithMemoryLimit sets the Table footprint above which Hirschberg is used.
func WithMemoryLimit(limit int64) Option {
	return func(d *Differ) { d.policy.MemoryLimit = limit }
}

// WithLogger sets the logger used for strategy selection messages.
func WithLogger(l *zap.Logger) Option {
	return func(d *Differ) {
		if l != nil {
			d.logger = l
		}
	}
}

// New returns a Differ with a default memory policy and a no-op logger.
func New(opts ...Option) *Differ {
	d := &Differ{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Diff returns the edit script transforming from into to. It never fails.
func Diff(from, to Sequence) Script {
	return New().Diff(from, to)
}

// DiffText splits both texts and diffs them.
func (d *Differ) DiffText(from, to string) Script {
	return d.Diff(Split(from), Split(to))
}

// Diff returns the edit script transforming from into to.
func (d *Differ) Diff(from, to Sequence) Script {
	a, b := from.Lines, to.Lines

	prefix := commonPrefix(a, b)
	suffix := commonSuffix(a[prefix:], b[prefix:])
	ma, mb := a[prefix:len(a)-suffix], b[prefix:len(b)-suffix]

	var matches []lcs.Match
	if len(ma) > 0 && len(mb) > 0 {
		matches = d.calculatorFor(len(ma), len(mb)).Matches(ma, mb)
	}

	keeps := prefix + suffix + len(matches)
	script := make(Script, 0, len(a)+len(b)-keeps)
	for i := 0; i < prefix; i++ {
		script = append(script, Edit{Op: Keep, Line: a[i], FromIndex: i, ToIndex: i})
	}

	i, j := prefix, prefix
	for _, m := range matches {
		fi, tj := prefix+m.From, prefix+m.To
		script = appendChanges(script, a, b, i, fi, j, tj)
		script = append(script, Edit{Op: Keep, Line: a[fi], FromIndex: fi, ToIndex: tj})
		i, j = fi+1, tj+1
	}
	script = appendChanges(script, a, b, i, len(a)-suffix, j, len(b)-suffix)

	for k := 0; k < suffix; k++ {
		fi, tj := len(a)-suffix+k, len(b)-suffix+k
		script = append(script, Edit{Op: Keep, Line: a[fi], FromIndex: fi, ToIndex: tj})
	}
	return script
}

func (d *Differ) calculatorFor(m, n int) lcs.Calculator {
	if d.calculator != nil {
		return d.calculator
	}
	c := d.policy.Select(m, n)
	d.logger.Debug("lcs strategy selected",
		zap.Any("strategy", c),
		zap.Int("from_lines", m),
		zap.Int("to_lines", n),
		zap.Int64("table_bytes", lcs.EstimateFootprint(m, n)),
	)
	return c
}

// appendChanges emits a[i:iEnd] as removals followed by b[j:jEnd] as additions.
func appendChanges(script Script, a, b []string, i, iEnd, j, jEnd int) Script {
	for ; i < iEnd; i++ {
		script = append(script, Edit{Op: Remove, Line: a[i], FromIndex: i, ToIndex: -1})
	}
	for ; j < jEnd; j++ {
		script = append(script, Edit{Op: Add, Line: b[j], FromIndex: -1, ToIndex: j})
	}
	return script
}

func commonPrefix(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func commonSuffix(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[len(a)-1-i] != b[len(b)-1-i] {
			return i
		}
	}
	return n
}
