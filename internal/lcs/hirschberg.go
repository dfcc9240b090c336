package lcs

// Hirschberg is the memory-efficient Calculator. It splits the first slice in
// half, finds where the optimal path crosses the split with two linear-space
// score rows, and recurses on both quadrants. Memory is O(m+n).
type Hirschberg struct{}

func (Hirschberg) String() string { return "hirschberg" }

// Matches implements Calculator.
func (Hirschberg) Matches(from, to []string) []Match {
	if len(from) == 0 || len(to) == 0 {
		return nil
	}
	h := &hirschberg{
		from: from,
		to:   to,
		fwd:  make([]int, len(to)+1),
		bwd:  make([]int, len(to)+1),
	}
	h.solve(0, len(from), 0, len(to))
	return h.out
}

type hirschberg struct {
	from, to []string
	fwd, bwd []int
	out      []Match
}

func (h *hirschberg) solve(alo, ahi, blo, bhi int) {
	if alo >= ahi || blo >= bhi {
		return
	}
	if ahi-alo == 1 {
		// The earliest equal line keeps every later row entry minimal.
		for j := blo; j < bhi; j++ {
			if h.from[alo] == h.to[j] {
				h.out = append(h.out, Match{From: alo, To: j})
				return
			}
		}
		return
	}

	mid := alo + (ahi-alo)/2
	fwd := h.forward(alo, mid, blo, bhi)
	bwd := h.backward(mid, ahi, blo, bhi)

	// Smallest column wins ties so the path reaches row mid as early as possible.
	split, best := 0, -1
	for k := 0; k <= bhi-blo; k++ {
		if score := fwd[k] + bwd[k]; score > best {
			split, best = k, score
		}
	}

	h.solve(alo, mid, blo, blo+split)
	h.solve(mid, ahi, blo+split, bhi)
}

// forward returns row[k] = LCS(from[alo:ahi], to[blo:blo+k]).
func (h *hirschberg) forward(alo, ahi, blo, bhi int) []int {
	n := bhi - blo
	row := h.fwd[:n+1]
	clear(row)
	for i := alo; i < ahi; i++ {
		diag := 0
		for k := 1; k <= n; k++ {
			up := row[k]
			if h.from[i] == h.to[blo+k-1] {
				row[k] = diag + 1
			} else if row[k-1] > up {
				row[k] = row[k-1]
			}
			diag = up
		}
	}
	return row
}

// backward returns row[k] = LCS(from[alo:ahi], to[blo+k:bhi]).
func (h *hirschberg) backward(alo, ahi, blo, bhi int) []int {
	n := bhi - blo
	row := h.bwd[:n+1]
	clear(row)
	for i := ahi - 1; i >= alo; i-- {
		diag := 0
		for k := n - 1; k >= 0; k-- {
			down := row[k]
			if h.from[i] == h.to[blo+k] {
				row[k] = diag + 1
			} else if row[k+1] > down {
				row[k] = row[k+1]
			}
			diag = down
		}
	}
	return row
}
