package lcs

// Table is the time-efficient Calculator. It fills an (m+1)x(n+1) table of
// suffix LCS lengths and walks it forward once.
type Table struct{}

func (Table) String() string { return "table" }

// Matches implements Calculator.
func (Table) Matches(from, to []string) []Match {
	m, n := len(from), len(to)
	if m == 0 || n == 0 {
		return nil
	}

	// s[i*w+j] is the LCS length of from[i:] and to[j:].
	w := n + 1
	s := make([]int32, (m+1)*w)
	for i := m - 1; i >= 0; i-- {
		row, below := i*w, (i+1)*w
		for j := n - 1; j >= 0; j-- {
			switch {
			case from[i] == to[j]:
				s[row+j] = s[below+j+1] + 1
			case s[below+j] >= s[row+j+1]:
				s[row+j] = s[below+j]
			default:
				s[row+j] = s[row+j+1]
			}
		}
	}

	if s[0] == 0 {
		return nil
	}

	matches := make([]Match, 0, s[0])
	i, j := 0, 0
	for i < m && j < n {
		cur := s[i*w+j]
		switch {
		case s[(i+1)*w+j] == cur:
			// Dropping from[i] keeps the path optimal: delete first.
			i++
		case from[i] == to[j]:
			matches = append(matches, Match{From: i, To: j})
			i++
			j++
		default:
			j++
		}
	}
	return matches
}
