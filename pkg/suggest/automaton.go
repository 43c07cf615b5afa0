package suggest

import "math"

// Infinity is the sentinel for cells outside the band. It is far below
// MaxUint32 so adding unit edit costs can never wrap around.
const Infinity = math.MaxUint32 >> 1

// Automaton incrementally computes the optimal-string-alignment
// Damerau-Levenshtein distance between a fixed query word and a growing
// candidate prefix. Feed extends the candidate by one byte, Rollback truncates
// it; rows for the untouched prefix are preserved, which is what lets the
// matcher share prefix work across sibling subtrees.
//
// The table is banded: row i only fills columns j with |i-j| roughly within
// maxDist, since any cell further from the diagonal is known to exceed the
// budget. Cells outside the band read as Infinity.
//
// The variant is OSA: adjacent transpositions cost 1, and each position is
// edited at most once. This is not the unrestricted Damerau-Levenshtein.
type Automaton struct {
	word    []byte // the query, fixed at construction
	cur     []byte // the candidate prefix fed so far
	table   []uint32
	width   int // |word| + 1 cells per row
	maxDist uint32
}

// NewAutomaton creates an automaton for query with the given distance budget.
func NewAutomaton(query string, maxDist uint32) *Automaton {
	a := &Automaton{
		word:    []byte(query),
		cur:     make([]byte, 0, 64),
		width:   len(query) + 1,
		maxDist: maxDist,
	}
	a.table = make([]uint32, a.width, a.width*8)
	for j := 0; j < a.width; j++ {
		a.table[j] = uint32(j)
	}
	return a
}

// Current returns the candidate prefix fed so far. The slice aliases the
// automaton's state and is invalidated by Feed and Rollback.
func (a *Automaton) Current() []byte {
	return a.cur
}

// Dist returns the distance between the query and the full candidate fed so
// far, or a value > maxDist (up to Infinity) when it exceeds the budget.
func (a *Automaton) Dist() uint32 {
	return a.table[len(a.cur)*a.width+a.width-1]
}

// Feed appends c to the candidate and fills the new table row.
//
// cont is false when no cell of the new row is within budget: no extension of
// the candidate can ever come back within maxDist, so the caller should stop
// descending. accept is true when the candidate itself is within maxDist of
// the query.
func (a *Automaton) Feed(c byte) (cont, accept bool) {
	a.cur = append(a.cur, c)
	i := len(a.cur)

	// Append one row of sentinel cells.
	off := i * a.width
	if cap(a.table) < off+a.width {
		grown := make([]uint32, off, cap(a.table)*2+a.width)
		copy(grown, a.table)
		a.table = grown
	}
	a.table = a.table[:off+a.width]
	row := a.table[off : off+a.width]
	for j := range row {
		row[j] = Infinity
	}

	k := int(a.maxDist)
	lb := 0
	if i > k+1 {
		lb = i - k - 1
	}
	rb := min(len(a.word), i+k)
	for j := lb; j <= rb; j++ {
		var best uint32
		if j == 0 {
			best = uint32(i)
		} else {
			best = a.at(i-1, j) + 1 // delete from candidate
			if v := row[j-1] + 1; v < best { // insert into candidate
				best = v
			}
			cost := uint32(1)
			if c == a.word[j-1] {
				cost = 0
			}
			if v := a.at(i-1, j-1) + cost; v < best { // match / substitute
				best = v
			}
			if i >= 2 && j >= 2 && c == a.word[j-2] && a.cur[i-2] == a.word[j-1] {
				if v := a.at(i-2, j-2) + 1; v < best { // adjacent swap
					best = v
				}
			}
		}
		row[j] = best
		if best <= a.maxDist {
			cont = true
		}
	}
	accept = row[a.width-1] <= a.maxDist
	return cont, accept
}

// Rollback truncates the candidate to n bytes, discarding all rows beyond.
// Rows 0..n are preserved unchanged.
func (a *Automaton) Rollback(n int) {
	a.cur = a.cur[:n]
	a.table = a.table[:(n+1)*a.width]
}

// at reads cell (i, j); rows are fully materialized, so out-of-band cells
// hold the sentinel already.
func (a *Automaton) at(i, j int) uint32 {
	return a.table[i*a.width+j]
}
