package suggest

import (
	"sort"
)

// Walker is the read-side view of a dictionary trie node. Both the build-time
// trie (pkg/trie) and the mmapped compact image (pkg/dictionary) satisfy it,
// so one matcher serves both.
type Walker[N any] interface {
	// Freq returns the node's frequency; 0 means non-terminal.
	Freq() uint32
	// NumEdges returns the number of outgoing edges.
	NumEdges() int
	// Edge returns the i-th edge's label and child node.
	Edge(i int) ([]byte, N)
}

// Match is one approximate lookup result.
type Match struct {
	Word     string `json:"word"`
	Freq     uint32 `json:"freq"`
	Distance uint32 `json:"distance"`
}

// Matches returns every dictionary word within maxDist of query, ranked by
// distance ascending, then frequency descending, then byte-lexicographic
// word order.
//
// The walk shares a single automaton across the whole traversal: entering an
// edge feeds its label bytes, moving to a sibling rolls the automaton back to
// the node's depth. Subtrees are abandoned as soon as a fed byte proves no
// descendant can come back within budget. The trie itself is never mutated,
// so concurrent calls over one shared image are safe; each call owns its
// automaton.
func Matches[N Walker[N]](root N, query string, maxDist uint32) []Match {
	dl := NewAutomaton(query, maxDist)
	var res []Match
	matchNode(root, dl, &res)
	sort.Slice(res, func(i, j int) bool {
		if res[i].Distance != res[j].Distance {
			return res[i].Distance < res[j].Distance
		}
		if res[i].Freq != res[j].Freq {
			return res[i].Freq > res[j].Freq
		}
		return res[i].Word < res[j].Word
	})
	return res
}

func matchNode[N Walker[N]](n N, dl *Automaton, res *[]Match) {
	baselen := len(dl.Current())
	for i := 0; i < n.NumEdges(); i++ {
		dl.Rollback(baselen)
		label, child := n.Edge(i)
		matchEdge(label, child, dl, res)
	}
}

func matchEdge[N Walker[N]](label []byte, child N, dl *Automaton, res *[]Match) {
	accept := false
	for _, c := range label {
		cont, ok := dl.Feed(c)
		if !cont {
			return
		}
		accept = ok
	}
	if accept && child.Freq() != 0 {
		*res = append(*res, Match{
			Word:     string(dl.Current()),
			Freq:     child.Freq(),
			Distance: dl.Dist(),
		})
	}
	matchNode(child, dl, res)
}
