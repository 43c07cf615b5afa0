/*
Package trie implements the build-time radix (Patricia) trie over byte strings
with frequency values.

Words are inserted once during compilation and never deleted. Each node keeps
an ordered list of outgoing edges; the first bytes of the edge labels are
pairwise distinct, so lookups dispatch on a single byte. Chains of single-child
non-terminal nodes are collapsed into one edge, which keeps the tree shallow
even for large vocabularies sharing long prefixes.

A frequency of zero marks a node as non-terminal. Dictionary entries always
carry a frequency >= 1; the compiler layer clamps zero-frequency input before
it reaches Add.

# Serialization

The trie has two binary forms: a simple stream form (see serialize.go) used
for round-trip testing and debugging, and the compact mmap-friendly image
written by pkg/dictionary. Both are pre-order flattenings of the same tree and
enumerate identical (word, freq) sets.

The tree is single-writer during build. Once compiled it is only consumed
through the read-side Walker view, which is safe to share.
*/
package trie

import (
	"fmt"
	"io"
)

// MaxWordLen bounds the supported word length in bytes. Insert, serialization
// and matching all recurse along the root-to-leaf path, so trie depth (and
// with it stack depth) is capped by the longest inserted word.
const MaxWordLen = 4096

// edge is an outgoing transition: a non-empty label and the child it leads to.
type edge struct {
	label []byte
	node  *node
}

// node is a build-time trie node. freq == 0 means non-terminal.
type node struct {
	edges []edge
	freq  uint32
}

// Trie is a radix trie mapping words to uint32 frequencies.
// The zero value is not usable; call New.
type Trie struct {
	root *node
	size int
}

// New returns an empty trie. The root is always non-terminal: the empty
// string is not a dictionary word.
func New() *Trie {
	return &Trie{root: &node{}}
}

// Len returns the number of words in the trie.
func (t *Trie) Len() int {
	return t.size
}

// Add inserts word with the given frequency. Adding the same word twice
// overwrites the earlier frequency. The final shape of the trie depends only
// on the set of (word, freq) pairs, not on insertion order.
func (t *Trie) Add(freq uint32, word string) {
	if len(word) == 0 {
		return
	}
	if t.root.add(freq, []byte(word)) {
		t.size++
	}
}

// add consumes word against the edges below n. Reports whether a new word was
// created (false when an existing word's frequency was overwritten).
func (n *node) add(freq uint32, word []byte) bool {
	if len(word) == 0 {
		created := n.freq == 0
		n.freq = freq
		return created
	}
	e := n.edgeIndex(word[0])
	if e < 0 {
		// No edge shares the first byte: append a fresh terminal leaf.
		n.edges = append(n.edges, edge{label: word, node: &node{freq: freq}})
		return true
	}
	ed := &n.edges[e]
	pos := mismatch(word, ed.label)
	if pos == len(ed.label) {
		// Edge label is a full prefix of the word: descend.
		return ed.node.add(freq, word[pos:])
	}
	// The label and the word diverge at pos (pos >= 1 since the first byte
	// matched). Split the edge: a new internal node takes over the label
	// tail and the former child.
	split := &node{edges: []edge{{label: ed.label[pos:], node: ed.node}}}
	created := true
	if pos == len(word) {
		// The word ends exactly at the split point.
		split.freq = freq
	} else {
		// The word continues past the split: fork a second terminal leaf.
		split.edges = append(split.edges, edge{label: word[pos:], node: &node{freq: freq}})
	}
	ed.label = ed.label[:pos]
	ed.node = split
	return created
}

// Lookup returns the frequency of word, or 0 if word is not in the trie.
func (t *Trie) Lookup(word string) uint32 {
	n := t.root
	rest := []byte(word)
	for len(rest) > 0 {
		e := n.edgeIndex(rest[0])
		if e < 0 {
			return 0
		}
		label := n.edges[e].label
		if len(rest) < len(label) || mismatch(rest, label) != len(label) {
			return 0
		}
		rest = rest[len(label):]
		n = n.edges[e].node
	}
	return n.freq
}

// Walk calls fn for every (word, freq) pair in edge order (pre-order DFS).
func (t *Trie) Walk(fn func(word string, freq uint32)) {
	buf := make([]byte, 0, 64)
	t.root.walk(buf, fn)
}

func (n *node) walk(path []byte, fn func(string, uint32)) {
	if n.freq != 0 {
		fn(string(path), n.freq)
	}
	for _, e := range n.edges {
		e.node.walk(append(path, e.label...), fn)
	}
}

// WriteDot writes the trie as a Graphviz digraph, terminal nodes labeled
// with their frequency.
func (t *Trie) WriteDot(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph trie {"); err != nil {
		return err
	}
	if err := t.root.writeDot(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func (n *node) writeDot(w io.Writer) error {
	label := ""
	if n.freq != 0 {
		label = fmt.Sprintf("%d", n.freq)
	}
	if _, err := fmt.Fprintf(w, "    n%p [label=%q];\n", n, label); err != nil {
		return err
	}
	for _, e := range n.edges {
		if _, err := fmt.Fprintf(w, "    n%p -> n%p [label=%q];\n", n, e.node, e.label); err != nil {
			return err
		}
		if err := e.node.writeDot(w); err != nil {
			return err
		}
	}
	return nil
}

// edgeIndex returns the index of the edge whose label starts with c, or -1.
// First bytes are pairwise distinct, so at most one edge can match.
func (n *node) edgeIndex(c byte) int {
	for i := range n.edges {
		if n.edges[i].label[0] == c {
			return i
		}
	}
	return -1
}

// mismatch returns the length of the common prefix of a and b.
func mismatch(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
