/*
Package suggest implements approximate word lookup: ranked matches within a
bounded Damerau-Levenshtein distance, computed by walking a radix trie in
lockstep with an incremental edit-distance automaton.

The package forms the computational core. It knows nothing about storage:
the trie is consumed through the Walker interface, implemented both by the
build-time trie and by the mmapped compact image, so a query can run directly
over on-disk bytes without deserialization.

# Automaton

Automaton maintains the dynamic-programming table of the optimal string
alignment variant of Damerau-Levenshtein distance between a fixed query and a
growing candidate prefix. The two primitives are Feed, which appends one byte
and fills one table row, and Rollback, which truncates the candidate and its
rows. Rollback is what makes the trie walk cheap: when the matcher moves from
one subtree to a sibling, the rows computed for the shared path prefix are
reused as-is.

Rows are banded. A cell further than the distance budget from the diagonal can
never hold a value within budget, so Feed fills only the band and leaves the
rest at the Infinity sentinel. For a walk visiting n nodes with budget k, the
total work is O(n*k) cells rather than O(n*len(query)).

# Matching

Matches drives a depth-first traversal. At each node it records the current
depth, then for each outgoing edge rolls the automaton back to that depth and
feeds the edge label byte by byte. A Feed reporting that no cell of its row is
within budget prunes the whole subtree. A terminal node reached with the
accept flag set emits a match carrying the concatenated path label, the
node's frequency, and the exact distance.

Results are ranked by distance ascending, then frequency descending, then
byte order of the words:

	matches := suggest.Matches(img.Root(), "chein", 1)
	// [{chien 100 1}]

Each call allocates its own automaton, so concurrent queries against one
shared immutable image are safe.
*/
package suggest
