/*
Package dictionary manages the on-disk compact dictionary image: writing it at
compile time and walking it in place at query time through a read-only memory
mapping.

The image is a pre-order flattening of the radix trie. Every node is written
as a header

	freq       u32
	nbChildren u64
	childOff   u64 x nbChildren

followed by its child descriptors, each

	labelLen u64
	label    bytes
	child node header, recursively

All integers are little-endian and every childOff is an absolute byte offset
from the start of the image, so the image is position-independent: it can be
mapped at any address, copied, or embedded without rewriting a single byte.
The root header sits at offset 0. Endianness matches the writing host; the
file is a build artifact consumed on the same platform, not an interchange
format.

The offset tables are what buy O(1) child indexing during the in-place walk:
query time allocates no node objects and reads only the bytes the traversal
actually touches.

# Compiling

Source dictionaries are plain text streams of whitespace-separated word and
frequency tokens. BuildFile parses the stream into a build trie and writes the
compact image:

	n, err := dictionary.BuildFile("words.txt", "dict.bin", false)

# Querying

Open maps an image read-only; the Node view satisfies suggest.Walker, so the
matcher runs directly over the mapped bytes:

	img, err := dictionary.Open("dict.bin")
	defer img.Close()
	matches := suggest.Matches(img.Root(), "chein", 1)

The mapping is immutable and safe to share between concurrent queries; it must
outlive every query that references it.
*/
package dictionary

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/spellserve/spellserve/pkg/suggest"
	"github.com/spellserve/spellserve/pkg/trie"
)

// Node header: freq u32 + nbChildren u64, before the offset table.
const headerSize = 12

// WriteCompact serializes the tree below root into the compact image form.
// The writer must support seeking: each node's child offset table is reserved
// as zeros, and each slot is patched with its child's start offset just
// before that child is written.
func WriteCompact[N suggest.Walker[N]](w io.WriteSeeker, root N) error {
	return writeCompactNode(w, root)
}

func writeCompactNode[N suggest.Walker[N]](w io.WriteSeeker, n N) error {
	nb := n.NumEdges()
	if err := binary.Write(w, binary.LittleEndian, n.Freq()); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(nb)); err != nil {
		return err
	}
	tablePos, err := tell(w)
	if err != nil {
		return err
	}
	zeros := make([]byte, 8*nb)
	if _, err := w.Write(zeros); err != nil {
		return err
	}
	for i := 0; i < nb; i++ {
		childPos, err := tell(w)
		if err != nil {
			return err
		}
		// Patch this child's slot in the offset table.
		if _, err := w.Seek(tablePos+int64(8*i), io.SeekStart); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint64(childPos)); err != nil {
			return err
		}
		if _, err := w.Seek(childPos, io.SeekStart); err != nil {
			return err
		}
		label, child := n.Edge(i)
		if err := binary.Write(w, binary.LittleEndian, uint64(len(label))); err != nil {
			return err
		}
		if _, err := w.Write(label); err != nil {
			return err
		}
		if err := writeCompactNode(w, child); err != nil {
			return err
		}
	}
	return nil
}

func tell(w io.WriteSeeker) (int64, error) {
	return w.Seek(0, io.SeekCurrent)
}

// DecodeCompact rebuilds a build-time trie from a compact image. The result
// enumerates exactly the (word, freq) set of the image; it is used by tooling
// and equivalence tests, never on the query path.
func DecodeCompact(data []byte) (*trie.Trie, error) {
	img, err := FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding compact image: %w", err)
	}
	t := trie.New()
	img.Walk(func(word string, freq uint32) {
		t.Add(freq, word)
	})
	return t, nil
}
