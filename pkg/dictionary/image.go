package dictionary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"
)

// Image is a compact dictionary mapped (or held) in memory and walked in
// place. It is immutable and safe for concurrent readers; it must not be
// closed while queries still reference it.
type Image struct {
	data []byte
	mm   mmap.MMap
	f    *os.File
}

// Open memory-maps the compact dictionary file read-only.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() < headerSize {
		f.Close()
		return nil, fmt.Errorf("dictionary %s: too small for a root header (%d bytes)", path, info.Size())
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}
	log.Debugf("Mapped dictionary %s (%d bytes)", path, info.Size())
	return &Image{data: mm, mm: mm, f: f}, nil
}

// FromBytes wraps an in-memory image. The image is position-independent, so
// a bytewise copy of a mapped file behaves identically.
func FromBytes(data []byte) (*Image, error) {
	if len(data) < headerSize {
		return nil, errors.New("image too small for a root header")
	}
	return &Image{data: data}, nil
}

// Close unmaps the image. No queries may be in flight.
func (im *Image) Close() error {
	if im.mm == nil {
		return nil
	}
	err := im.mm.Unmap()
	if cerr := im.f.Close(); err == nil {
		err = cerr
	}
	im.mm = nil
	im.data = nil
	return err
}

// Size returns the image length in bytes.
func (im *Image) Size() int {
	return len(im.data)
}

// Root returns the root node, whose header sits at offset 0.
func (im *Image) Root() Node {
	return Node{data: im.data}
}

// Lookup returns the frequency of word, or 0 if word is not in the
// dictionary. Used by tooling and tests; query traffic goes through
// suggest.Matches.
func (im *Image) Lookup(word string) uint32 {
	n := im.Root()
	rest := []byte(word)
outer:
	for len(rest) > 0 {
		for i := 0; i < n.NumEdges(); i++ {
			label, child := n.Edge(i)
			if label[0] != rest[0] {
				continue
			}
			if len(rest) < len(label) || !bytes.Equal(rest[:len(label)], label) {
				return 0
			}
			rest = rest[len(label):]
			n = child
			continue outer
		}
		return 0
	}
	return n.Freq()
}

// Walk calls fn for every (word, freq) pair in edge order (pre-order DFS).
func (im *Image) Walk(fn func(word string, freq uint32)) {
	walkNode(im.Root(), make([]byte, 0, 64), fn)
}

func walkNode(n Node, path []byte, fn func(string, uint32)) {
	if f := n.Freq(); f != 0 {
		fn(string(path), f)
	}
	for i := 0; i < n.NumEdges(); i++ {
		label, child := n.Edge(i)
		walkNode(child, append(path, label...), fn)
	}
}

// Node is a node header inside the image. The zero value is invalid. It
// satisfies suggest.Walker[Node]; traversal allocates nothing beyond the
// label slices, which alias the image.
type Node struct {
	data []byte
	off  int
}

// Freq returns the node's frequency; 0 means non-terminal.
func (n Node) Freq() uint32 {
	return binary.LittleEndian.Uint32(n.data[n.off:])
}

// NumEdges returns the number of outgoing edges.
func (n Node) NumEdges() int {
	return int(binary.LittleEndian.Uint64(n.data[n.off+4:]))
}

// Edge returns the i-th edge's label and child. The label aliases the mapped
// bytes and is valid until Close.
func (n Node) Edge(i int) ([]byte, Node) {
	childOff := int(binary.LittleEndian.Uint64(n.data[n.off+headerSize+8*i:]))
	labelLen := int(binary.LittleEndian.Uint64(n.data[childOff:]))
	label := n.data[childOff+8 : childOff+8+labelLen]
	return label, Node{data: n.data, off: childOff + 8 + labelLen}
}
