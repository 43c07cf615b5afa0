package trie

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// The simple stream form is a pre-order flattening with implicit links:
//
//	freq       u32
//	nbChildren u64
//	for each child: labelLen u64, label bytes, child node
//
// All integers are little-endian. It carries the same information as the
// compact image written by pkg/dictionary, minus the child offset tables.

// Write serializes the trie in the simple stream form.
func (t *Trie) Write(w io.Writer) error {
	return t.root.write(w)
}

func (n *node) write(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, n.freq); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(n.edges))); err != nil {
		return err
	}
	for _, e := range n.edges {
		if err := binary.Write(w, binary.LittleEndian, uint64(len(e.label))); err != nil {
			return err
		}
		if _, err := w.Write(e.label); err != nil {
			return err
		}
		if err := e.node.write(w); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes a trie from the simple stream form.
func Read(r io.Reader) (*Trie, error) {
	t := New()
	if err := t.root.read(r, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadBytes decodes a trie from an in-memory simple-form image.
func ReadBytes(data []byte) (*Trie, error) {
	return Read(bytes.NewReader(data))
}

func (n *node) read(r io.Reader, t *Trie) error {
	if err := binary.Read(r, binary.LittleEndian, &n.freq); err != nil {
		return fmt.Errorf("reading node freq: %w", err)
	}
	if n.freq != 0 {
		t.size++
	}
	var nb uint64
	if err := binary.Read(r, binary.LittleEndian, &nb); err != nil {
		return fmt.Errorf("reading child count: %w", err)
	}
	n.edges = make([]edge, 0, nb)
	for i := uint64(0); i < nb; i++ {
		var lsize uint64
		if err := binary.Read(r, binary.LittleEndian, &lsize); err != nil {
			return fmt.Errorf("reading label length: %w", err)
		}
		if lsize == 0 || lsize > MaxWordLen {
			return fmt.Errorf("invalid label length %d", lsize)
		}
		label := make([]byte, lsize)
		if _, err := io.ReadFull(r, label); err != nil {
			return fmt.Errorf("reading label: %w", err)
		}
		child := &node{}
		if err := child.read(r, t); err != nil {
			return err
		}
		n.edges = append(n.edges, edge{label: label, node: child})
	}
	return nil
}
