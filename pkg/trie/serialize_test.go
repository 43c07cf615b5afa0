package trie

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	words := randomWords(rng, 300)
	tr := New()
	for w, f := range words {
		tr.Add(f, w)
	}

	var buf bytes.Buffer
	require.NoError(t, tr.Write(&buf))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, tr.Len(), got.Len())
	for w, f := range words {
		require.Equal(t, f, got.Lookup(w), "word %q", w)
	}
	for w := range words {
		require.Equal(t, uint32(0), got.Lookup(w+"!"))
	}
}

func TestReadBytes(t *testing.T) {
	tr := New()
	tr.Add(7, "sept")
	tr.Add(8, "huit")

	var buf bytes.Buffer
	require.NoError(t, tr.Write(&buf))

	got, err := ReadBytes(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint32(7), got.Lookup("sept"))
	require.Equal(t, uint32(8), got.Lookup("huit"))
}

func TestReadTruncated(t *testing.T) {
	tr := New()
	tr.Add(1, "mot")
	var buf bytes.Buffer
	require.NoError(t, tr.Write(&buf))

	data := buf.Bytes()
	for _, cut := range []int{0, 1, 4, 11, len(data) - 1} {
		_, err := ReadBytes(data[:cut])
		require.Error(t, err, "cut at %d", cut)
	}
}

func TestEmptyTrieRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Write(&buf))
	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, 0, got.Len())
	require.Equal(t, uint32(0), got.Lookup("x"))
}
