package dictionary

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spellserve/spellserve/pkg/suggest"
	"github.com/spellserve/spellserve/pkg/trie"
)

func writeImage(t *testing.T, tr *trie.Trie) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.bin")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteCompact(f, tr.Root()))
	require.NoError(t, f.Close())
	return path
}

func buildTrie(words map[string]uint32) *trie.Trie {
	tr := trie.New()
	for w, f := range words {
		tr.Add(f, w)
	}
	return tr
}

func randomVocabulary(seed int64, n int) map[string]uint32 {
	rng := rand.New(rand.NewSource(seed))
	const letters = "abcdeé" // multi-byte rune keeps byte semantics honest
	words := make(map[string]uint32, n)
	for len(words) < n {
		l := 1 + rng.Intn(12)
		var sb strings.Builder
		for i := 0; i < l; i++ {
			sb.WriteByte(letters[rng.Intn(len(letters))])
		}
		words[sb.String()] = uint32(1 + rng.Intn(100000))
	}
	return words
}

// TestCompactRoundTrip: compile, map, and look every word back up.
func TestCompactRoundTrip(t *testing.T) {
	words := randomVocabulary(21, 800)
	tr := buildTrie(words)
	path := writeImage(t, tr)

	img, err := Open(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, img.Close()) }()

	for w, f := range words {
		require.Equal(t, f, img.Lookup(w), "word %q", w)
	}
	for w := range words {
		require.Equal(t, uint32(0), img.Lookup(w+"@"), "probe %q", w+"@")
	}
	require.Equal(t, uint32(0), img.Lookup("notinhere"))
}

// TestCompactSimpleEquivalence: the two encodings of one trie enumerate the
// same (word, freq) set.
func TestCompactSimpleEquivalence(t *testing.T) {
	words := randomVocabulary(22, 500)
	tr := buildTrie(words)

	var simple bytes.Buffer
	require.NoError(t, tr.Write(&simple))
	fromSimple, err := trie.ReadBytes(simple.Bytes())
	require.NoError(t, err)

	path := writeImage(t, tr)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := FromBytes(data)
	require.NoError(t, err)

	gotSimple := make(map[string]uint32)
	fromSimple.Walk(func(w string, f uint32) { gotSimple[w] = f })
	gotCompact := make(map[string]uint32)
	img.Walk(func(w string, f uint32) { gotCompact[w] = f })

	require.Equal(t, words, gotSimple)
	require.Equal(t, words, gotCompact)
}

// TestPositionIndependence: a bytewise copy of the image behaves identically
// to the mapped file.
func TestPositionIndependence(t *testing.T) {
	words := randomVocabulary(23, 300)
	tr := buildTrie(words)
	path := writeImage(t, tr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	copied := make([]byte, len(data))
	copy(copied, data)

	img, err := FromBytes(copied)
	require.NoError(t, err)
	for w, f := range words {
		require.Equal(t, f, img.Lookup(w))
	}
}

func TestDecodeCompact(t *testing.T) {
	words := randomVocabulary(24, 200)
	tr := buildTrie(words)
	path := writeImage(t, tr)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	decoded, err := DecodeCompact(data)
	require.NoError(t, err)
	require.Equal(t, tr.Len(), decoded.Len())
	for w, f := range words {
		require.Equal(t, f, decoded.Lookup(w))
	}
}

// TestMatchesOverImage: the matcher produces identical results over the
// build trie and over the mapped image.
func TestMatchesOverImage(t *testing.T) {
	tr := buildTrie(map[string]uint32{
		"chien":  100,
		"chat":   50,
		"chiens": 80,
	})
	path := writeImage(t, tr)
	img, err := Open(path)
	require.NoError(t, err)
	defer img.Close()

	got := suggest.Matches(img.Root(), "chein", 1)
	require.Equal(t, []suggest.Match{{Word: "chien", Freq: 100, Distance: 1}}, got)

	got = suggest.Matches(img.Root(), "chien", 1)
	require.Equal(t, []suggest.Match{
		{Word: "chien", Freq: 100, Distance: 0},
		{Word: "chiens", Freq: 80, Distance: 1},
	}, got)

	// Larger vocabulary: image results must equal in-memory results.
	words := randomVocabulary(25, 400)
	tr2 := buildTrie(words)
	path2 := writeImage(t, tr2)
	img2, err := Open(path2)
	require.NoError(t, err)
	defer img2.Close()

	for _, q := range []string{"abc", "decade", "ée", "bbbbbb"} {
		for k := uint32(0); k <= 2; k++ {
			require.Equal(t,
				suggest.Matches(tr2.Root(), q, k),
				suggest.Matches(img2.Root(), q, k),
				"query %q k=%d", q, k)
		}
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)

	short := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(short, []byte{1, 2, 3}, 0644))
	_, err = Open(short)
	require.Error(t, err)
}

func TestEmptyTrieImage(t *testing.T) {
	tr := trie.New()
	path := writeImage(t, tr)
	img, err := Open(path)
	require.NoError(t, err)
	defer img.Close()

	require.Equal(t, 0, img.Root().NumEdges())
	require.Equal(t, uint32(0), img.Lookup("anything"))
	require.Empty(t, suggest.Matches(img.Root(), "anything", 2))
}
