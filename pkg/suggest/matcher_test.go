package suggest_test

import (
	"testing"

	"github.com/spellserve/spellserve/pkg/suggest"
	"github.com/spellserve/spellserve/pkg/trie"
)

func buildTrie(pairs map[string]uint32) *trie.Trie {
	t := trie.New()
	for w, f := range pairs {
		t.Add(f, w)
	}
	return t
}

func TestMatchesScenario(t *testing.T) {
	dict := buildTrie(map[string]uint32{
		"chien":  100,
		"chat":   50,
		"chiens": 80,
	})

	got := suggest.Matches(dict.Root(), "chein", 1)
	want := []suggest.Match{{Word: "chien", Freq: 100, Distance: 1}}
	assertMatches(t, got, want)

	got = suggest.Matches(dict.Root(), "chien", 1)
	want = []suggest.Match{
		{Word: "chien", Freq: 100, Distance: 0},
		{Word: "chiens", Freq: 80, Distance: 1},
	}
	assertMatches(t, got, want)
}

func TestMatchesEmpty(t *testing.T) {
	dict := buildTrie(map[string]uint32{"chien": 100})
	if got := suggest.Matches(dict.Root(), "zzzzzz", 1); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

var corpus = map[string]uint32{
	"chien": 100, "chiens": 80, "chat": 50, "chats": 45,
	"cheval": 70, "cheveu": 20, "chien.": 5, "niche": 60,
	"nicher": 30, "chine": 90, "chinois": 25, "hier": 10,
	"c": 3, "ch": 7, "chie": 12,
}

// TestMatchCompleteness: every dictionary word matches itself at distance 0
// for any budget.
func TestMatchCompleteness(t *testing.T) {
	dict := buildTrie(corpus)
	for w := range corpus {
		for k := uint32(0); k <= 3; k++ {
			found := false
			for _, m := range suggest.Matches(dict.Root(), w, k) {
				if m.Word == w && m.Distance == 0 && m.Freq == corpus[w] {
					found = true
				}
			}
			if !found {
				t.Errorf("matches(%q, %d) does not contain the word itself", w, k)
			}
		}
	}
}

// TestMatchSoundness: every emitted match is a dictionary word, within
// budget, and carries the exact distance and frequency. Completeness of the
// set is checked against a brute-force scan of the corpus.
func TestMatchSoundness(t *testing.T) {
	dict := buildTrie(corpus)
	queries := []string{"chein", "chien", "niche", "cheva", "x", "chin", "chats", ""}
	for _, q := range queries {
		for k := uint32(0); k <= 4; k++ {
			got := suggest.Matches(dict.Root(), q, k)
			seen := make(map[string]bool)
			for _, m := range got {
				f, ok := corpus[m.Word]
				if !ok {
					t.Errorf("matches(%q, %d) emitted %q, not a dictionary word", q, k, m.Word)
					continue
				}
				if m.Freq != f {
					t.Errorf("matches(%q, %d): %q freq = %d, want %d", q, k, m.Word, m.Freq, f)
				}
				if m.Distance > k {
					t.Errorf("matches(%q, %d): %q distance %d exceeds budget", q, k, m.Word, m.Distance)
				}
				if ref := refDistance(q, m.Word); m.Distance != ref {
					t.Errorf("matches(%q, %d): %q distance = %d, want %d", q, k, m.Word, m.Distance, ref)
				}
				seen[m.Word] = true
			}
			for w := range corpus {
				if !seen[w] && q != "" && refDistance(q, w) <= k {
					t.Errorf("matches(%q, %d) is missing %q", q, k, w)
				}
			}
		}
	}
}

// TestRankingLaw: adjacent output entries obey (distance ASC, freq DESC,
// word ASC).
func TestRankingLaw(t *testing.T) {
	dict := buildTrie(corpus)
	for _, q := range []string{"chien", "chine", "nich", "chat"} {
		res := suggest.Matches(dict.Root(), q, 3)
		for i := 1; i < len(res); i++ {
			a, b := res[i-1], res[i]
			ok := a.Distance < b.Distance ||
				(a.Distance == b.Distance && a.Freq > b.Freq) ||
				(a.Distance == b.Distance && a.Freq == b.Freq && a.Word < b.Word)
			if !ok {
				t.Errorf("matches(%q): entries %d,%d out of order: %+v then %+v", q, i-1, i, a, b)
			}
		}
	}
}

// refDistance feeds the candidate through a fresh unbounded automaton: the
// matcher must agree with the automaton it is built on.
func refDistance(query, candidate string) uint32 {
	dl := suggest.NewAutomaton(query, 10000)
	for i := 0; i < len(candidate); i++ {
		dl.Feed(candidate[i])
	}
	return dl.Dist()
}

func assertMatches(t *testing.T, got, want []suggest.Match) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d matches %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func BenchmarkMatches(b *testing.B) {
	dict := buildTrie(corpus)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		suggest.Matches(dict.Root(), "chein", 2)
	}
}
