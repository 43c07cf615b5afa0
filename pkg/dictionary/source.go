package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/spellserve/spellserve/pkg/trie"
)

// LoadText reads whitespace-separated word/frequency pairs from r into t and
// returns the number of pairs inserted.
//
// Parsing is lenient by default, matching how the source lists are produced:
// a pair whose frequency token does not parse is skipped with a warning, and
// a trailing word with no frequency is dropped. A frequency of 0 is clamped
// to 1, since 0 is reserved to mark non-terminal nodes. strict upgrades both
// syntax cases to errors.
func LoadText(r io.Reader, t *trie.Trie, strict bool) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() {
		word := scanner.Text()
		if !scanner.Scan() {
			if strict {
				return count, fmt.Errorf("word %q has no frequency", word)
			}
			log.Warnf("Dropping trailing word %q with no frequency", word)
			break
		}
		freqTok := scanner.Text()
		freq, err := strconv.ParseUint(freqTok, 10, 32)
		if err != nil {
			if strict {
				return count, fmt.Errorf("bad frequency %q for word %q: %w", freqTok, word, err)
			}
			log.Warnf("Skipping word %q: bad frequency %q", word, freqTok)
			continue
		}
		if len(word) > trie.MaxWordLen {
			log.Warnf("Skipping word of %d bytes (max %d)", len(word), trie.MaxWordLen)
			continue
		}
		if freq == 0 {
			log.Debugf("Clamping zero frequency for word %q to 1", word)
			freq = 1
		}
		t.Add(uint32(freq), word)
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, err
	}
	return count, nil
}

// BuildFile compiles a text word-frequency list into a compact dictionary
// image on disk. Returns the number of pairs read from the source.
func BuildFile(inputPath, outputPath string, strict bool) (int, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	t := trie.New()
	count, err := LoadText(bufio.NewReader(in), t, strict)
	if err != nil {
		return count, fmt.Errorf("reading %s: %w", inputPath, err)
	}
	log.Debugf("Parsed %d pairs (%d distinct words)", count, t.Len())

	out, err := os.Create(outputPath)
	if err != nil {
		return count, err
	}
	if err := WriteCompact(out, t.Root()); err != nil {
		out.Close()
		return count, fmt.Errorf("writing %s: %w", outputPath, err)
	}
	if err := out.Close(); err != nil {
		return count, err
	}
	return count, nil
}
