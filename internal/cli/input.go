// Package cli handles the line-oriented query loop reading match requests
// from stdin and printing one JSON result array per request.
package cli

import (
	"bufio"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spellserve/spellserve/internal/logger"
	"github.com/spellserve/spellserve/pkg/dictionary"
	"github.com/spellserve/spellserve/pkg/suggest"
)

// InputHandler consumes (tag, max_distance, word) triples from stdin and runs
// the matcher over the mapped dictionary image. The tag is echoed back in
// debug output only; it is reserved for future dispatch.
type InputHandler struct {
	img          *dictionary.Image
	out          *bufio.Writer
	qlog         *log.Logger
	debug        bool
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler. The query
// logger is created here so it picks up the level main has already set;
// debug lowers it so the per-query timings are shown.
func NewInputHandler(img *dictionary.Image, debug bool) *InputHandler {
	qlog := logger.New("query")
	if debug {
		qlog.SetLevel(log.DebugLevel)
	}
	return &InputHandler{
		img:   img,
		out:   bufio.NewWriter(os.Stdout),
		qlog:  qlog,
		debug: debug,
	}
}

// Start begins the query loop. Records are whitespace-separated token
// triples, so they may span lines. The loop ends at EOF.
func (h *InputHandler) Start() error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Split(bufio.ScanWords)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	defer h.out.Flush()

	for {
		if !scanner.Scan() {
			break
		}
		tag := scanner.Text()
		if !scanner.Scan() {
			log.Warnf("Dropping incomplete record (tag %q)", tag)
			break
		}
		distTok := scanner.Text()
		if !scanner.Scan() {
			log.Warnf("Dropping incomplete record (tag %q)", tag)
			break
		}
		word := scanner.Text()

		maxDist, err := strconv.Atoi(distTok)
		if err != nil {
			log.Warnf("Bad max_distance %q for tag %q", distTok, tag)
			maxDist = -1
		}
		if err := h.handleQuery(tag, maxDist, word); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// handleQuery runs one match request and prints its JSON result line.
// A negative budget or empty word short-circuits to an empty array.
func (h *InputHandler) handleQuery(tag string, maxDist int, word string) error {
	h.requestCount++

	matches := []suggest.Match{}
	if maxDist >= 0 && word != "" {
		start := time.Now()
		matches = suggest.Matches(h.img.Root(), word, uint32(maxDist))
		if matches == nil {
			// Keep the output an array ("[]") rather than "null".
			matches = []suggest.Match{}
		}
		if h.debug {
			h.qlog.Debugf("Took [ %v ] for query '%s' (tag %s, k=%d): %d matches",
				time.Since(start), word, tag, maxDist, len(matches))
		}
	}

	line, err := json.Marshal(matches)
	if err != nil {
		return err
	}
	if _, err := h.out.Write(line); err != nil {
		return err
	}
	if err := h.out.WriteByte('\n'); err != nil {
		return err
	}
	// One result line per request, visible immediately.
	return h.out.Flush()
}
