package server

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/spellserve/spellserve/internal/logger"
	"github.com/spellserve/spellserve/pkg/config"
	"github.com/spellserve/spellserve/pkg/dictionary"
	"github.com/spellserve/spellserve/pkg/suggest"
	"github.com/spellserve/spellserve/pkg/trie"
)

// Server handles match requests over msgpack stdio
type Server struct {
	img        *dictionary.Image
	config     *config.Config
	configPath string
	slog       *log.Logger
	// Reuse objects to prevent allocations
	decoder      *msgpack.Decoder
	writeMutex   sync.Mutex
	requestCount int64
}

// NewServer creates a server over an opened dictionary image
func NewServer(img *dictionary.Image, cfg *config.Config, configPath string) *Server {
	return &Server{
		img:        img,
		config:     cfg,
		configPath: configPath,
		slog:       logger.NewWithConfig("ipc", log.GetLevel(), false, true, log.TextFormatter),
		decoder:    msgpack.NewDecoder(os.Stdin),
	}
}

// reloadConfig reloads configuration from the TOML file
func (s *Server) reloadConfig() {
	if s.configPath == "" {
		return
	}
	newConfig, err := config.LoadConfig(s.configPath)
	if err != nil {
		log.Warnf("Failed to reload config, keeping current: %v", err)
		return
	}
	s.config = newConfig
	log.Debugf("Config reloaded from: %s", s.configPath)
}

// Start begins listening for match requests
func (s *Server) Start() error {
	log.Debug("Starting msgpack match server")

	for {
		if err := s.processRequest(); err != nil {
			if err == io.EOF {
				log.Debug("Client disconnected")
				return nil
			}
			continue
		}
	}
}

// processRequest handles a single match request
func (s *Server) processRequest() error {
	// Only reload config every 100 requests to reduce filesystem load
	s.requestCount++
	if s.requestCount%100 == 0 {
		s.reloadConfig()
	}

	var rawRequest map[string]interface{}
	s.slog.Debug("Waiting for request...")
	if err := s.decoder.Decode(&rawRequest); err != nil {
		s.slog.Debugf("Decode error: %v", err)
		return err
	}

	// Direct field access to avoid a marshal/unmarshal round trip
	var request MatchRequest
	if id, ok := rawRequest["id"].(string); ok {
		request.ID = id
	}
	if word, ok := rawRequest["w"].(string); ok {
		request.Word = word
	}
	request.MaxDist = -1
	switch v := rawRequest["d"].(type) {
	case int:
		request.MaxDist = v
	case int8:
		request.MaxDist = int(v)
	case int16:
		request.MaxDist = int(v)
	case int32:
		request.MaxDist = int(v)
	case int64:
		request.MaxDist = int(v)
	case uint8:
		request.MaxDist = int(v)
	case uint16:
		request.MaxDist = int(v)
	case uint32:
		request.MaxDist = int(v)
	case uint64:
		request.MaxDist = int(v)
	case float64:
		request.MaxDist = int(v)
	}

	s.slog.Debugf("Received match request: word='%s', maxDist=%d", request.Word, request.MaxDist)

	if len(request.Word) > trie.MaxWordLen {
		return s.sendError(request.ID, fmt.Sprintf("word too long (max: %d)", trie.MaxWordLen), 400)
	}

	// Empty word or negative budget: a well-formed query with no answers.
	if request.Word == "" || request.MaxDist < 0 {
		return s.sendResponse(&MatchResponse{
			ID:      request.ID,
			Matches: []MatchEntry{},
			Count:   0,
		})
	}

	maxDist := request.MaxDist
	if maxDist > s.config.Server.MaxDistance {
		maxDist = s.config.Server.MaxDistance
	}

	start := time.Now()
	matches := suggest.Matches(s.img.Root(), request.Word, uint32(maxDist))
	elapsed := time.Since(start)

	if limit := s.config.Server.MaxLimit; limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	entries := make([]MatchEntry, len(matches))
	for i, m := range matches {
		entries[i] = MatchEntry{Word: m.Word, Freq: m.Freq, Distance: m.Distance}
	}

	return s.sendResponse(&MatchResponse{
		ID:        request.ID,
		Matches:   entries,
		Count:     len(entries),
		TimeTaken: elapsed.Microseconds(),
	})
}

// sendResponse encodes and sends a msgpack response to stdout atomically
func (s *Server) sendResponse(response any) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	// Encode to buffer first to ensure atomic write
	var buf bytes.Buffer
	encoder := msgpack.NewEncoder(&buf)
	if err := encoder.Encode(response); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	os.Stdout.Sync()

	return nil
}

// sendError sends a msgpack error response
func (s *Server) sendError(id string, message string, code int) error {
	return s.sendResponse(&MatchError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
