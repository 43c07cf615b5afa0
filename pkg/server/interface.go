/*
Package server implements msgpack IPC for approximate dictionary lookups.

The server provides a minimal interface for edit-distance matching using
msgpack serialization over stdin/stdout. Messages are processed synchronously
with timing info included in responses; the dictionary image is mapped once
at startup and shared by every request.

# IPC

The protocol is request/response. Each message carries an ID field the
response echoes back, the query word, and a distance budget:

	{"id": "req_001", "w": "chein", "d": 1}

The server responds with matches ranked by distance, then frequency, then
word order:

	{"id": "req_001", "m": [{"w": "chien", "f": 100, "d": 1}], "c": 1, "t": 87}

A negative budget or an empty word yields an empty match array rather than an
error: those are valid queries with no answers. Errors are reserved for
requests the server cannot interpret at all:

	{"id": "req_002", "e": "word too long (max: 4096)", "c": 400}

The configured max_limit caps the number of matches per response and
max_distance caps the per-request budget; both live in config.toml and are
reloaded periodically so clients can tune a running server.

msgpack's binary framing keeps messages ~30 to 50% smaller than JSON and
avoids any quoting of raw word bytes.
*/
package server

// MatchRequest - approximate lookup request
type MatchRequest struct {
	ID      string `msgpack:"id"`
	Word    string `msgpack:"w"`
	MaxDist int    `msgpack:"d"`
}

// MatchEntry - one dictionary hit
type MatchEntry struct {
	Word     string `msgpack:"w"`
	Freq     uint32 `msgpack:"f"`
	Distance uint32 `msgpack:"d"`
}

// MatchResponse - lookup response
type MatchResponse struct {
	ID        string       `msgpack:"id"`
	Matches   []MatchEntry `msgpack:"m"`
	Count     int          `msgpack:"c"`
	TimeTaken int64        `msgpack:"t"`
}

// MatchError holds basic error information for failed requests
type MatchError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
