/*
Package server implements msgpack IPC for content assist services.

The server reads a stream of msgpack maps from stdin and writes one msgpack
map per request to stdout. Values are self-delimiting, so there is no extra
framing. Requests are processed synchronously with timing info included in
responses.

# IPC

Each message carries an ID that is echoed back. A message with an "action"
field is a dictionary request, anything else is a proposal request.

A proposal request sends the editor buffer and the caret as a rune offset.
A missing or negative caret means the end of the buffer:

	{"id": "req_001", "b": "The ca", "c": 6, "l": 24}

The server answers with the proposals for the word around the caret. Each
carries the replacement span and the caret after applying it:

	{"id": "req_001", "s": [{"w": "cat", "o": 4, "n": 2, "a": 7, "r": 1}, {"w": "caterpillar", "o": 4, "n": 2, "a": 15, "r": 2}], "c": 2, "t": 41}

Dictionary management replaces the loaded words at runtime:

	{"id": "dict_001", "action": "set_words", "words": ["cat", "caterpillar"]}
	{"id": "dict_002", "action": "load_file", "path": "/usr/share/dict/words"}
	{"id": "dict_003", "action": "get_info"}

Server limits can be changed at runtime. Omitted fields keep their value and
the result is saved to the active config file:

	{"id": "cfg_001", "action": "set_limits", "max_limit": 10}

Malformed requests get a CompletionError with an HTTP-like code.

The server maintains a request count for periodic config reloading.
*/
package server

import "github.com/bastiangx/wordassist/pkg/dictionary"

// ProposalRequest asks for the proposals at a caret.
type ProposalRequest struct {
	ID     string `msgpack:"id"`
	Buffer string `msgpack:"b"`
	Caret  *int   `msgpack:"c,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// ProposalSuggestion is one proposal on the wire.
type ProposalSuggestion struct {
	Word       string `msgpack:"w"`
	Offset     int    `msgpack:"o"`
	Length     int    `msgpack:"n"`
	CaretAfter int    `msgpack:"a"`
	Detail     string `msgpack:"d,omitempty"`
	Rank       uint16 `msgpack:"r"`
}

// ProposalResponse lists proposals in dictionary order.
type ProposalResponse struct {
	ID          string               `msgpack:"id"`
	Suggestions []ProposalSuggestion `msgpack:"s"`
	Count       int                  `msgpack:"c"`
	TimeTaken   int64                `msgpack:"t"`
}

// DictionaryRequest - dictionary management request
type DictionaryRequest struct {
	ID      string             `msgpack:"id"`
	Action  string             `msgpack:"action"` // "get_info", "set_words", "load_file"
	Words   []string           `msgpack:"words,omitempty"`
	Entries []dictionary.Entry `msgpack:"entries,omitempty"`
	Path    string             `msgpack:"path,omitempty"`
}

// DictionaryResponse - dictionary operation response
type DictionaryResponse struct {
	ID          string `msgpack:"id"`
	Status      string `msgpack:"status"`
	Error       string `msgpack:"error,omitempty"`
	WordCount   int    `msgpack:"word_count"`
	BucketCount int    `msgpack:"bucket_count"`
}

// ConfigRequest changes the server limits.
type ConfigRequest struct {
	ID          string `msgpack:"id"`
	Action      string `msgpack:"action"` // "set_limits"
	MaxLimit    *int   `msgpack:"max_limit,omitempty"`
	MaxBuffer   *int   `msgpack:"max_buffer,omitempty"`
	ReloadEvery *int   `msgpack:"reload_every,omitempty"`
}

// ConfigResponse reports the limits in effect.
type ConfigResponse struct {
	ID          string `msgpack:"id"`
	Status      string `msgpack:"status"`
	Error       string `msgpack:"error,omitempty"`
	MaxLimit    int    `msgpack:"max_limit"`
	MaxBuffer   int    `msgpack:"max_buffer"`
	ReloadEvery int    `msgpack:"reload_every"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// probe is decoded first to route a message.
type probe struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
}
