/*
Package server implements msgpack IPC for symbol search sessions.

The server reads MessagePack requests from stdin and writes one MessagePack
response per request to stdout. Requests are processed sequentially, and
every response echoes the request ID.

# Sessions

A client opens a session, feeds it query text and key commands, and closes
it when done. Each session has its own cursor and last query; sessions over
the same scope share one ranker and its result cache.

	{"id": "1", "op": "open", "mode": "global", "q": "tolo"}
	{"id": "1", "s": "5d0c…", "i": [{"f": "strings.to_lower", "h": "…", "u": "/core/strings/#to_lower", "r": 1}], "cur": -1, "fd": 1, "sh": 1, "tot": 4096, "t": 85}

	{"id": "2", "op": "query", "s": "5d0c…", "q": "tolow"}
	{"id": "3", "op": "key", "s": "5d0c…", "k": "Down"}
	{"id": "4", "op": "key", "s": "5d0c…", "k": "Enter"}
	{"id": "4", "s": "5d0c…", "a": "activate", "go": "/core/strings/#to_lower", "ok": true, …}

	{"id": "5", "op": "close", "s": "5d0c…"}

A package-scoped session ("mode": "package", "package": "fmt") only sees the
entities of that package. With "inline": true the window is not truncated
and the response carries a per-name display order.

# Other operations

	{"id": "6", "op": "lookup", "q": "strings.to_lower"} -> entities with that exact name
	{"id": "7", "op": "lookup", "q": "strings"}          -> the package's documentation path
	{"id": "8", "op": "info"}   -> corpus and session counters
	{"id": "9", "op": "health"} -> {"id": "9", "status": "ok"}

# Errors

Failures are reported as {"id", "e", "c"} with HTTP-like codes: 400 for
malformed requests, 404 for unknown sessions, packages or lookup names, 429 when the
session limit is reached and 500 for internal errors.
*/
package server

// Request is the envelope for every operation. Unused fields are omitted.
type Request struct {
	ID      string `msgpack:"id"`
	Op      string `msgpack:"op"`
	Session string `msgpack:"s,omitempty"`
	Query   string `msgpack:"q,omitempty"`
	Key     string `msgpack:"k,omitempty"`
	Mode    string `msgpack:"mode,omitempty"`
	Package string `msgpack:"package,omitempty"`
	Limit   int    `msgpack:"l,omitempty"`
	Inline  bool   `msgpack:"inline,omitempty"`
}

// ResultItem is one visible search result.
type ResultItem struct {
	Full      string `msgpack:"f"`
	Label     string `msgpack:"h"`
	Link      string `msgpack:"u"`
	Kind      string `msgpack:"k"`
	KindLabel string `msgpack:"kl"`
	Rank      uint32 `msgpack:"r"`
	Score     int    `msgpack:"sc"`
}

// FrameResponse carries a session's visible state after an operation.
type FrameResponse struct {
	ID      string         `msgpack:"id"`
	Session string         `msgpack:"s"`
	Query   string         `msgpack:"q"`
	Items   []ResultItem   `msgpack:"i"`
	Cursor  int            `msgpack:"cur"`
	Found   int            `msgpack:"fd"`
	Shown   int            `msgpack:"sh"`
	Total   int            `msgpack:"tot"`
	Order   map[string]int `msgpack:"ord,omitempty"`
	Action  string         `msgpack:"a,omitempty"`
	Target  string         `msgpack:"go,omitempty"`
	Handled bool           `msgpack:"ok,omitempty"`
	// TimeTaken is in microseconds.
	TimeTaken int64 `msgpack:"t"`
}

// LookupResponse resolves an exact full name or package name.
type LookupResponse struct {
	ID    string       `msgpack:"id"`
	Query string       `msgpack:"q"`
	Path  string       `msgpack:"p,omitempty"`
	Items []ResultItem `msgpack:"i"`
}

// InfoResponse reports corpus and session counters.
type InfoResponse struct {
	ID          string `msgpack:"id"`
	Status      string `msgpack:"status"`
	Packages    int    `msgpack:"packages"`
	Entities    int    `msgpack:"entities"`
	Sessions    int    `msgpack:"sessions"`
	Scopes      int    `msgpack:"scopes"`
	CacheHits   int    `msgpack:"cache_hits"`
	CacheMisses int    `msgpack:"cache_misses"`
}

// StatusResponse acknowledges operations without a payload.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
