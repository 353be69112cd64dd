/*
Package server implements msgpack IPC for a shuangpin input session.

The server drives one session.Session per process over stdin/stdout. Requests and responses are
consecutive msgpack values; there is no extra framing.

# IPC

Every request names an action and carries an ID echoed in the response:

	{"id": "k1", "action": "key", "k": "nihc"}

Key and state requests are answered with the current composition:

	{"id": "k1", "s": "nihc", "g": "ni'hc", "st": "composing", "cs": [{"w": "你好", "h": "(rn)", "r": 1}], "n": 1, "t": 85}

The remaining actions return a status:

	{"id": "s1", "action": "select", "i": 0}
	{"id": "c1", "action": "create", "p": "nihc", "w": "你好"}
	{"id": "d1", "action": "delete", "p": "nihc", "w": "你好"}
	{"id": "r1", "action": "reset"}
	{"id": "h1", "action": "health"}

The "k" field of a key request is fed byte by byte: lowercase letters type, uppercase letters type
with the modifier held, '\b' is backspace, '\n' enter and 0x1b escape.

Failed requests get a RequestError with an HTTP-like code.
*/
package server

// Request is any client message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Keys   string `msgpack:"k,omitempty"` // for "key"
	Index  int    `msgpack:"i,omitempty"` // for "select"
	Pinyin string `msgpack:"p,omitempty"` // for "create" and "delete"
	Word   string `msgpack:"w,omitempty"` // for "create" and "delete"
	Limit  int    `msgpack:"l,omitempty"` // candidates returned by "key" and "state", 0 for all
}

// Candidate - one ranked candidate
type Candidate struct {
	Word string `msgpack:"w"`
	Hint string `msgpack:"h,omitempty"`
	Rank uint16 `msgpack:"r"`
}

// StateResponse reports the composition after a key or state request.
type StateResponse struct {
	ID           string      `msgpack:"id"`
	Sequence     string      `msgpack:"s"`
	Segmentation string      `msgpack:"g"`
	HelpCodes    string      `msgpack:"c,omitempty"`
	HelpMode     bool        `msgpack:"hm"`
	State        string      `msgpack:"st"`
	Candidates   []Candidate `msgpack:"cs"`
	Count        int         `msgpack:"n"`
	TimeTaken    int64       `msgpack:"t"` // microseconds
}

// ActionResponse answers select, create, delete, reset and health.
type ActionResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Word   string         `msgpack:"w,omitempty"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// RequestError holds basic error information for failed requests
type RequestError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
