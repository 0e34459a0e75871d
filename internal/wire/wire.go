package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Version is the protocol revision; requests with another version are refused.
const Version uint16 = 1

// ErrVersion is returned for requests of an unsupported protocol revision.
var ErrVersion = errors.New("wire: unsupported protocol version")

// Token is one node of the token tree. Start and End are byte offsets in
// the host's source; for groups they cover both delimiters.
type Token struct {
	Kind     string  `msgpack:"kind"`
	Text     string  `msgpack:"text,omitempty"`
	Start    uint32  `msgpack:"start"`
	End      uint32  `msgpack:"end"`
	Joint    bool    `msgpack:"joint,omitempty"`
	Delim    string  `msgpack:"delim,omitempty"`
	Children []Token `msgpack:"children,omitempty"`
}

type Request struct {
	Version  uint16 `msgpack:"version"`
	MaxDepth int    `msgpack:"max_depth,omitempty"`
	// DocAttributes disables doc attribute concatenation when set to false.
	DocAttributes *bool   `msgpack:"doc_attributes,omitempty"`
	Tokens        []Token `msgpack:"tokens"`
}

type Diagnostic struct {
	Code    string `msgpack:"code"`
	Message string `msgpack:"message"`
	Start   uint32 `msgpack:"start"`
	End     uint32 `msgpack:"end"`
	Notes   []Note `msgpack:"notes,omitempty"`
}

type Note struct {
	Message string `msgpack:"message"`
	Start   uint32 `msgpack:"start"`
	End     uint32 `msgpack:"end"`
}

// Response carries either Tokens or Diagnostics, never both.
type Response struct {
	Tokens      []Token      `msgpack:"tokens,omitempty"`
	Diagnostics []Diagnostic `msgpack:"diagnostics,omitempty"`
}

// ReadRequest decodes one request from r and checks its version.
func ReadRequest(r io.Reader) (*Request, error) {
	var req Request
	if err := msgpack.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("wire: decoding request: %w", err)
	}
	if req.Version != Version {
		return nil, fmt.Errorf("%w %d (want %d)", ErrVersion, req.Version, Version)
	}
	return &req, nil
}

// WriteRequest encodes req; used by hosts and tests.
func WriteRequest(w io.Writer, req *Request) error {
	if req.Version == 0 {
		req.Version = Version
	}
	return msgpack.NewEncoder(w).Encode(req)
}

// ReadResponse decodes one response from r.
func ReadResponse(r io.Reader) (*Response, error) {
	var resp Response
	if err := msgpack.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("wire: decoding response: %w", err)
	}
	return &resp, nil
}

// WriteResponse encodes resp to w.
func WriteResponse(w io.Writer, resp *Response) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(resp)
}
