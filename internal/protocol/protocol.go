// Package protocol defines the request and response envelopes exchanged
// between client and server over internal/wire's length-prefixed JSON
// framing. Each connection carries strictly ordered requests; there is no
// ordering guarantee between connections.
package protocol

import (
	"io"

	"github.com/wealrain/ignitekv/internal/wire"
)

// RequestKind tags which operation a Request carries.
type RequestKind string

const (
	RequestGet    RequestKind = "get"
	RequestSet    RequestKind = "set"
	RequestRemove RequestKind = "remove"
)

// Request is the single envelope for all three client operations; Value
// is only meaningful when Kind is RequestSet.
type Request struct {
	Kind  RequestKind `json:"kind"`
	Key   string      `json:"key"`
	Value string      `json:"value,omitempty"`
}

// GetRequest builds a Get{key} request.
func GetRequest(key string) Request { return Request{Kind: RequestGet, Key: key} }

// SetRequest builds a Set{key,value} request.
func SetRequest(key, value string) Request { return Request{Kind: RequestSet, Key: key, Value: value} }

// RemoveRequest builds a Remove{key} request.
func RemoveRequest(key string) Request { return Request{Kind: RequestRemove, Key: key} }

// WriteRequest serializes req as one length-prefixed frame.
func WriteRequest(w io.Writer, req Request) error {
	_, err := wire.WriteFrame(w, req)
	return err
}

// ReadRequest reads exactly one request frame from r.
func ReadRequest(r io.Reader) (Request, error) {
	var req Request
	_, err := wire.ReadFrame(r, &req)
	return req, err
}

// GetResponse mirrors Ok(Option<String>) | Err(String): Found reports
// whether the key existed, Value is meaningful only when Found is true,
// and a non-empty Err means the operation failed.
type GetResponse struct {
	Found bool   `json:"found"`
	Value string `json:"value,omitempty"`
	Err   string `json:"err,omitempty"`
}

// SetResponse mirrors Ok(()) | Err(String).
type SetResponse struct {
	Err string `json:"err,omitempty"`
}

// RemoveResponse mirrors Ok(()) | Err(String).
type RemoveResponse struct {
	Err string `json:"err,omitempty"`
}

// WriteResponse serializes any one of GetResponse/SetResponse/RemoveResponse.
func WriteResponse(w io.Writer, resp any) error {
	_, err := wire.WriteFrame(w, resp)
	return err
}

// ReadGetResponse reads one GetResponse frame.
func ReadGetResponse(r io.Reader) (GetResponse, error) {
	var resp GetResponse
	_, err := wire.ReadFrame(r, &resp)
	return resp, err
}

// ReadSetResponse reads one SetResponse frame.
func ReadSetResponse(r io.Reader) (SetResponse, error) {
	var resp SetResponse
	_, err := wire.ReadFrame(r, &resp)
	return resp, err
}

// ReadRemoveResponse reads one RemoveResponse frame.
func ReadRemoveResponse(r io.Reader) (RemoveResponse, error) {
	var resp RemoveResponse
	_, err := wire.ReadFrame(r, &resp)
	return resp, err
}
