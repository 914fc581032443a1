package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/agbru/fibbench/internal/fibonacci"
)

// ErrMalformedRequest is wrapped by every request decoding failure.
var ErrMalformedRequest = errors.New("malformed request")

// RequestMessage is the JSON form of a Request:
//
//	{"id": "...", "n": 1000, "type": "fastDoubling"}
//
// N is kept raw so that a missing, negative or fractional index can be
// reported instead of silently decoded as zero.
type RequestMessage struct {
	ID   string          `json:"id,omitempty"`
	N    json.RawMessage `json:"n"`
	Type string          `json:"type"`
}

// ResponseMessage is the JSON form of a Result. A success carries time,
// result and digits; a failure carries error. n is omitted only when the
// request did not contain a valid index.
type ResponseMessage struct {
	ID      string   `json:"id,omitempty"`
	Type    string   `json:"type"`
	N       *uint64  `json:"n,omitempty"`
	Time    *float64 `json:"time,omitempty"`
	Result  string   `json:"result,omitempty"`
	Digits  int      `json:"digits,omitempty"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
}

// NewRequestMessage encodes req for the wire.
func NewRequestMessage(req Request) RequestMessage {
	return RequestMessage{
		ID:   req.ID,
		N:    json.RawMessage(strconv.FormatUint(req.N, 10)),
		Type: req.Algorithm.String(),
	}
}

// Request validates the message and converts it to a Request.
func (m RequestMessage) Request() (Request, error) {
	n, err := m.index()
	if err != nil {
		return Request{}, err
	}
	algo, err := fibonacci.ParseAlgorithm(m.Type)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	return Request{ID: m.ID, N: n, Algorithm: algo}, nil
}

func (m RequestMessage) index() (uint64, error) {
	raw := bytes.TrimSpace(m.N)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("%w: missing field \"n\"", ErrMalformedRequest)
	}
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: \"n\" must be a non-negative integer, got %s", ErrMalformedRequest, raw)
	}
	return n, nil
}

// DecodeRequest parses one JSON request. The returned message is populated
// as far as decoding got, so a failure response can echo id and type.
func DecodeRequest(data []byte) (RequestMessage, Request, error) {
	var msg RequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	req, err := msg.Request()
	return msg, req, err
}

// NewResponseMessage encodes res for the wire.
func NewResponseMessage(res Result) ResponseMessage {
	n := res.N
	resp := ResponseMessage{
		ID:      res.RequestID,
		Type:    res.Algorithm.String(),
		N:       &n,
		Success: res.Success(),
	}
	if res.Success() {
		ms := res.ElapsedMillis()
		resp.Time = &ms
		resp.Result = res.Value
		resp.Digits = res.Digits()
	} else {
		resp.Error = res.ErrorMessage()
	}
	return resp
}

// RejectedResponse answers a request that never reached the engine.
func RejectedResponse(msg RequestMessage, err error) ResponseMessage {
	resp := ResponseMessage{
		ID:    msg.ID,
		Type:  msg.Type,
		Error: err.Error(),
	}
	if n, nerr := msg.index(); nerr == nil {
		resp.N = &n
	}
	return resp
}

// Handle decodes one request, computes it with c and returns the response.
// Every input, including undecodable JSON, yields exactly one response.
func Handle(ctx context.Context, c Computer, data []byte) ResponseMessage {
	msg, req, err := DecodeRequest(data)
	if err != nil {
		return RejectedResponse(msg, err)
	}
	return NewResponseMessage(c.Compute(ctx, req))
}
