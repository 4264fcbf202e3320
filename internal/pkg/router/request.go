package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/banglapremium/mailrelay/internal/pkg/goerror"
)

// MaxBodyBytes caps how much of a request body DecodeBody reads.
const MaxBodyBytes = 1 << 20

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	*http.Request
}

// DecodeBody decodes a single JSON value from the body into dst.
// Unknown fields are ignored; trailing data and oversized bodies are rejected.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Request == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}
