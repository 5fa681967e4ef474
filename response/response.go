// Copyright 2015 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package response provides a type for capturing a HTTP response. Its main
// purpose is breaking an import cycle between the session, the request
// builder and the checks which all read the last response.
package response

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"time"
)

// ErrNoResponse is returned by operations which need a previous response
// when no request has been made so far.
var ErrNoResponse = errors.New("no response yet")

// Holder is implemented by everything which can hand out the last response
// received: A session and a request under construction.
type Holder interface {
	// LastResponse returns the last response or ErrNoResponse.
	LastResponse() (*Response, error)
}

// Response captures information about a http response. A Response is
// not modified once captured.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// Header contains the received header fields in order.
	Header Header

	// Body is the received body after undoing any Content-Encoding.
	Body []byte

	// Duration the handler took to produce the response.
	Duration time.Duration
}

// BodyReader returns a reader of the response body.
func (resp *Response) BodyReader() *bytes.Reader {
	return bytes.NewReader(resp.Body)
}

// BodyStr returns the body as a string.
func (resp *Response) BodyStr() string {
	return string(resp.Body)
}

// LastResponse implements Holder, so a plain Response can be fed to the
// checks directly.
func (resp *Response) LastResponse() (*Response, error) {
	if resp == nil {
		return nil, ErrNoResponse
	}
	return resp, nil
}

// String is a one-line summary of resp.
func (resp *Response) String() string {
	return fmt.Sprintf("%d %s (%d bytes)", resp.Status,
		http.StatusText(resp.Status), len(resp.Body))
}

// FromRecorder captures the response recorded in rec. The body is decoded
// according to the Content-Encoding header. An unsupported encoding keeps
// the raw body and returns the complete resp together with an
// *UnsupportedEncoding error.
func FromRecorder(rec *httptest.ResponseRecorder, duration time.Duration) (*Response, error) {
	result := rec.Result()
	resp := &Response{
		Status:   result.StatusCode,
		Header:   HeaderFrom(result.Header),
		Duration: duration,
	}
	body, err := Decode(rec.Body.Bytes(), resp.Header.Get("Content-Encoding"))
	if err != nil {
		var unsupported *UnsupportedEncoding
		if errors.As(err, &unsupported) {
			resp.Body = rec.Body.Bytes()
			return resp, err
		}
		return resp, fmt.Errorf("decoding body: %s", err)
	}
	resp.Body = body
	return resp, nil
}

// ----------------------------------------------------------------------------
// Header

// Field is a single header line.
type Field struct {
	Name  string
	Value string
}

// Header is an ordered list of header fields. Names need not be unique.
type Header []Field

// HeaderFrom converts h to a Header. As h carries no order between different
// names these are sorted; values of one name keep their order.
func HeaderFrom(h http.Header) Header {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	header := Header{}
	for _, name := range names {
		for _, v := range h[name] {
			header = append(header, Field{Name: name, Value: v})
		}
	}
	return header
}

// Lookup returns the value of the first field named name. The comparison
// is case-insensitive.
func (h Header) Lookup(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Get is like Lookup but returns "" for missing fields.
func (h Header) Get(name string) string {
	v, _ := h.Lookup(name)
	return v
}

// Values returns all values of fields named name in order.
func (h Header) Values(name string) []string {
	var values []string
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}
