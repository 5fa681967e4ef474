// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// header.go provides checks of HTTP headers.

package check

import (
	"fmt"
	"strings"

	"github.com/vdobler/formtest/response"
)

// Header provides a textual test of single-valued HTTP headers.
// Header names are compared case-insensitive and the first
// matching header wins.
type Header struct {
	// Header is the HTTP header to check.
	Header string

	// Value is the expected value of the header.
	Value string

	// Absent indicates that no header Header shall be part of the
	// response. Value is ignored.
	Absent bool
}

// Execute implements Check's Execute method.
func (c Header) Execute(h response.Holder) error {
	resp, err := h.LastResponse()
	if err != nil {
		return err
	}
	value, found := resp.Header.Lookup(c.Header)
	switch {
	case !found && c.Absent:
		return nil
	case !found:
		return fmt.Errorf("header %s not received", c.Header)
	case c.Absent:
		return fmt.Errorf("forbidden header %s received with value %q", c.Header, value)
	case value != c.Value:
		return fmt.Errorf("header %s: got %q, want %q", c.Header, value, c.Value)
	}
	return nil
}

// ContentType checks the media type and optionally the charset of the
// Content-Type header.
type ContentType struct {
	// Is is the wanted media type. It may be abbreviated to the subtype,
	// e.g. "json" matches "application/json".
	Is string

	// Charset is the optional wanted charset.
	Charset string
}

// Execute implements Check's Execute method.
func (c ContentType) Execute(h response.Holder) error {
	resp, err := h.LastResponse()
	if err != nil {
		return err
	}
	ct := resp.Header.Values("Content-Type")
	switch len(ct) {
	case 0:
		return fmt.Errorf("no Content-Type header received")
	case 1:
	default:
		return fmt.Errorf("received %d Content-Type headers", len(ct))
	}

	parts := strings.Split(ct[0], ";")
	got := strings.ToLower(strings.TrimSpace(parts[0]))
	want := strings.ToLower(c.Is)
	if !strings.Contains(want, "/") {
		want = "/" + want
	}
	if !strings.HasSuffix(got, want) {
		return fmt.Errorf("Content-Type is %s, want %s", ct[0], c.Is)
	}

	if c.Charset != "" {
		charset := ""
		for _, p := range parts[1:] {
			p = strings.TrimSpace(p)
			if len(p) > 8 && strings.EqualFold(p[:8], "charset=") {
				charset = strings.Trim(p[8:], `"`)
			}
		}
		if charset == "" {
			return fmt.Errorf("no charset in Content-Type %s", ct[0])
		}
		if !strings.EqualFold(charset, c.Charset) {
			return fmt.Errorf("Content-Type %s: got charset %s, want %s", ct[0], charset, c.Charset)
		}
	}
	return nil
}
