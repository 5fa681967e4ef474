// Copyright 2015 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package response

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/kr/pretty"
)

func TestHeaderLookup(t *testing.T) {
	h := Header{
		{"Content-Type", "text/html"},
		{"X-Foo", "first"},
		{"x-foo", "second"},
	}

	for i, tc := range []struct {
		name  string
		want  string
		found bool
	}{
		{"content-type", "text/html", true},
		{"X-FOO", "first", true},
		{"X-Bar", "", false},
	} {
		got, found := h.Lookup(tc.name)
		if got != tc.want || found != tc.found {
			t.Errorf("%d. Lookup(%q) = %q, %t; want %q, %t",
				i, tc.name, got, found, tc.want, tc.found)
		}
	}

	if got := h.Values("X-Foo"); len(got) != 2 || got[1] != "second" {
		t.Errorf("Values = %v", got)
	}
}

func TestHeaderFrom(t *testing.T) {
	h := http.Header{
		"Set-Cookie": {"a=1", "b=2"},
		"Allow":      {"GET"},
	}
	got := HeaderFrom(h)
	want := Header{
		{"Allow", "GET"},
		{"Set-Cookie", "a=1"},
		{"Set-Cookie", "b=2"},
	}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Errorf("HeaderFrom: %v", diff)
	}
}

func TestNilResponseHolder(t *testing.T) {
	var resp *Response
	if _, err := resp.LastResponse(); err != ErrNoResponse {
		t.Errorf("got %v, want %v", err, ErrNoResponse)
	}
}

func compress(t *testing.T, encoding string, data []byte) []byte {
	buf := &bytes.Buffer{}
	switch encoding {
	case "gzip":
		w := gzip.NewWriter(buf)
		w.Write(data)
		w.Close()
	case "br":
		w := brotli.NewWriter(buf)
		w.Write(data)
		w.Close()
	case "deflate":
		w := zlib.NewWriter(buf)
		w.Write(data)
		w.Close()
	case "raw-deflate":
		w, err := flate.NewWriter(buf, flate.BestCompression)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		w.Write(data)
		w.Close()
	case "zstd":
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		return enc.EncodeAll(data, nil)
	default:
		return data
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	plain := []byte("<p>Hello World</p>")
	for _, tc := range []struct {
		compression string
		header      string
	}{
		{"", ""},
		{"", "identity"},
		{"gzip", "gzip"},
		{"gzip", "x-gzip"},
		{"br", "br"},
		{"zstd", "zstd"},
		{"deflate", "deflate"},
		{"raw-deflate", "deflate"},
	} {
		got, err := Decode(compress(t, tc.compression, plain), tc.header)
		if err != nil {
			t.Errorf("%s as %q: unexpected error %s", tc.compression, tc.header, err)
			continue
		}
		if !bytes.Equal(got, plain) {
			t.Errorf("%s as %q: got %q", tc.compression, tc.header, got)
		}
	}

	_, err := Decode(plain, "compress")
	if ue, ok := err.(*UnsupportedEncoding); !ok || ue.Encoding != "compress" {
		t.Errorf("got %v, want UnsupportedEncoding", err)
	}
}

func TestFromRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Content-Encoding", "gzip")
	rec.Header().Set("X-Answer", "42")
	rec.WriteHeader(http.StatusTeapot)
	rec.Write(compress(t, "gzip", []byte("short and stout")))

	resp, err := FromRecorder(rec, time.Millisecond)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if resp.Status != http.StatusTeapot {
		t.Errorf("got status %d", resp.Status)
	}
	if got := resp.BodyStr(); got != "short and stout" {
		t.Errorf("got body %q", got)
	}
	if got := resp.Header.Get("x-answer"); got != "42" {
		t.Errorf("got X-Answer %q", got)
	}
	if got, want := resp.String(), fmt.Sprintf("418 %s (15 bytes)", http.StatusText(418)); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFromRecorderUnsupportedEncoding(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Content-Encoding", "compress")
	rec.WriteHeader(http.StatusOK)
	rec.Write([]byte("opaque"))

	resp, err := FromRecorder(rec, time.Millisecond)
	if _, ok := err.(*UnsupportedEncoding); !ok {
		t.Fatalf("got error %v, want UnsupportedEncoding", err)
	}
	if resp == nil || resp.Status != http.StatusOK || resp.BodyStr() != "opaque" {
		t.Errorf("got %v", resp)
	}
}
