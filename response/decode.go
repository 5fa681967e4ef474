// Copyright 2015 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package response

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// UnsupportedEncoding is returned by Decode for a Content-Encoding it
// cannot undo.
type UnsupportedEncoding struct {
	Encoding string
}

func (e *UnsupportedEncoding) Error() string {
	return fmt.Sprintf("unsupported Content-Encoding %q", e.Encoding)
}

// Decode undoes the given Content-Encoding of data. An empty encoding
// and "identity" return data unchanged.
func Decode(data []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return data, nil
	case "gzip", "x-gzip":
		reader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		return io.ReadAll(reader)
	case "br":
		return io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	case "zstd":
		decoder, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer decoder.Close()
		return io.ReadAll(decoder)
	case "deflate":
		// Properly zlib wrapped, but some servers send raw deflate.
		if reader, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
			defer reader.Close()
			return io.ReadAll(reader)
		}
		reader := flate.NewReader(bytes.NewReader(data))
		defer reader.Close()
		return io.ReadAll(reader)
	}
	return nil, &UnsupportedEncoding{Encoding: encoding}
}
