// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// Boundary is the multipart boundary used for all requests. A constant
// boundary keeps request bodies reproducible.
const Boundary = "formtest-boundary-5f2b0e8c"

const (
	// ContentTypeURLEncoded is the content type of bodies without files.
	ContentTypeURLEncoded = "application/x-www-form-urlencoded"

	// ContentTypeMultipart is the content type of bodies with files.
	ContentTypeMultipart = "multipart/form-data; boundary=" + Boundary
)

// PlaceholderRemoteAddr is the remote address of all generated requests.
const PlaceholderRemoteAddr = "192.0.2.1:1234"

// Options control the serialization.
type Options struct {
	// EscapeValues percent-encodes names and values in url-encoded
	// bodies. Without it name=value pairs are sent verbatim and a value
	// containing & or = garbles the body.
	EscapeValues bool
}

// Encoded is a serialized request ready to be dispatched.
type Encoded struct {
	Method      string
	Target      string   // path and query as passed to Serialize, see RequestURI
	Path        string   // path component of Target
	RawQuery    string   // query component of Target without the '?'
	Segments    []string // non-empty segments of Path
	ContentType string
	Body        []byte
}

// Serialize encodes parts as the body of a method request to target.
// A multipart/form-data body is produced if any part is a File, an
// application/x-www-form-urlencoded one otherwise.
func Serialize(method, target string, parts []Part, opts Options) (*Encoded, error) {
	if target == "" || strings.ContainsAny(target, " \t\r\n") {
		return nil, fmt.Errorf("malformed request target %q", target)
	}
	path, rawQuery := target, ""
	if i := strings.Index(target, "?"); i != -1 {
		path, rawQuery = target[:i], target[i+1:]
	}
	enc := &Encoded{
		Method:   method,
		Target:   target,
		Path:     path,
		RawQuery: rawQuery,
		Segments: Segments(path),
	}

	if HasFile(parts) {
		body, err := MultipartBody(parts)
		if err != nil {
			return nil, err
		}
		enc.Body, enc.ContentType = body, ContentTypeMultipart
	} else {
		enc.Body, enc.ContentType = URLEncodedBody(parts, opts.EscapeValues), ContentTypeURLEncoded
	}
	return enc, nil
}

// HasFile reports whether any of parts is a File.
func HasFile(parts []Part) bool {
	for _, p := range parts {
		if _, ok := p.(File); ok {
			return true
		}
	}
	return false
}

// Segments splits path on '/' and drops empty segments.
func Segments(path string) []string {
	segments := []string{}
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// WithQuery appends the encoded query to target.
func WithQuery(target string, query url.Values) string {
	if len(query) == 0 {
		return target
	}
	if strings.Contains(target, "?") {
		return target + "&" + query.Encode()
	}
	return target + "?" + query.Encode()
}

// URLEncodedBody joins parts as name=value pairs separated by '&'.
// Names and values are percent-encoded only if escape is set.
// File parts are sent as their filename.
func URLEncodedBody(parts []Part, escape bool) []byte {
	buf := &bytes.Buffer{}
	for i, p := range parts {
		if i > 0 {
			buf.WriteByte('&')
		}
		var name, value string
		switch p := p.(type) {
		case Field:
			name, value = p.Name, p.Value
		case File:
			name, value = p.Name, p.Filename
		}
		if escape {
			name, value = url.QueryEscape(name), url.QueryEscape(value)
		}
		buf.WriteString(name)
		buf.WriteByte('=')
		buf.WriteString(value)
	}
	return buf.Bytes()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// MultipartBody formats parts as a multipart/form-data body delimited by
// Boundary. Parts keep their order.
func MultipartBody(parts []Part) ([]byte, error) {
	body := &bytes.Buffer{}
	mpwriter := multipart.NewWriter(body)
	if err := mpwriter.SetBoundary(Boundary); err != nil {
		return nil, err
	}
	for _, p := range parts {
		var err error
		switch p := p.(type) {
		case Field:
			err = mpwriter.WriteField(p.Name, p.Value)
		case File:
			err = addFilePart(mpwriter, p)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := mpwriter.Close(); err != nil {
		return nil, err
	}
	return body.Bytes(), nil
}

// addFilePart writes f with its own content type; mpwriter.CreateFormFile
// would fix it to application/octet-stream.
func addFilePart(mpwriter *multipart.Writer, f File) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(f.Name), escapeQuotes(f.Filename)))
	h.Set("Content-Type", f.ContentType)
	fw, err := mpwriter.CreatePart(h)
	if err != nil {
		return fmt.Errorf("unable to create part for parameter %q: %s", f.Name, err)
	}
	_, err = fw.Write(f.Content)
	return err
}

// RequestURI is the absolute path rebuilt from Segments followed by the
// raw query, e.g. "//items//42/?x=1" becomes "/items/42?x=1".
func (enc *Encoded) RequestURI() string {
	uri := "/" + strings.Join(enc.Segments, "/")
	if enc.RawQuery != "" {
		uri += "?" + enc.RawQuery
	}
	return uri
}

// HTTPRequest builds the synthetic request for enc. A non-empty cookie is
// sent in the Cookie header; header is added to the request header.
func (enc *Encoded) HTTPRequest(cookie string, header http.Header) (*http.Request, error) {
	uri := enc.RequestURI()
	req, err := http.NewRequest(enc.Method, uri, bytes.NewReader(enc.Body))
	if err != nil {
		return nil, err
	}
	req.RequestURI = uri
	req.RemoteAddr = PlaceholderRemoteAddr
	req.Host = "example.com"
	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Content-Type", enc.ContentType)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return req, nil
}
