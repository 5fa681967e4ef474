// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package request

import (
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/vdobler/formtest/response"
)

// Builder accumulates the parts of one request. It holds a snapshot of
// the previous response which is used to resolve labels and tokens.
//
// The first failing operation is recorded and turns all later operations
// into no-ops; it is reported by Err.
type Builder struct {
	last   *response.Response
	parts  []Part
	header http.Header
	query  url.Values
	err    error
}

// NewBuilder returns a Builder working on the response snapshot last
// which may be nil.
func NewBuilder(last *response.Response) *Builder {
	return &Builder{
		last:   last,
		header: make(http.Header),
		query:  make(url.Values),
	}
}

// LastResponse implements response.Holder.
func (b *Builder) LastResponse() (*response.Response, error) {
	return b.last.LastResponse()
}

// Err returns the first error encountered while building.
func (b *Builder) Err() error { return b.err }

// Parts returns the accumulated parts in order.
func (b *Builder) Parts() []Part {
	parts := make([]Part, len(b.parts))
	copy(parts, b.parts)
	return parts
}

// Header returns the additional request header.
func (b *Builder) Header() http.Header { return b.header }

// Query returns the additional query parameters.
func (b *Builder) Query() url.Values { return b.query }

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// AddByName appends the parameter name=value. Parameters with the same
// name are all sent.
func (b *Builder) AddByName(name, value string) {
	if b.err != nil {
		return
	}
	b.parts = append(b.parts, Field{Name: name, Value: value})
}

// AddFileByName reads the file at path and appends it as upload in field
// name. An empty contentType is derived from the file extension.
func (b *Builder) AddFileByName(name, path, contentType string) {
	if b.err != nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		b.fail(&FileError{Path: path, Err: err})
		return
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}
	b.parts = append(b.parts, File{
		Name:        name,
		Filename:    path,
		Content:     data,
		ContentType: contentType,
	})
}

// AddByLabel appends value for the form control labeled label.
func (b *Builder) AddByLabel(label, value string) {
	if b.err != nil {
		return
	}
	name, err := ResolveFieldName(b, label)
	if err != nil {
		b.fail(err)
		return
	}
	b.AddByName(name, value)
}

// AddFileByLabel uploads the file at path in the form control labeled label.
func (b *Builder) AddFileByLabel(label, path, contentType string) {
	if b.err != nil {
		return
	}
	name, err := ResolveFieldName(b, label)
	if err != nil {
		b.fail(err)
		return
	}
	b.AddFileByName(name, path, contentType)
}

// AddToken copies the anti-forgery token found inside scope.
func (b *Builder) AddToken(scope string) {
	if b.err != nil {
		return
	}
	token, err := FindToken(b, scope)
	if err != nil {
		b.fail(err)
		return
	}
	b.AddByName(TokenField, token)
}

// AddHeader adds the request header name: value.
func (b *Builder) AddHeader(name, value string) {
	if b.err != nil {
		return
	}
	b.header.Add(name, value)
}

// AddGetParam adds name=value to the query string of the request URL.
func (b *Builder) AddGetParam(name, value string) {
	if b.err != nil {
		return
	}
	b.query.Add(name, value)
}
