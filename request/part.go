// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package request assembles the parameters of a single request and
// serializes them into a HTTP request.
//
// Parameters are added to a Builder by name or by the visible text of the
// label bound to a form control in the last response. Anti-forgery tokens
// are copied from the hidden _token input of that response. Serialize
// turns the accumulated parts into a url-encoded body or, as soon as a
// file is uploaded, into a multipart/form-data body.
package request

import (
	"fmt"
)

// Part is a single parameter of a request. Only Field and File are Parts.
type Part interface {
	// FieldName is the name of the form field.
	FieldName() string

	isPart()
}

// Field is a plain name=value parameter.
type Field struct {
	Name  string
	Value string
}

// File is an uploaded file.
type File struct {
	Name        string // name of the form field
	Filename    string // filename reported in the Content-Disposition
	Content     []byte
	ContentType string
}

// FieldName implements Part.
func (f Field) FieldName() string { return f.Name }

// FieldName implements Part.
func (f File) FieldName() string { return f.Name }

func (Field) isPart() {}
func (File) isPart()  {}

func (f Field) String() string { return f.Name + "=" + f.Value }

func (f File) String() string {
	return fmt.Sprintf("%s=@%s (%s, %d bytes)", f.Name, f.Filename, f.ContentType, len(f.Content))
}

// FileError reports a file which could not be read for upload.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("cannot read upload file %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *FileError) Unwrap() error { return e.Err }
