// Copyright 2017 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errorlist collects several errors into one.
package errorlist

import (
	"fmt"
	"io"
	"strings"
)

// List is a collection of errors. A List never contains nil errors or
// other Lists if built with Append.
type List []error

// Append err to el. Nil errors are dropped and nested Lists are
// flattened.
func (el List) Append(err error) List {
	switch e := err.(type) {
	case nil:
		return el
	case List:
		for _, inner := range e {
			el = el.Append(inner)
		}
		return el
	}
	return append(el, err)
}

// Error implements the Error method of error.
func (el List) Error() string {
	return strings.Join(el.AsStrings(), "; \u2029")
}

// Unwrap makes errors.Is and errors.As look into all errors of el.
func (el List) Unwrap() []error { return el }

// AsError returns nil for an empty el and el otherwise.
func (el List) AsError() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// AsStrings returns the messages of all errors in el.
func (el List) AsStrings() []string {
	s := make([]string, 0, len(el))
	for _, e := range el {
		if nel, ok := e.(List); ok {
			s = append(s, nel.AsStrings()...)
			continue
		}
		s = append(s, e.Error())
	}
	return s
}

// Fprintln prints err to w. If err is a List every contained error
// goes onto its own line, each prefixed by prefix.
func Fprintln(w io.Writer, prefix string, err error) {
	if err == nil {
		return
	}
	if el, ok := err.(List); ok {
		for _, msg := range el.AsStrings() {
			fmt.Fprintln(w, prefix+msg)
		}
		return
	}
	fmt.Fprintln(w, prefix+err.Error())
}
