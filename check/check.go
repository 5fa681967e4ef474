// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package check provides the checks (assertions) performed on the last
// response of a session.
//
// A check validates a certain property of the received response, e.g.
//
//	StatusCode{Expect: 302}
//	Header{Header: "Location", Value: "/home"}
//	Header{Header: "X-Debug", Absent: true}
//	HTMLCount{Selector: "ul.items li", Count: 3}
//
// All checks work on a response.Holder, i.e. on whatever scope holds
// the last response, and report violations as a plain error.
package check

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/vdobler/formtest/errorlist"
	"github.com/vdobler/formtest/htmlquery"
	"github.com/vdobler/formtest/response"
)

// Check is a single check performed on the last response.
type Check interface {
	// Execute executes the check.
	Execute(response.Holder) error
}

// NameOf returns the name of the type of inst.
func NameOf(inst interface{}) string {
	typ := reflect.TypeOf(inst)
	if typ == nil {
		return "<nil>"
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ.Name()
}

// ----------------------------------------------------------------------------
// Errors

// ErrFailed is returned by checks which just failed.
var ErrFailed = errors.New("failed")

// WrongCount is the error type returned by checks which require a certain
// number of matches.
type WrongCount struct {
	Selector  string
	Got, Want int
}

func (m WrongCount) Error() string {
	if m.Selector == "" {
		return fmt.Sprintf("found %d, want %d", m.Got, m.Want)
	}
	return fmt.Sprintf("selector %q: found %d, want %d", m.Selector, m.Got, m.Want)
}

// MalformedCheck is the error type returned by checks who are badly
// parametrized, e.g. who try to match against an unparsable selector.
type MalformedCheck struct {
	Err error
}

func (m MalformedCheck) Error() string {
	return fmt.Sprintf("malformed check: %s", m.Err.Error())
}

// Unwrap returns the underlying error.
func (m MalformedCheck) Unwrap() error { return m.Err }

// ----------------------------------------------------------------------------
// Query or fail

// Select returns the fragments of the last response of h matching selector.
// It fails with response.ErrNoResponse if h has not seen a response and with
// a MalformedCheck for selectors which do not parse.
func Select(h response.Holder, selector string) ([]string, error) {
	resp, err := h.LastResponse()
	if err != nil {
		return nil, err
	}
	matches, err := htmlquery.Query(resp.Body, selector)
	if err != nil {
		var pe *htmlquery.ParseError
		if errors.As(err, &pe) {
			return nil, MalformedCheck{Err: err}
		}
		return nil, fmt.Errorf("cannot parse HTML: %s", err)
	}
	return matches, nil
}

// ----------------------------------------------------------------------------
// CheckList

// CheckList is a list of checks executed in order.
type CheckList []Check

// Execute runs all checks in cl against h and collects all failures.
// The returned error is nil or an errorlist.List.
func (cl CheckList) Execute(h response.Holder) error {
	var el errorlist.List
	for _, c := range cl {
		if err := c.Execute(h); err != nil {
			el = el.Append(fmt.Errorf("%s: %s", NameOf(c), err))
		}
	}
	return el.AsError()
}
