// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ht

import (
	"fmt"

	"github.com/vdobler/formtest/check"
)

// Check executes the checks in order against the last response. The first
// failing check ends the test case.
func (s *Session) Check(checks ...check.Check) {
	s.t.Helper()
	for _, c := range checks {
		err := c.Execute(s)
		if err != nil {
			s.fail(fmt.Errorf("%s: %s", check.NameOf(c), err))
			return
		}
		s.debugf("Check %s: okay", check.NameOf(c))
	}
}

// CheckAll executes all checks against the last response and reports
// every failing one at once.
func (s *Session) CheckAll(checks ...check.Check) {
	s.t.Helper()
	if err := check.CheckList(checks).Execute(s); err != nil {
		s.fail(err)
	}
}

// StatusIs asserts the status code of the last response.
func (s *Session) StatusIs(code int) {
	s.t.Helper()
	s.Check(check.StatusCode{Expect: code})
}

// AssertHeader asserts that the header name of the last response has the
// given value. Header names are case-insensitive.
func (s *Session) AssertHeader(name, value string) {
	s.t.Helper()
	s.Check(check.Header{Header: name, Value: value})
}

// AssertNoHeader asserts that the last response has no header name.
func (s *Session) AssertNoHeader(name string) {
	s.t.Helper()
	s.Check(check.Header{Header: name, Absent: true})
}

// BodyEquals asserts that the body of the last response is text.
func (s *Session) BodyEquals(text string) {
	s.t.Helper()
	s.Check(check.BodyEquals{Text: text})
}

// BodyContains asserts that the body of the last response contains text.
func (s *Session) BodyContains(text string) {
	s.t.Helper()
	s.Check(check.BodyContains{Text: text})
}

// BodyNotContains asserts that text does not occur in the body.
func (s *Session) BodyNotContains(text string) {
	s.t.Helper()
	s.Check(check.BodyNotContains{Text: text})
}

// HTMLAllContain asserts that selector matches at least one element and
// that all matched elements contain text.
func (s *Session) HTMLAllContain(selector, text string) {
	s.t.Helper()
	s.Check(check.HTMLAllContain{Selector: selector, Text: text})
}

// HTMLAnyContain asserts that at least one element matched by selector
// contains text.
func (s *Session) HTMLAnyContain(selector, text string) {
	s.t.Helper()
	s.Check(check.HTMLAnyContain{Selector: selector, Text: text})
}

// HTMLNoneContain asserts that no element matched by selector contains
// text.
func (s *Session) HTMLNoneContain(selector, text string) {
	s.t.Helper()
	s.Check(check.HTMLNoneContain{Selector: selector, Text: text})
}

// HTMLCount asserts that selector matches exactly n elements.
func (s *Session) HTMLCount(selector string, n int) {
	s.t.Helper()
	s.Check(check.HTMLCount{Selector: selector, Count: n})
}

// JSONExpr asserts that the gojee expression evaluates to true on the
// JSON body of the last response.
func (s *Session) JSONExpr(expression string) {
	s.t.Helper()
	s.Check(check.JSONExpr{Expression: expression})
}

// SetsCookie asserts that the last response sets cookie name. An empty
// value accepts any value.
func (s *Session) SetsCookie(name, value string) {
	s.t.Helper()
	s.Check(check.SetCookie{Name: name, Value: value})
}

// DeletesCookie asserts that the last response deletes cookie name.
func (s *Session) DeletesCookie(name string) {
	s.t.Helper()
	s.Check(check.DeleteCookie{Name: name})
}

// ContentTypeIs asserts the media type of the last response, see
// check.ContentType for abbreviations.
func (s *Session) ContentTypeIs(mediaType string) {
	s.t.Helper()
	s.Check(check.ContentType{Is: mediaType})
}
