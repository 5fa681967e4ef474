// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ht

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime/debug"
	"strings"
	"time"

	"github.com/kr/pretty"
	"github.com/vdobler/formtest/htmlquery"
	"github.com/vdobler/formtest/request"
	"github.com/vdobler/formtest/response"
	"github.com/vdobler/formtest/sqlpool"
)

// T is the part of *testing.T a Session reports to. Fatalf must not
// return, it ends the test case (*testing.T uses runtime.Goexit).
type T interface {
	Helper()
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

// Pool executes opaque database queries. *sqlpool.Pool is a Pool.
type Pool interface {
	Run(ctx context.Context, q sqlpool.Query) error
}

// Session is the state of one test case: The application under test, the
// current session cookie and the last response received.
//
// A Session must not be shared between test cases.
type Session struct {
	// Name of the test case, used in log messages.
	Name string

	// Log and Verbosity control logging.
	Log       Logger
	Verbosity int

	// Options used to serialize requests.
	Options request.Options

	t    T
	app  http.Handler
	pool Pool

	cookie string
	last   *response.Response
}

// NewSession returns a Session without cookie and response reporting its
// failures to t. The pool may be nil if the test case does not access a
// database.
func NewSession(t T, name string, app http.Handler, pool Pool) *Session {
	return &Session{
		Name: name,
		t:    t,
		app:  app,
		pool: pool,
	}
}

// LastResponse implements response.Holder.
func (s *Session) LastResponse() (*response.Response, error) {
	return s.last.LastResponse()
}

// Cookie returns the current session cookie, e.g. "sid=abc", or "".
func (s *Session) Cookie() string { return s.cookie }

// fail reports err to the test case and ends it.
func (s *Session) fail(err error) {
	s.t.Helper()
	if IsFatal(err) {
		s.errorf("%s", err)
	} else {
		s.failf("%s", err)
	}
	s.t.Fatalf("%s", err)
}

// ----------------------------------------------------------------------------
// Requests

// Request builds a request to path by running actions against the last
// response, dispatches it to the application and records the response
// and the session cookie. Unlike Do it returns failures instead of ending
// the test case.
func (s *Session) Request(method, path string, actions ...request.Action) (*response.Response, error) {
	b := request.NewBuilder(s.last)
	request.Then(actions...)(b)
	if err := b.Err(); err != nil {
		return nil, err
	}
	parts := b.Parts()
	s.tracef("\nParts of %s %s:\n%s\n", method, path, pretty.Sprintf("%# v", parts))

	enc, err := request.Serialize(method, request.WithQuery(path, b.Query()), parts, s.Options)
	if err != nil {
		return nil, err
	}
	req, err := enc.HTTPRequest(s.cookie, b.Header())
	if err != nil {
		return nil, err
	}
	s.infof("%s %s (%d parts, %s)", method, enc.RequestURI(), len(parts), enc.ContentType)
	if s.cookie != "" {
		s.debugf("Cookie: %s", s.cookie)
	}
	s.tracef("\nBody:\n%s\n", enc.Body)

	resp, err := s.dispatch(req)
	var unsupported *response.UnsupportedEncoding
	if errors.As(err, &unsupported) {
		s.infof("Body kept undecoded: %s", err)
	} else if err != nil {
		return nil, err
	}
	s.last = resp
	s.infof("Response %s in %s", resp, resp.Duration)

	if setCookie, ok := resp.Header.Lookup("Set-Cookie"); ok {
		s.cookie = cookiePair(setCookie)
		s.debugf("Set-Cookie: %s", s.cookie)
	}
	return resp, nil
}

// cookiePair extracts the name=value part of a Set-Cookie header value.
func cookiePair(setCookie string) string {
	if i := strings.Index(setCookie, ";"); i != -1 {
		setCookie = setCookie[:i]
	}
	return strings.TrimSpace(setCookie)
}

// dispatch runs req through the application. A panic in the handler is
// returned as *HandlerPanic.
func (s *Session) dispatch(req *http.Request) (resp *response.Response, err error) {
	rec := httptest.NewRecorder()
	start := time.Now()
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = &HandlerPanic{Value: r, Stack: debug.Stack()}
			}
		}()
		s.app.ServeHTTP(rec, req)
	}()
	if err != nil {
		return nil, err
	}
	return response.FromRecorder(rec, time.Since(start))
}

// Do sends a method request to path with parameters built by actions.
// Any failure ends the test case.
func (s *Session) Do(method, path string, actions ...request.Action) {
	s.t.Helper()
	if _, err := s.Request(method, path, actions...); err != nil {
		s.fail(err)
	}
}

// Get sends a GET request. Without actions no parameters are sent.
func (s *Session) Get(path string, actions ...request.Action) {
	s.t.Helper()
	s.Do("GET", path, actions...)
}

// Post sends a POST request. Without actions an empty form is posted.
func (s *Session) Post(path string, actions ...request.Action) {
	s.t.Helper()
	s.Do("POST", path, actions...)
}

// Put sends a PUT request.
func (s *Session) Put(path string, actions ...request.Action) {
	s.t.Helper()
	s.Do("PUT", path, actions...)
}

// Delete sends a DELETE request.
func (s *Session) Delete(path string, actions ...request.Action) {
	s.t.Helper()
	s.Do("DELETE", path, actions...)
}

// Location returns the Location header of the last response which must be
// a redirect.
func (s *Session) Location() string {
	s.t.Helper()
	loc, err := s.location()
	if err != nil {
		s.fail(err)
	}
	return loc
}

func (s *Session) location() (string, error) {
	resp, err := s.LastResponse()
	if err != nil {
		return "", err
	}
	if resp.Status < 300 || resp.Status > 399 {
		return "", fmt.Errorf("last response %d %s is not a redirect",
			resp.Status, http.StatusText(resp.Status))
	}
	loc, ok := resp.Header.Lookup("Location")
	if !ok || loc == "" {
		return "", errors.New("redirect without Location header")
	}
	return loc, nil
}

// FollowRedirect sends a GET request to the Location of the last
// response.
func (s *Session) FollowRedirect() {
	s.t.Helper()
	loc, err := s.location()
	if err != nil {
		s.fail(err)
		return
	}
	s.debugf("Following redirect to %s", loc)
	s.Get(loc)
}

// ----------------------------------------------------------------------------
// Database

// RunDB executes q on the database pool of the suite.
func (s *Session) RunDB(q sqlpool.Query) {
	s.t.Helper()
	if s.pool == nil {
		s.fail(errors.New("no database pool configured"))
		return
	}
	s.debugf("Running database query")
	if err := s.pool.Run(context.Background(), q); err != nil {
		s.fail(fmt.Errorf("database query failed: %s", err))
	}
}

// ----------------------------------------------------------------------------
// Debugging

// PrintBody logs the body of the last response to the test case.
func (s *Session) PrintBody() {
	s.t.Helper()
	resp, err := s.LastResponse()
	if err != nil {
		s.fail(err)
		return
	}
	s.t.Logf("%s", resp.Body)
}

// PrintMatches logs every element matched by selector in the last
// response.
func (s *Session) PrintMatches(selector string) {
	s.t.Helper()
	resp, err := s.LastResponse()
	if err != nil {
		s.fail(err)
		return
	}
	doc, err := htmlquery.Parse(resp.Body)
	if err != nil {
		s.fail(err)
		return
	}
	matches, err := doc.Query(selector)
	if err != nil {
		s.fail(err)
		return
	}
	for _, m := range matches {
		s.t.Logf("%s", m)
	}
}
