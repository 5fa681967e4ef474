// Copyright 2016 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package suite collects test cases into a tree and runs them.
//
// A suite is built by nesting Describe and It:
//
//	s := suite.New(app, pool)
//	s.Describe("login", func(s *suite.Suite) {
//	    s.It("shows the form", func(h *ht.Session) {
//	        h.Get("/login")
//	        h.HTMLCount("form#login", 1)
//	    })
//	})
//
// Each It gets a fresh ht.Session: Nothing, not even the session cookie,
// is carried from one test case to the next. Test cases run sequentially
// in declaration order, either as subtests of a *testing.T (Run) or by
// Execute which collects the outcome in a Report.
package suite

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vdobler/formtest/ht"
	"github.com/vdobler/formtest/request"
)

// Spec is a node in the test tree: Either a group of Children or a test
// case with a Body.
type Spec struct {
	Label    string
	Children []Spec
	Body     func(*ht.Session)
}

// IsCase reports whether sp is a test case and not a group.
func (sp Spec) IsCase() bool { return sp.Body != nil }

// Suite accumulates test cases for the application App.
type Suite struct {
	App  http.Handler
	Pool ht.Pool // may be nil

	// Log, Verbosity and Options are handed to every session. A nil
	// Log logs to the *testing.T in Run.
	Log       ht.Logger
	Verbosity int
	Options   request.Options

	specs []Spec
}

// New returns an empty suite for app and pool.
func New(app http.Handler, pool ht.Pool) *Suite {
	return &Suite{App: app, Pool: pool}
}

// Describe groups the test cases added by inner under label. Groups nest
// arbitrarily deep.
func (s *Suite) Describe(label string, inner func(*Suite)) {
	sub := &Suite{App: s.App, Pool: s.Pool}
	inner(sub)
	s.specs = append(s.specs, Spec{Label: label, Children: sub.specs})
}

// It adds the test case label.
func (s *Suite) It(label string, body func(*ht.Session)) {
	s.specs = append(s.specs, Spec{Label: label, Body: body})
}

// Specs returns the test tree.
func (s *Suite) Specs() []Spec { return s.specs }

func (s *Suite) session(t ht.T, name string) *ht.Session {
	sess := ht.NewSession(t, name, s.App, s.Pool)
	sess.Log = s.Log
	sess.Verbosity = s.Verbosity
	sess.Options = s.Options
	return sess
}

// ----------------------------------------------------------------------------
// Running as Go test

// Run runs the suite as subtests of t.
func (s *Suite) Run(t *testing.T) {
	t.Helper()
	s.run(t, nil, s.specs)
}

func (s *Suite) run(t *testing.T, path []string, specs []Spec) {
	for _, sp := range specs {
		sp := sp
		name := append(path[:len(path):len(path)], sp.Label)
		if !sp.IsCase() {
			t.Run(sp.Label, func(t *testing.T) {
				s.run(t, name, sp.Children)
			})
			continue
		}
		t.Run(sp.Label, func(t *testing.T) {
			sess := s.session(t, strings.Join(name, " / "))
			if sess.Log == nil {
				sess.Log = ht.TestLogger{T: t}
			}
			sp.Body(sess)
		})
	}
}

// ----------------------------------------------------------------------------
// Running standalone

// caseT is the ht.T of a single test case run by Execute.
type caseT struct {
	failed bool
	fatal  bool
	msg    string
	logs   []string
}

func (c *caseT) Helper() {}

func (c *caseT) Fatalf(format string, args ...interface{}) {
	c.failed = true
	c.msg = fmt.Sprintf(format, args...)
	if len(args) == 1 {
		if err, ok := args[0].(error); ok && ht.IsFatal(err) {
			c.fatal = true
		}
	}
	runtime.Goexit()
}

func (c *caseT) Logf(format string, args ...interface{}) {
	c.logs = append(c.logs, fmt.Sprintf(format, args...))
}

// Execute runs all test cases sequentially and reports their outcome.
func (s *Suite) Execute(name string) *Report {
	report := &Report{Name: name, Started: time.Now()}
	s.execute(report, nil, s.specs)
	report.Duration = time.Since(report.Started)
	return report
}

func (s *Suite) execute(report *Report, path []string, specs []Spec) {
	for _, sp := range specs {
		name := append(path[:len(path):len(path)], sp.Label)
		if !sp.IsCase() {
			s.execute(report, name, sp.Children)
			continue
		}
		report.Cases = append(report.Cases, s.executeCase(strings.Join(name, " / "), sp.Body))
	}
}

// executeCase runs body in its own goroutine so that Fatalf can end it
// via runtime.Goexit.
func (s *Suite) executeCase(name string, body func(*ht.Session)) CaseResult {
	ct := &caseT{}
	result := CaseResult{Name: name, Status: NotRun}
	start := time.Now()

	var wg sync.WaitGroup
	var panicked interface{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() { panicked = recover() }()
		body(s.session(ct, name))
	}()
	wg.Wait()

	result.Duration = time.Since(start)
	result.Log = ct.logs
	switch {
	case panicked != nil:
		result.Status = Error
		result.Error = fmt.Sprintf("test case panicked: %v", panicked)
	case ct.fatal:
		result.Status = Error
		result.Error = ct.msg
	case ct.failed:
		result.Status = Fail
		result.Error = ct.msg
	default:
		result.Status = Pass
	}
	return result
}
