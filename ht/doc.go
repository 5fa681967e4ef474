// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ht drives a web application in-process like a browser driven by a
test would: A Session sends requests to an http.Handler, keeps the session
cookie and remembers the last response which is then inspected by
assertions or used to fill in the next form.

A typical test case looks like

	s.Get("/login")
	s.StatusIs(200)
	s.Post("/login", request.Then(
	    request.ByLabel("Email", "bob@example.org"),
	    request.ByLabel("Password", "secret"),
	    request.Token(""),
	))
	s.StatusIs(303)
	s.FollowRedirect()
	s.HTMLCount("ul#items li", 3)

Form fields are addressed by the visible text of their label, the
generated name attribute of the input need not be known. The hidden
_token field of the form is copied by request.Token.

# Failures

Any failing operation ends the test case through T.Fatalf. Assertion
failures (a wrong status, a missing label, a selector which does not
parse, no response yet) and fatal failures (an unreadable upload file,
a panicking handler) are reported the same way; IsFatal tells them apart.

# Logging

Sessions log through the Printf method of Log, gated by Verbosity:

	0  errors and failed assertions
	1  requests and responses
	2  cookies and checks
	3  request parts and bodies
*/
package ht
