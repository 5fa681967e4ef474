// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package check

import (
	"errors"
	"strings"
	"testing"

	"github.com/vdobler/formtest/errorlist"
	"github.com/vdobler/formtest/response"
)

// ----------------------------------------------------------------------------
// type TC and runTest: helpers for testing the different checks

// TC is a test case for a check: The check c is executed against r and
// must fail with an error containing e or pass if e is empty.
type TC struct {
	r response.Response
	c Check
	e string
}

func runTest(t *testing.T, i int, tc TC) {
	t.Helper()
	got := tc.c.Execute(&tc.r)
	switch {
	case got == nil && tc.e == "":
		return
	case got != nil && tc.e == "":
		t.Errorf("%d. %s %v: unexpected error %v",
			i, NameOf(tc.c), tc.c, got)
	case got == nil && tc.e != "":
		t.Errorf("%d. %s %v: missing error, want %q",
			i, NameOf(tc.c), tc.c, tc.e)
	case !strings.Contains(got.Error(), tc.e):
		t.Errorf("%d. %s %v: got error %q, want %q",
			i, NameOf(tc.c), tc.c, got, tc.e)
	}
}

// ----------------------------------------------------------------------------
// Status, Header and Body

var sr = response.Response{
	Status: 200,
	Header: response.Header{
		{Name: "Content-Type", Value: "text/html"},
		{Name: "X-Multi", Value: "first"},
		{Name: "x-multi", Value: "second"},
	},
	Body: []byte("Hello World, hello world."),
}

var basicTests = []TC{
	{sr, StatusCode{Expect: 200}, ""},
	{sr, StatusCode{Expect: 404}, "got 200, want 404"},
	{response.Response{Status: 404}, StatusCode{Expect: 200}, "got 404, want 200"},

	{sr, Header{Header: "content-type", Value: "text/html"}, ""},
	{sr, Header{Header: "X-MULTI", Value: "first"}, ""},
	{sr, Header{Header: "X-Multi", Value: "second"}, `header X-Multi: got "first", want "second"`},
	{sr, Header{Header: "Location", Value: "/"}, "header Location not received"},
	{sr, Header{Header: "X-Foo", Absent: true}, ""},
	{sr, Header{Header: "X-Multi", Absent: true}, `forbidden header X-Multi received with value "first"`},

	{sr, BodyEquals{Text: "Hello World, hello world."}, ""},
	{sr, BodyEquals{Text: "Hello World"}, `got body "Hello World, hello world.", want "Hello World"`},
	{sr, BodyContains{Text: "World"}, ""},
	{sr, BodyContains{Text: "Welt"}, `body does not contain "Welt"`},
	{sr, BodyNotContains{Text: "Welt"}, ""},
	{sr, BodyNotContains{Text: "orld"}, `found forbidden "orld" 2 times in body`},
}

func TestBasicChecks(t *testing.T) {
	for i, tc := range basicTests {
		runTest(t, i, tc)
	}
}

// ----------------------------------------------------------------------------
// HTML

var hr = response.Response{
	Status: 200,
	Body: []byte(`<!doctype html>
<html><head><title>Items</title></head>
<body>
<h1 class="title">All Items</h1>
<ul id="items">
  <li class="item">Item one</li>
  <li class="item">Item two</li>
  <li class="item special">Item three</li>
</ul>
<p>Some <b>bold</b> text.</p>
</body></html>`),
}

var htmlTests = []TC{
	{hr, HTMLCount{Selector: "li.item", Count: 3}, ""},
	{hr, HTMLCount{Selector: "li.item", Count: 2}, `selector "li.item": found 3, want 2`},
	{hr, HTMLCount{Selector: "table", Count: 0}, ""},
	{hr, HTMLCount{Selector: "ul#items li[class]", Count: 3}, ""},
	{hr, HTMLCount{Selector: "li[", Count: 3}, "malformed check"},

	{hr, HTMLAllContain{Selector: "li", Text: "Item"}, ""},
	{hr, HTMLAllContain{Selector: "li", Text: "two"}, `element 1 of 3 matched by "li" does not contain "two"`},
	{hr, HTMLAllContain{Selector: "table", Text: "x"}, `selector "table" matched no elements`},
	{hr, HTMLAllContain{Selector: "p", Text: "<b>bold</b>"}, ""},
	{hr, HTMLAllContain{Selector: "p[[", Text: "x"}, "malformed check"},

	{hr, HTMLAnyContain{Selector: "li", Text: "three"}, ""},
	{hr, HTMLAnyContain{Selector: "li", Text: "four"}, `none of the 3 elements matched by "li" contains "four"`},
	{hr, HTMLNoneContain{Selector: "li", Text: "four"}, ""},
	{hr, HTMLNoneContain{Selector: "table", Text: "four"}, ""},
	{hr, HTMLNoneContain{Selector: "li", Text: "two"}, `element 2 of 3 matched by "li" contains forbidden "two"`},
}

func TestHTMLChecks(t *testing.T) {
	for i, tc := range htmlTests {
		runTest(t, i, tc)
	}
}

func TestSelectMalformed(t *testing.T) {
	_, err := Select(&hr, "li[")
	var mc MalformedCheck
	if !errors.As(err, &mc) {
		t.Fatalf("got %T %v, want MalformedCheck", err, err)
	}
}

// ----------------------------------------------------------------------------
// No response

type noResponse struct{}

func (noResponse) LastResponse() (*response.Response, error) {
	return nil, response.ErrNoResponse
}

func TestChecksWithoutResponse(t *testing.T) {
	for i, c := range []Check{
		StatusCode{Expect: 200},
		Header{Header: "X-Foo", Absent: true},
		BodyEquals{Text: ""},
		BodyContains{Text: "a"},
		HTMLCount{Selector: "li", Count: 0},
		HTMLAllContain{Selector: "li", Text: "a"},
		JSONExpr{Expression: ".foo == 5"},
		SetCookie{Name: "sid"},
		DeleteCookie{Name: "sid"},
		ContentType{Is: "html"},
	} {
		err := c.Execute(noResponse{})
		if err != response.ErrNoResponse {
			t.Errorf("%d. %s: got %v, want %v", i, NameOf(c), err, response.ErrNoResponse)
		}
	}
}

// ----------------------------------------------------------------------------
// CheckList

func TestCheckList(t *testing.T) {
	cl := CheckList{
		StatusCode{Expect: 200},
		StatusCode{Expect: 302},
		HTMLCount{Selector: "li", Count: 3},
		BodyContains{Text: "Nope"},
	}
	err := cl.Execute(&hr)
	el, ok := err.(errorlist.List)
	if !ok {
		t.Fatalf("got %T, want errorlist.List", err)
	}
	got := el.AsStrings()
	want := []string{
		"StatusCode: got 200, want 302",
		`BodyContains: body does not contain "Nope"`,
	}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%d. got %q, want %q", i, got[i], want[i])
		}
	}

	if err := (CheckList{StatusCode{Expect: 200}}).Execute(&hr); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestNameOf(t *testing.T) {
	if got := NameOf(HTMLCount{}); got != "HTMLCount" {
		t.Errorf("got %q", got)
	}
	if got := NameOf(&StatusCode{}); got != "StatusCode" {
		t.Errorf("got %q", got)
	}
}
