// Copyright 2017 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package htmlquery evaluates CSS selectors against HTML fragments.
//
// Fragments are handled as plain markup: Query parses its input freshly on
// every call and returns the matched elements rendered back to markup, so
// the results can be fed into Query, Attr or TextContent again.
//
// The selector grammar is the one of github.com/andybalholm/cascadia which
// covers (among much more) the following forms
//
//	input                          tag name
//	[value]                        attribute presence
//	[name=_token]                  attribute value
//	input[type=hidden][value]      several attribute predicates
//	form#login input               descendant combinator
package htmlquery

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseError is returned for selectors which cannot be parsed.
type ParseError struct {
	Selector string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse selector %q: %s", e.Selector, e.Err)
}

// Unwrap returns the error reported by the selector compiler.
func (e *ParseError) Unwrap() error { return e.Err }

// Compile compiles selector. Compilation errors are reported as *ParseError.
func Compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, &ParseError{Selector: selector, Err: err}
	}
	return sel, nil
}

// Query returns all elements of fragment matching selector in document
// order, each rendered back to markup.
func Query(fragment []byte, selector string) ([]string, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(fragment)
	if err != nil {
		return nil, err
	}
	return render(sel.MatchAll(doc.root))
}

// Concat builds the selector for sel inside scope. An empty scope
// yields sel unchanged.
func Concat(scope, sel string) string {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return sel
	}
	return scope + " " + sel
}

// QuoteValue quotes s for use as the value in an attribute selector
// like [id="..."].
func QuoteValue(s string) string {
	s = strings.Replace(s, `\`, `\\`, -1)
	s = strings.Replace(s, `"`, `\"`, -1)
	return `"` + s + `"`
}

// ----------------------------------------------------------------------------
// Document

// Document is a parsed HTML document which can be queried several times.
type Document struct {
	root *html.Node
}

// Parse parses body into a Document.
func Parse(body []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Query is like the package level Query but works on the already parsed d.
func (d *Document) Query(selector string) ([]string, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	return render(sel.MatchAll(d.root))
}

// Count returns the number of elements in d matching selector.
func (d *Document) Count(selector string) (int, error) {
	sel, err := Compile(selector)
	if err != nil {
		return 0, err
	}
	return len(sel.MatchAll(d.root)), nil
}

func render(nodes []*html.Node) ([]string, error) {
	result := make([]string, 0, len(nodes))
	buf := &bytes.Buffer{}
	for _, n := range nodes {
		buf.Reset()
		if err := html.Render(buf, n); err != nil {
			return nil, err
		}
		result = append(result, buf.String())
	}
	return result, nil
}

// ----------------------------------------------------------------------------
// Working on single fragments

var bodyContext = &html.Node{
	Type:     html.ElementNode,
	Data:     "body",
	DataAtom: atom.Body,
}

// firstElement returns the first element node of fragment.
func firstElement(fragment string) *html.Node {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext)
	if err != nil {
		return nil
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// Attr returns the value of the attribute name of the first element
// in fragment.
func Attr(fragment string, name string) (string, bool) {
	n := firstElement(fragment)
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent returns the concatenated text nodes of fragment. Each text
// node is HTML escaped like a renderer would have escaped it in the page.
func TextContent(fragment string) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext)
	if err != nil {
		return ""
	}
	buf := &bytes.Buffer{}
	for _, n := range nodes {
		escapedText(buf, n)
	}
	return buf.String()
}

func escapedText(buf *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(html.EscapeString(n.Data))
	case html.ElementNode, html.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			escapedText(buf, child)
		}
	}
}
