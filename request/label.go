// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"html"
	"strings"

	"github.com/vdobler/formtest/htmlquery"
	"github.com/vdobler/formtest/response"
	"golang.org/x/text/unicode/norm"
)

// ResolveFieldName returns the name of the form control bound to the label
// element whose text contains label in the last response of h.
//
// The label text is HTML escaped the way a template would have rendered it
// and compared against the escaped text content of all label elements.
// Exactly one label may match; its for attribute must reference exactly
// one element by id which provides the name.
func ResolveFieldName(h response.Holder, label string) (string, error) {
	resp, err := h.LastResponse()
	if err != nil {
		return "", err
	}
	escaped := norm.NFC.String(html.EscapeString(label))

	labels, err := htmlquery.Query(resp.Body, "label")
	if err != nil {
		return "", err
	}
	var matching []string
	for _, l := range labels {
		text := norm.NFC.String(htmlquery.TextContent(l))
		if strings.Contains(text, escaped) {
			matching = append(matching, l)
		}
	}
	switch len(matching) {
	case 0:
		return "", fmt.Errorf("no label contained: %s", label)
	case 1:
	default:
		return "", fmt.Errorf("more than one label contained %s", label)
	}
	id, ok := htmlquery.Attr(matching[0], "for")
	if !ok {
		return "", fmt.Errorf("label containing %s has no for attribute", label)
	}

	inputs, err := htmlquery.Query(resp.Body, "[id="+htmlquery.QuoteValue(id)+"]")
	if err != nil {
		return "", err
	}
	switch len(inputs) {
	case 0:
		return "", fmt.Errorf("no input with id %s", id)
	case 1:
	default:
		return "", fmt.Errorf("more than one input with id %s", id)
	}
	name, ok := htmlquery.Attr(inputs[0], "name")
	if !ok {
		return "", fmt.Errorf("input with id %s has no name attribute", id)
	}
	return name, nil
}
