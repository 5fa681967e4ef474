// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"

	"github.com/vdobler/formtest/htmlquery"
	"github.com/vdobler/formtest/response"
)

const (
	// TokenField is the name of the hidden anti-forgery form field.
	TokenField = "_token"

	// TokenSelector selects the hidden token input; it is appended
	// to the scope passed to AddToken.
	TokenSelector = "input[name=" + TokenField + "][type=hidden][value]"
)

var (
	// ErrNoToken is returned if the last response contains no token.
	ErrNoToken = errors.New("no token found")

	// ErrManyTokens is returned if the token is ambiguous.
	ErrManyTokens = errors.New("more than one token found")
)

// FindToken returns the value of the single token input inside scope in
// the last response of h. An empty scope searches the whole page.
func FindToken(h response.Holder, scope string) (string, error) {
	resp, err := h.LastResponse()
	if err != nil {
		return "", err
	}
	matches, err := htmlquery.Query(resp.Body, htmlquery.Concat(scope, TokenSelector))
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", ErrNoToken
	case 1:
	default:
		return "", ErrManyTokens
	}
	value, _ := htmlquery.Attr(matches[0], "value")
	return value, nil
}
