// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// json.go contains checks for a JSON body.

package check

import (
	"encoding/json"
	"fmt"

	"github.com/nytlabs/gojee"
	"github.com/vdobler/formtest/response"
)

// ----------------------------------------------------------------------------
// JSONExpr

// JSONExpr allows checking JSON documents via gojee expressions.
// See github.com/nytlabs/gojee for details.
//
// Consider this JSON:
//
//	{ "foo": 5, "bar": [ 1, 2, 3 ] }
//
// The following expressions have these truth values:
//
//	.foo == 5                    true
//	$len(.bar) > 2               true as $len(.bar)==3
//	.bar[1] == 2                 true
//	$has(.bar, 7)                false as bar has no 7
type JSONExpr struct {
	// Expression is a boolean gojee expression which must evaluate
	// to true for the check to pass.
	Expression string
}

func (c JSONExpr) compile() (*jee.TokenTree, error) {
	if c.Expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	tokens, err := jee.Lexer(c.Expression)
	if err != nil {
		return nil, err
	}
	return jee.Parser(tokens)
}

// Execute implements Check's Execute method.
func (c JSONExpr) Execute(h response.Holder) error {
	tt, err := c.compile()
	if err != nil {
		return MalformedCheck{Err: err}
	}
	resp, err := h.LastResponse()
	if err != nil {
		return err
	}

	var bmsg jee.BMsg
	if err := json.Unmarshal(resp.Body, &bmsg); err != nil {
		return fmt.Errorf("body is not JSON: %s", err)
	}

	result, err := jee.Eval(tt, bmsg)
	if err != nil {
		return err
	}
	if b, ok := result.(bool); !ok {
		return MalformedCheck{Err: fmt.Errorf("expected bool, got %T (%#v)", result, result)}
	} else if !b {
		return fmt.Errorf("expression %q: %s", c.Expression, ErrFailed)
	}
	return nil
}
