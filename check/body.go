// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// body.go contains basic checks on the un-interpreted body of a HTTP response.

package check

import (
	"fmt"
	"strings"

	"github.com/vdobler/formtest/response"
)

// ----------------------------------------------------------------------------
// BodyEquals

// BodyEquals checks that the body is exactly Text.
type BodyEquals struct {
	Text string
}

// Execute implements Check's Execute method.
func (c BodyEquals) Execute(h response.Holder) error {
	resp, err := h.LastResponse()
	if err != nil {
		return err
	}
	if got := resp.BodyStr(); got != c.Text {
		return fmt.Errorf("got body %q, want %q", abbreviate(got), abbreviate(c.Text))
	}
	return nil
}

// ----------------------------------------------------------------------------
// BodyContains and BodyNotContains

// BodyContains checks that the body contains Text.
type BodyContains struct {
	Text string
}

// Execute implements Check's Execute method.
func (c BodyContains) Execute(h response.Holder) error {
	resp, err := h.LastResponse()
	if err != nil {
		return err
	}
	if !strings.Contains(resp.BodyStr(), c.Text) {
		return fmt.Errorf("body does not contain %q", c.Text)
	}
	return nil
}

// BodyNotContains checks that Text does not occur in the body.
type BodyNotContains struct {
	Text string
}

// Execute implements Check's Execute method.
func (c BodyNotContains) Execute(h response.Holder) error {
	resp, err := h.LastResponse()
	if err != nil {
		return err
	}
	if n := strings.Count(resp.BodyStr(), c.Text); n > 0 {
		return fmt.Errorf("found forbidden %q %d times in body", c.Text, n)
	}
	return nil
}

// abbreviate s to at most 200 bytes for error messages.
func abbreviate(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
