// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// html.go contains checks on the HTML body of a response.

package check

import (
	"fmt"
	"strings"

	"github.com/vdobler/formtest/response"
)

// ----------------------------------------------------------------------------
// HTMLAllContain, HTMLAnyContain and HTMLNoneContain

// HTMLAllContain checks that each element matched by Selector contains
// Text in its markup. A Selector matching nothing fails the check.
type HTMLAllContain struct {
	Selector string
	Text     string
}

// Execute implements Check's Execute method.
func (c HTMLAllContain) Execute(h response.Holder) error {
	matches, err := Select(h, c.Selector)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("selector %q matched no elements", c.Selector)
	}
	for i, m := range matches {
		if !strings.Contains(m, c.Text) {
			return fmt.Errorf("element %d of %d matched by %q does not contain %q: %s",
				i+1, len(matches), c.Selector, c.Text, m)
		}
	}
	return nil
}

// HTMLAnyContain checks that at least one element matched by Selector
// contains Text.
type HTMLAnyContain struct {
	Selector string
	Text     string
}

// Execute implements Check's Execute method.
func (c HTMLAnyContain) Execute(h response.Holder) error {
	matches, err := Select(h, c.Selector)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if strings.Contains(m, c.Text) {
			return nil
		}
	}
	return fmt.Errorf("none of the %d elements matched by %q contains %q",
		len(matches), c.Selector, c.Text)
}

// HTMLNoneContain checks that no element matched by Selector contains Text.
// A Selector matching nothing passes.
type HTMLNoneContain struct {
	Selector string
	Text     string
}

// Execute implements Check's Execute method.
func (c HTMLNoneContain) Execute(h response.Holder) error {
	matches, err := Select(h, c.Selector)
	if err != nil {
		return err
	}
	for i, m := range matches {
		if strings.Contains(m, c.Text) {
			return fmt.Errorf("element %d of %d matched by %q contains forbidden %q: %s",
				i+1, len(matches), c.Selector, c.Text, m)
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// HTMLCount

// HTMLCount checks the number of elements matched by Selector.
type HTMLCount struct {
	Selector string
	Count    int
}

// Execute implements Check's Execute method.
func (c HTMLCount) Execute(h response.Holder) error {
	matches, err := Select(h, c.Selector)
	if err != nil {
		return err
	}
	if len(matches) != c.Count {
		return WrongCount{Selector: c.Selector, Got: len(matches), Want: c.Count}
	}
	return nil
}
