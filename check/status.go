// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// status.go provides checks on the status code of a HTTP response.

package check

import (
	"fmt"

	"github.com/vdobler/formtest/response"
)

// ----------------------------------------------------------------------------
// StatusCode

// StatusCode checks the HTTP status code.
type StatusCode struct {
	Expect int
}

// Execute implements Check's Execute method.
func (c StatusCode) Execute(h response.Holder) error {
	resp, err := h.LastResponse()
	if err != nil {
		return err
	}
	if resp.Status != c.Expect {
		return fmt.Errorf("got %d, want %d", resp.Status, c.Expect)
	}
	return nil
}
