// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package check

import (
	"testing"

	"github.com/vdobler/formtest/response"
)

var jr = response.Response{Body: []byte(`{"foo": 5, "bar": [1,2,3]}`)}
var jsonTests = []TC{
	{jr, JSONExpr{Expression: "(.foo == 5) && ($len(.bar)==3) && (.bar[1]==2)"}, ""},
	{jr, JSONExpr{Expression: ".foo == 3"}, `expression ".foo == 3": failed`},
	{jr, JSONExpr{Expression: ""}, "malformed check"},
	{response.Response{Body: []byte("<html>")}, JSONExpr{Expression: ".foo == 5"}, "body is not JSON"},
}

func TestJSONExpr(t *testing.T) {
	for i, tc := range jsonTests {
		runTest(t, i, tc)
	}
}
