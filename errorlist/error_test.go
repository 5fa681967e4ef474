// Copyright 2017 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errorlist

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestAppend(t *testing.T) {
	var el List
	el = el.Append(nil)
	if el.AsError() != nil {
		t.Fatalf("got %v, want nil error", el)
	}

	el = el.Append(errors.New("one"))
	el = el.Append(List{errors.New("two"), errors.New("three")})
	if len(el) != 3 {
		t.Fatalf("got %d errors, want 3", len(el))
	}
	if got, want := el.Error(), "one;  two;  three"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFprintln(t *testing.T) {
	buf := &bytes.Buffer{}
	Fprintln(buf, "  ", List{errors.New("a"), List{errors.New("b")}})
	if got, want := buf.String(), "  a\n  b\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()
	Fprintln(buf, "", nil)
	if buf.Len() != 0 {
		t.Errorf("nil error printed %q", buf.String())
	}
}

var errSentinel = errors.New("sentinel")

func TestUnwrap(t *testing.T) {
	var el List
	el = el.Append(errors.New("first"))
	el = el.Append(List{fmt.Errorf("wrapped: %w", errSentinel)})
	if !errors.Is(el, errSentinel) {
		t.Errorf("errors.Is does not find sentinel in %v", el)
	}
	if errors.Is(List{errors.New("other")}, errSentinel) {
		t.Errorf("errors.Is finds sentinel where there is none")
	}
}
