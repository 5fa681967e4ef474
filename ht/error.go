// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ht

import (
	"errors"
	"fmt"

	"github.com/vdobler/formtest/request"
)

// HandlerPanic is the error reported if the application handler panics.
type HandlerPanic struct {
	Value interface{}
	Stack []byte
}

func (p *HandlerPanic) Error() string {
	return fmt.Sprintf("handler panicked: %v", p.Value)
}

// IsFatal reports whether err is a fatal I/O failure, i.e. an upload file
// which could not be read or a panicking handler, and not a plain
// assertion failure.
func IsFatal(err error) bool {
	var fe *request.FileError
	var hp *HandlerPanic
	return errors.As(err, &fe) || errors.As(err, &hp)
}
