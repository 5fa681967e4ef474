// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package request

// Action is one step in building a request.
type Action func(*Builder)

// Then combines actions into one Action executing them in order.
func Then(actions ...Action) Action {
	return func(b *Builder) {
		for _, a := range actions {
			if a != nil {
				a(b)
			}
		}
	}
}

// ByName is the Action form of Builder.AddByName.
func ByName(name, value string) Action {
	return func(b *Builder) { b.AddByName(name, value) }
}

// ByLabel is the Action form of Builder.AddByLabel.
func ByLabel(label, value string) Action {
	return func(b *Builder) { b.AddByLabel(label, value) }
}

// FileByName is the Action form of Builder.AddFileByName.
func FileByName(name, path, contentType string) Action {
	return func(b *Builder) { b.AddFileByName(name, path, contentType) }
}

// FileByLabel is the Action form of Builder.AddFileByLabel.
func FileByLabel(label, path, contentType string) Action {
	return func(b *Builder) { b.AddFileByLabel(label, path, contentType) }
}

// Token is the Action form of Builder.AddToken.
func Token(scope string) Action {
	return func(b *Builder) { b.AddToken(scope) }
}

// Header is the Action form of Builder.AddHeader.
func Header(name, value string) Action {
	return func(b *Builder) { b.AddHeader(name, value) }
}

// GetParam is the Action form of Builder.AddGetParam.
func GetParam(name, value string) Action {
	return func(b *Builder) { b.AddGetParam(name, value) }
}
