// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ht

// Logger is the interface sessions log to. A *log.Logger will do.
type Logger interface {
	Printf(format string, a ...interface{})
}

// TestLogger adapts a *testing.T (or anything with a Logf method) to
// Logger.
type TestLogger struct {
	T interface {
		Logf(format string, a ...interface{})
	}
}

// Printf implements Logger.
func (l TestLogger) Printf(format string, a ...interface{}) {
	l.T.Logf(format, a...)
}

func (s *Session) errorf(format string, v ...interface{}) {
	if s.Verbosity >= 0 && s.Log != nil {
		format = "ERROR " + format + " [%q]"
		v = append(v, s.Name)
		s.Log.Printf(format, v...)
	}
}

func (s *Session) failf(format string, v ...interface{}) {
	if s.Verbosity >= 0 && s.Log != nil {
		format = "FAIL  " + format + " [%q]"
		v = append(v, s.Name)
		s.Log.Printf(format, v...)
	}
}

func (s *Session) infof(format string, v ...interface{}) {
	if s.Verbosity >= 1 && s.Log != nil {
		format = "INFO  " + format + " [%q]"
		v = append(v, s.Name)
		s.Log.Printf(format, v...)
	}
}

func (s *Session) debugf(format string, v ...interface{}) {
	if s.Verbosity >= 2 && s.Log != nil {
		format = "DEBUG " + format + " [%q]"
		v = append(v, s.Name)
		s.Log.Printf(format, v...)
	}
}

func (s *Session) tracef(format string, v ...interface{}) {
	if s.Verbosity >= 3 && s.Log != nil {
		format = "TRACE Begin [%q]" + format + "TRACE End"
		v = append([]interface{}{s.Name}, v...)
		s.Log.Printf(format, v...)
	}
}
