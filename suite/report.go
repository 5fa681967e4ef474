// Copyright 2016 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package suite

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"
)

// ----------------------------------------------------------------------------
// Status

// Status describes the outcome of a test case.
type Status int

const (
	NotRun Status = iota // Not yet executed
	Pass                 // That's what we want
	Fail                 // An assertion failed
	Error                // Upload file unreadable, handler or test panicked
)

func (s Status) String() string {
	return []string{"NotRun", "Pass", "Fail", "Error"}[int(s)]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || s > Error {
		return []byte(""), fmt.Errorf("no such status %d", s)
	}
	return []byte(s.String()), nil
}

// ----------------------------------------------------------------------------
// Report

// CaseResult is the outcome of one test case.
type CaseResult struct {
	Name     string // labels of all enclosing groups and the case joined by " / "
	Status   Status
	Error    string
	Duration time.Duration
	Log      []string // output of PrintBody and PrintMatches
}

// Report is the outcome of Execute.
type Report struct {
	Name     string
	Started  time.Time
	Duration time.Duration
	Cases    []CaseResult
}

// Status is the worst status of all test cases.
func (r *Report) Status() Status {
	status := NotRun
	for _, c := range r.Cases {
		if c.Status > status {
			status = c.Status
		}
	}
	return status
}

// Stats counts the test cases by status.
func (r *Report) Stats() (notRun int, passed int, failed int, errored int) {
	for _, c := range r.Cases {
		switch c.Status {
		case NotRun:
			notRun++
		case Pass:
			passed++
		case Fail:
			failed++
		case Error:
			errored++
		default:
			panic(fmt.Sprintf("No such Status %d in %s", c.Status, c.Name))
		}
	}
	return
}

// Box around title, indented by prefix.
//
//	+------------+
//	|    Title   |
//	+------------+
func Box(title string, prefix string) string {
	n := len(title)
	top := prefix + "+" + strings.Repeat("-", n+6) + "+"
	return fmt.Sprintf("%s\n%s|   %s   |\n%s", top, prefix, title, top)
}

// ----------------------------------------------------------------------------
// Text report

var textReportTmpl = `{{define "CASE"}}{{printf "%-6s" (ToUpper .Status.String)}} {{.Name}} ({{niceduration .Duration}}){{if .Error}}
       {{.Error}}{{end}}{{range .Log}}
       | {{.}}{{end}}
{{end}}{{Box (printf "%s: %s" (ToUpper .Status.String) .Name) ""}}
Started: {{.Started.Format "2006-01-02 15:04:05"}}   Duration: {{niceduration .Duration}}

{{range .Cases}}{{template "CASE" .}}{{end}}
{{with stats .}}Passed {{index . 1}}, Failed {{index . 2}}, Errored {{index . 3}}, NotRun {{index . 0}}{{end}}
`

var textReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"Box":          Box,
	"ToUpper":      strings.ToUpper,
	"niceduration": niceDuration,
	"stats": func(r *Report) []int {
		n, p, f, e := r.Stats()
		return []int{n, p, f, e}
	},
}).Parse(textReportTmpl))

// niceDuration rounds d to a readable precision.
func niceDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(100 * time.Microsecond).String()
	}
	return d.Round(time.Millisecond).String()
}

// PrintReport writes a plain text report of r to w.
func (r *Report) PrintReport(w io.Writer) error {
	return textReport.Execute(w, r)
}

// ----------------------------------------------------------------------------
// JUnit style output

// JUnit4XML generates a JUnit 4 compatible XML result with each test case
// reported as an individual testcase. Errored test cases are reported as
// errors, failed ones as failures.
func (r *Report) JUnit4XML() (string, error) {
	// Local types used for XML encoding
	type SysOut struct {
		XMLName xml.Name `xml:"system-out"`
		Data    string   `xml:",innerxml"`
	}
	type ErrorMsg struct {
		Message string `xml:"message,attr"`
		Typ     string `xml:"type,attr"`
	}
	type Testcase struct {
		XMLName   xml.Name  `xml:"testcase"`
		Name      string    `xml:"name,attr"`
		Classname string    `xml:"classname,attr"`
		Time      float64   `xml:"time,attr"`
		Skipped   *struct{} `xml:"skipped,omitempty"`
		Error     *ErrorMsg `xml:"error,omitempty"`
		Failure   *ErrorMsg `xml:"failure,omitempty"`
		SystemOut string    `xml:"system-out,omitempty"`
	}
	type Testsuite struct {
		XMLName   xml.Name `xml:"testsuite"`
		Name      string   `xml:"name,attr"`
		Tests     int      `xml:"tests,attr"`
		Errors    int      `xml:"errors,attr"`
		Failures  int      `xml:"failures,attr"`
		Skipped   int      `xml:"skipped,attr"`
		Time      float64  `xml:"time,attr"`
		Timestamp string   `xml:"timestamp,attr"`
		Testcase  []Testcase
		SystemOut SysOut
	}

	testcases := []Testcase{}
	for _, c := range r.Cases {
		tc := Testcase{
			Name:      c.Name,
			Classname: r.Name,
			Time:      float64(c.Duration) / 1e9,
			SystemOut: strings.Join(c.Log, "\n"),
		}
		switch c.Status {
		case NotRun:
			tc.Skipped = &struct{}{}
		case Fail:
			tc.Failure = &ErrorMsg{Message: c.Error, Typ: "assertion"}
		case Error:
			tc.Error = &ErrorMsg{Message: c.Error, Typ: "fatal"}
		}
		testcases = append(testcases, tc)
	}

	// The standard text report becomes the standard-out of the
	// generated JUnit report.
	buf := &bytes.Buffer{}
	var sysout string
	if err := r.PrintReport(buf); err != nil {
		sysout = err.Error()
	} else {
		sysout = xmlEscapeChars(buf.Bytes())
	}

	notRun, _, failed, errored := r.Stats()
	ts := Testsuite{
		Name:      r.Name,
		Tests:     len(r.Cases),
		Errors:    errored,
		Failures:  failed,
		Skipped:   notRun,
		Time:      float64(r.Duration) / 1e9,
		Timestamp: r.Started.Format("2006-01-02T15:04:05"),
		Testcase:  testcases,
		SystemOut: SysOut{Data: "\n" + sysout},
	}

	data, err := xml.MarshalIndent(ts, "", "  ")
	if err != nil {
		return string(data), err
	}
	return xml.Header + string(data) + "\n", nil
}

// xmlEscapeChars escapes the reserved characters.
func xmlEscapeChars(s []byte) string {
	buf := &bytes.Buffer{}
	for i := 0; i < len(s); {
		rune, width := utf8.DecodeRune(s[i:])
		i += width
		switch rune {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		case '\t':
			buf.WriteString("&#x9;")
		default:
			buf.WriteRune(rune)
		}
	}
	return buf.String()
}
