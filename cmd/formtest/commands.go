// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/vdobler/formtest/config"
	"github.com/vdobler/formtest/demoapp"
	"github.com/vdobler/formtest/ht"
	"github.com/vdobler/formtest/htmlquery"
	"github.com/vdobler/formtest/request"
	"github.com/vdobler/formtest/response"
	"github.com/vdobler/formtest/showcase"
	"github.com/vdobler/formtest/suite"
)

// errNotPassed is returned by demo if any test case did not pass.
var errNotPassed = errors.New("not all test cases passed")

// ----------------------------------------------------------------------------
// demo

var demoCommand = &cli.Command{
	Name:  "demo",
	Usage: "Run the showcase suite against the demo application",
	Description: `Run the showcase suite against a fresh demo application and print
a text or JUnit report depending on report.format of the config file.
A configured database adds the database test cases.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "Name of the suite in the report",
			Value: "showcase",
		},
	},
	Action: runDemo,
}

func runDemo(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var pool ht.Pool
	sqlPool, err := cfg.OpenPool()
	if err != nil {
		return err
	}
	if sqlPool != nil {
		defer sqlPool.Close()
		pool = sqlPool
	}

	s := showcase.Suite(demoapp.New(), pool)
	s.Verbosity = cfg.Verbosity
	s.Options = request.Options{EscapeValues: cfg.EscapeValues}
	s.Log = log.New(c.App.ErrWriter, "", log.Ltime)

	report := s.Execute(c.String("name"))
	if err := printReport(c, cfg, report); err != nil {
		return err
	}
	if report.Status() != suite.Pass {
		return errNotPassed
	}
	return nil
}

func printReport(c *cli.Context, cfg *config.Config, report *suite.Report) error {
	if cfg.Report.Format == config.FormatJUnit {
		out, err := report.JUnit4XML()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(c.App.Writer, out)
		return err
	}
	return report.PrintReport(c.App.Writer)
}

// ----------------------------------------------------------------------------
// query

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "Print the elements of an HTML file matched by a CSS selector",
	ArgsUsage: "<file.html> <selector>",
	Action:    runQuery,
}

func runQuery(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("query needs a file and a selector")
	}
	data, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	doc, err := htmlquery.Parse(data)
	if err != nil {
		return err
	}
	matches, err := doc.Query(c.Args().Get(1))
	if err != nil {
		return err
	}
	for i, m := range matches {
		fmt.Fprintf(c.App.Writer, "%d. %s\n", i+1, m)
	}
	return nil
}

// ----------------------------------------------------------------------------
// label

var labelCommand = &cli.Command{
	Name:      "label",
	Usage:     "Print the name of the input field labeled by a text",
	ArgsUsage: "<file.html> <label text>",
	Action:    runLabel,
}

func runLabel(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("label needs a file and a label text")
	}
	data, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	name, err := request.ResolveFieldName(&response.Response{Body: data}, c.Args().Get(1))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, name)
	return nil
}

// ----------------------------------------------------------------------------
// serialize

var serializeCommand = &cli.Command{
	Name:      "serialize",
	Usage:     "Print the request body of a form submission",
	ArgsUsage: "<name=value | name=@file> ...",
	Description: `Serialize the given fields like a POST submission of a form. A
value starting with @ uploads the named file and switches to
multipart/form-data.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "escape",
			Usage: "Percent-encode url-encoded values, overrides the config file",
		},
		&cli.StringFlag{
			Name:  "target",
			Usage: "Request target",
			Value: "/",
		},
	},
	Action: runSerialize,
}

func runSerialize(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	b := request.NewBuilder(nil)
	for _, arg := range c.Args().Slice() {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("malformed field %q, want name=value", arg)
		}
		if strings.HasPrefix(value, "@") {
			b.AddFileByName(name, value[1:], "")
		} else {
			b.AddByName(name, value)
		}
	}
	if err := b.Err(); err != nil {
		return err
	}

	opts := request.Options{EscapeValues: cfg.EscapeValues || c.Bool("escape")}
	enc, err := request.Serialize("POST", c.String("target"), b.Parts(), opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "POST %s\nContent-Type: %s\n\n%s\n",
		enc.Target, enc.ContentType, enc.Body)
	return nil
}
