// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// formtest runs the showcase suite against the demo application and
// offers the HTML query, label resolution and form serialization of the
// formtest packages on the command line.
package main

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/vdobler/formtest/config"
	"github.com/vdobler/formtest/errorlist"
)

// Version is set at build time.
var Version = "dev"

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Read configuration from `FILE`",
		EnvVars: []string{"FORMTEST_CONFIG"},
	},
	&cli.IntFlag{
		Name:    "verbosity",
		Usage:   "Verbosity of session logs (0 to 3), overrides the config file",
		EnvVars: []string{"FORMTEST_VERBOSITY"},
	},
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:    "formtest",
		Usage:   "In-process integration tests of HTML forms",
		Version: Version,
		Description: `formtest drives an http.Handler the way a browser would: Forms
are filled in by label and the hidden _token field is copied from the
last response.

Examples:
  formtest demo
  formtest --config formtest.yaml demo
  formtest query page.html "form#login label"
  formtest label page.html "Email"
  formtest serialize email=bob@example.org cv=@cv.pdf`,
		Flags:     globalFlags,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			demoCommand,
			queryCommand,
			labelCommand,
			serializeCommand,
		},
	}
}

// loadConfig reads the config file given by --config, or the defaults,
// and applies --verbosity.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet("verbosity") {
		cfg.Verbosity = c.Int("verbosity")
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		errorlist.Fprintln(os.Stderr, "Error: ", err)
		os.Exit(1)
	}
}
