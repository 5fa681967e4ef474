// Copyright 2017 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the configuration of the formtest command from a
// YAML file like
//
//	verbosity: 1
//	escapeValues: false
//	database:
//	  driver: mysql
//	  dsn: "test:secret@tcp(localhost:3306)/shop"
//	report:
//	  format: junit
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vdobler/formtest/sqlpool"
	"gopkg.in/yaml.v3"
)

// Report formats.
const (
	FormatText  = "text"
	FormatJUnit = "junit"
)

// Database configures the optional database pool.
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Report configures the output of the standalone runner.
type Report struct {
	Format string `yaml:"format"`
}

// Config is the configuration of a test run.
type Config struct {
	// Verbosity of the session logs, see package ht.
	Verbosity int `yaml:"verbosity"`

	// EscapeValues percent-encodes url-encoded request bodies.
	EscapeValues bool `yaml:"escapeValues"`

	Database Database `yaml:"database"`
	Report   Report   `yaml:"report"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	return &Config{
		Report: Report{Format: FormatText},
	}
}

// Load reads the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses and validates data. Fields missing in data keep their
// default values, unknown fields are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg for consistency.
func (cfg *Config) Validate() error {
	switch cfg.Report.Format {
	case FormatText, FormatJUnit:
	default:
		return fmt.Errorf("unknown report format %q", cfg.Report.Format)
	}
	if cfg.Verbosity < 0 {
		return fmt.Errorf("negative verbosity %d", cfg.Verbosity)
	}
	db := cfg.Database
	if db.Driver == "" && db.DSN == "" {
		return nil
	}
	if db.Driver == "" || db.DSN == "" {
		return fmt.Errorf("database needs both driver and dsn")
	}
	if db.Driver == "mysql" {
		if _, err := sqlpool.ParseDSN(db.DSN); err != nil {
			return err
		}
	}
	return nil
}

// OpenPool opens the configured database pool or returns nil if no
// database is configured.
func (cfg *Config) OpenPool() (*sqlpool.Pool, error) {
	if cfg.Database.Driver == "" {
		return nil, nil
	}
	return sqlpool.Open(cfg.Database.Driver, cfg.Database.DSN)
}
