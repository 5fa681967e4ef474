// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := newApp(stdout, stderr).Run(append([]string{"formtest"}, args...))
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHelpAndVersion(t *testing.T) {
	out, err := runApp(t, "--help")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	for _, want := range []string{"--config", "--verbosity", "demo", "serialize"} {
		if !strings.Contains(out, want) {
			t.Errorf("help lacks %q:\n%s", want, out)
		}
	}

	out, err = runApp(t, "-v")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if out != "formtest version dev\n" {
		t.Errorf("got %q", out)
	}
}

func TestDemo(t *testing.T) {
	out, err := runApp(t, "demo")
	if err != nil {
		t.Fatalf("Unexpected error: %s\n%s", err, out)
	}
	for _, want := range []string{
		"|   PASS: showcase   |",
		"PASS   login / accepts valid credentials (",
		"Passed 12, Failed 0, Errored 0, NotRun 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestDemoJUnit(t *testing.T) {
	cfg := writeFile(t, "formtest.yaml", "report:\n  format: junit\n")
	out, err := runApp(t, "--config", cfg, "demo", "--name", "nightly")
	if err != nil {
		t.Fatalf("Unexpected error: %s\n%s", err, out)
	}
	if !strings.HasPrefix(out, "<?xml") ||
		!strings.Contains(out, `<testsuite name="nightly" tests="12" errors="0" failures="0"`) {
		t.Errorf("got\n%s", out)
	}
}

func TestConfigErrors(t *testing.T) {
	if _, err := runApp(t, "--config", "/no/such/formtest.yaml", "demo"); err == nil ||
		!strings.Contains(err.Error(), "reading config") {
		t.Errorf("got %v", err)
	}
	if _, err := runApp(t, "--verbosity", "-1", "demo"); err == nil ||
		!strings.Contains(err.Error(), "negative verbosity") {
		t.Errorf("got %v", err)
	}
}

func TestQuery(t *testing.T) {
	page := writeFile(t, "page.html", `<ul><li>a</li><li class="x">b</li></ul>`)
	out, err := runApp(t, "query", page, "li")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if want := "1. <li>a</li>\n2. <li class=\"x\">b</li>\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}

	if _, err := runApp(t, "query", page); err == nil {
		t.Errorf("missing error for missing selector")
	}
	if _, err := runApp(t, "query", page, "li["); err == nil {
		t.Errorf("missing error for malformed selector")
	}
}

func TestLabel(t *testing.T) {
	page := writeFile(t, "page.html",
		`<form><label for="h1">Email</label><input id="h1" name="f1"></form>`)
	out, err := runApp(t, "label", page, "Email")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if out != "f1\n" {
		t.Errorf("got %q", out)
	}

	if _, err := runApp(t, "label", page, "Password"); err == nil ||
		!strings.Contains(err.Error(), "no label contained: Password") {
		t.Errorf("got %v", err)
	}
}

func TestSerialize(t *testing.T) {
	out, err := runApp(t, "serialize", "a=1", "b=x y")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	want := "POST /\nContent-Type: application/x-www-form-urlencoded\n\na=1&b=x y\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}

	out, err = runApp(t, "serialize", "--escape", "b=x y")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if !strings.HasSuffix(out, "\n\nb=x+y\n") {
		t.Errorf("got %q", out)
	}

	cv := writeFile(t, "cv.html", "<p>CV</p>")
	out, err = runApp(t, "serialize", "--target", "/upload", "name=Bob", "cv=@"+cv)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	for _, want := range []string{
		"POST /upload\n",
		"Content-Type: multipart/form-data; boundary=formtest-boundary-5f2b0e8c\n",
		`Content-Disposition: form-data; name="cv"; filename=`,
		"<p>CV</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}

	if _, err := runApp(t, "serialize", "novalue"); err == nil ||
		!strings.Contains(err.Error(), "malformed field") {
		t.Errorf("got %v", err)
	}
	if _, err := runApp(t, "serialize", "cv=@/no/such/file"); err == nil ||
		!strings.Contains(err.Error(), "cannot read upload file") {
		t.Errorf("got %v", err)
	}
}
