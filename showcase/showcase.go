// Copyright 2016 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package showcase contains a test suite which exercises all features of
// formtest against the demo application.
package showcase

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vdobler/formtest/demoapp"
	"github.com/vdobler/formtest/ht"
	"github.com/vdobler/formtest/request"
	"github.com/vdobler/formtest/sqlpool"
	"github.com/vdobler/formtest/suite"
)

// Login logs in with the given credentials, the form is addressed
// by label only.
func Login(h *ht.Session, email, password string) {
	h.Get("/login")
	h.StatusIs(http.StatusOK)
	h.Post("/login", request.Then(
		request.ByLabel("Email", email),
		request.ByLabel("Password", password),
		request.Token("form#login"),
	))
}

// Suite returns the showcase suite for app. The database cases are only
// added if pool is non-nil.
func Suite(app http.Handler, pool ht.Pool) *suite.Suite {
	s := suite.New(app, pool)

	s.It("shows the welcome page", func(h *ht.Session) {
		h.Get("/")
		h.StatusIs(http.StatusOK)
		h.HTMLAnyContain("h1", "Welcome")
		h.HTMLCount("a[href='/login']", 1)
	})

	s.Describe("login", func(s *suite.Suite) {
		s.It("shows a form with a token", func(h *ht.Session) {
			h.Get("/login")
			h.StatusIs(http.StatusOK)
			h.ContentTypeIs("html")
			h.SetsCookie(demoapp.CookieName, "")
			h.HTMLCount("form#login input[name=_token][type=hidden]", 1)
			h.HTMLAllContain("label", "</label>")
			h.AssertNoHeader("Location")
		})
		s.It("accepts valid credentials", func(h *ht.Session) {
			Login(h, "bob@example.org", "secret")
			h.StatusIs(http.StatusSeeOther)
			h.AssertHeader("Location", "/home")
			h.FollowRedirect()
			h.StatusIs(http.StatusOK)
			h.HTMLAnyContain("h1", "Hello bob@example.org")
			h.HTMLCount("ul#items li.item", 3)
			h.HTMLNoneContain("li.item", "Durian")
		})
		s.It("ends with a logout", func(h *ht.Session) {
			Login(h, "alice@example.org", "wonderland")
			h.FollowRedirect()
			h.Post("/logout", request.Token("form#logout"))
			h.StatusIs(http.StatusSeeOther)
			h.DeletesCookie(demoapp.CookieName)
			h.Get("/home")
			h.StatusIs(http.StatusSeeOther)
		})
		s.It("rejects a wrong password", func(h *ht.Session) {
			Login(h, "bob@example.org", "guess")
			h.StatusIs(http.StatusOK)
			h.HTMLAllContain("p.error", "Invalid email or password")
		})
		s.It("rejects a forged token", func(h *ht.Session) {
			h.Get("/login")
			h.Post("/login", request.Then(
				request.ByLabel("Email", "bob@example.org"),
				request.ByLabel("Password", "secret"),
				request.ByName(request.TokenField, "forged"),
			))
			h.StatusIs(http.StatusForbidden)
			h.BodyContains("invalid token")
		})
	})

	s.Describe("items", func(s *suite.Suite) {
		s.It("need a login", func(h *ht.Session) {
			h.Get("/home")
			h.StatusIs(http.StatusSeeOther)
			h.AssertHeader("Location", "/login")
		})
		s.It("are addressed by path", func(h *ht.Session) {
			h.Get("/items/2", request.GetParam("ref", "showcase"))
			h.StatusIs(http.StatusOK)
			h.AssertHeader("X-Item-Id", "2")
			h.HTMLAllContain("h1.item", "Banana")
		})
		s.It("outside the range are missing", func(h *ht.Session) {
			h.Get("/items/7")
			h.StatusIs(http.StatusNotFound)
		})
	})

	s.It("uploads a document", func(h *ht.Session) {
		dir, err := os.MkdirTemp("", "showcase")
		if err != nil {
			panic(err)
		}
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, "notes.html")
		if err := os.WriteFile(path, []byte("<p>Hello</p>"), 0644); err != nil {
			panic(err)
		}

		h.Get("/upload")
		h.Post("/upload", request.Then(
			request.ByLabel("Title & Subject", "Notes"),
			request.FileByLabel("Document", path, "text/html"),
			request.Token(""),
		))
		h.StatusIs(http.StatusOK)
		h.HTMLAllContain("p#result", "Received notes.html (12 bytes, text/html) titled Notes")
	})

	s.It("reports its status as JSON", func(h *ht.Session) {
		h.Get("/api/status", request.Header("Accept", "application/json"))
		h.StatusIs(http.StatusOK)
		h.AssertHeader("Content-Type", "application/json")
		h.JSONExpr(".items == 3")
	})

	s.It("decodes compressed pages", func(h *ht.Session) {
		h.Get("/compressed")
		h.StatusIs(http.StatusOK)
		h.BodyContains("Welcome to the demo shop")
	})

	if pool != nil {
		s.It("reaches the database", func(h *ht.Session) {
			var one int
			h.RunDB(sqlpool.QueryRow("SELECT 1", nil, &one))
			h.RunDB(func(ctx context.Context, tx *sql.Tx) error {
				if one != 1 {
					return fmt.Errorf("SELECT 1 returned %d", one)
				}
				return nil
			})
		})
	}

	return s
}
