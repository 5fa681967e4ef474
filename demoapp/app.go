// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demoapp provides a small web application used to demonstrate
// and test form based testing: It has generated field names, a session
// cookie and anti-forgery tokens on every form.
//
// Routes:
//
//	GET  /                 welcome page
//	GET  /login            login form
//	POST /login            login, redirects to /home
//	GET  /home             list of items, login required
//	GET  /items/{id}       single item
//	GET  /upload           upload form
//	POST /upload           upload of a document
//	POST /logout           logout
//	GET  /api/status       JSON status
//	GET  /compressed       gzip encoded page
package demoapp

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzip"
)

// Users known to the application and their passwords.
var Users = map[string]string{
	"bob@example.org":   "secret",
	"alice@example.org": "wonderland",
}

// Items listed on the home page.
var Items = []string{"Apple", "Banana", "Cherry"}

// CookieName is the name of the session cookie.
const CookieName = "sid"

type session struct {
	token string
	user  string
}

// App is the demo application. It is safe for concurrent use.
type App struct {
	router *mux.Router

	mu       sync.Mutex
	sessions map[string]*session
	next     int
}

// New returns a fresh App without any sessions.
func New() *App {
	a := &App{sessions: make(map[string]*session)}
	r := mux.NewRouter()
	r.HandleFunc("/", a.homeHandler).Methods("GET")
	r.HandleFunc("/login", a.loginFormHandler).Methods("GET")
	r.HandleFunc("/login", a.loginHandler).Methods("POST")
	r.HandleFunc("/home", a.itemsHandler).Methods("GET")
	r.HandleFunc("/items/{id:[0-9]+}", a.itemHandler).Methods("GET")
	r.HandleFunc("/upload", a.uploadFormHandler).Methods("GET")
	r.HandleFunc("/upload", a.uploadHandler).Methods("POST")
	r.HandleFunc("/logout", a.logoutHandler).Methods("POST")
	r.HandleFunc("/api/status", a.statusHandler).Methods("GET")
	r.HandleFunc("/compressed", a.compressedHandler).Methods("GET")
	a.router = r
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Sessions returns the number of sessions started so far.
func (a *App) Sessions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}

// lookup returns the session of r or nil.
func (a *App) lookup(r *http.Request) *session {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions[c.Value]
}

// ensure returns the session of r, starting a new one if needed.
func (a *App) ensure(w http.ResponseWriter, r *http.Request) *session {
	if s := a.lookup(r); s != nil {
		return s
	}
	a.mu.Lock()
	a.next++
	id := "s" + strconv.Itoa(a.next)
	s := &session{token: fmt.Sprintf("tok%d-%x", a.next, 0x5eed*a.next)}
	a.sessions[id] = s
	a.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: id, Path: "/", HttpOnly: true})
	return s
}

func validToken(s *session, r *http.Request) bool {
	return s != nil && r.FormValue("_token") == s.token
}

// ----------------------------------------------------------------------------
// Handlers

func (a *App) homeHandler(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, homeTmpl, nil)
}

func (a *App) loginFormHandler(w http.ResponseWriter, r *http.Request) {
	s := a.ensure(w, r)
	render(w, http.StatusOK, loginTmpl, map[string]string{"Token": s.token})
}

func (a *App) loginHandler(w http.ResponseWriter, r *http.Request) {
	s := a.lookup(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !validToken(s, r) {
		http.Error(w, "invalid token", http.StatusForbidden)
		return
	}
	email, password := r.PostForm.Get("f2"), r.PostForm.Get("f3")
	if want, ok := Users[email]; !ok || want != password {
		render(w, http.StatusOK, loginTmpl, map[string]string{
			"Token": s.token,
			"Error": "Invalid email or password",
		})
		return
	}
	a.mu.Lock()
	s.user = email
	a.mu.Unlock()
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (a *App) logoutHandler(w http.ResponseWriter, r *http.Request) {
	s := a.lookup(r)
	if !validToken(s, r) {
		http.Error(w, "invalid token", http.StatusForbidden)
		return
	}
	a.mu.Lock()
	for id, other := range a.sessions {
		if other == s {
			delete(a.sessions, id)
		}
	}
	a.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: CookieName, Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) user(r *http.Request) (*session, string) {
	s := a.lookup(r)
	if s == nil {
		return nil, ""
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return s, s.user
}

func (a *App) itemsHandler(w http.ResponseWriter, r *http.Request) {
	s, user := a.user(r)
	if user == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	type item struct {
		ID   int
		Name string
	}
	items := make([]item, len(Items))
	for i, name := range Items {
		items[i] = item{ID: i + 1, Name: name}
	}
	render(w, http.StatusOK, itemsTmpl, map[string]interface{}{
		"User":  user,
		"Items": items,
		"Token": s.token,
	})
}

func (a *App) itemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id < 1 || id > len(Items) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("X-Item-Id", strconv.Itoa(id))
	render(w, http.StatusOK, itemTmpl, Items[id-1])
}

func (a *App) uploadFormHandler(w http.ResponseWriter, r *http.Request) {
	s := a.ensure(w, r)
	render(w, http.StatusOK, uploadTmpl, map[string]string{"Token": s.token})
}

func (a *App) uploadHandler(w http.ResponseWriter, r *http.Request) {
	s := a.lookup(r)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !validToken(s, r) {
		http.Error(w, "invalid token", http.StatusForbidden)
		return
	}
	file, header, err := r.FormFile("f5")
	if err != nil {
		http.Error(w, "missing document", http.StatusBadRequest)
		return
	}
	defer file.Close()
	render(w, http.StatusOK, uploadedTmpl, map[string]interface{}{
		"Title":       r.FormValue("f4"),
		"Filename":    header.Filename,
		"Size":        header.Size,
		"ContentType": header.Header.Get("Content-Type"),
	})
}

func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "ok", "items": %d, "sessions": %d}`, len(Items), a.Sessions())
}

func (a *App) compressedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Encoding", "gzip")
	zw := gzip.NewWriter(w)
	defer zw.Close()
	homeTmpl.Execute(zw, nil)
}

func render(w http.ResponseWriter, status int, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	tmpl.Execute(w, data)
}
