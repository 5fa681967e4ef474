// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demoapp

import "html/template"

var layout = template.Must(template.New("layout").Parse(`{{define "head"}}<!doctype html>
<html>
<head><title>Demo Shop</title></head>
<body>
{{end}}{{define "foot"}}</body>
</html>
{{end}}`))

func page(name, body string) *template.Template {
	return template.Must(template.Must(layout.Clone()).New(name).Parse(
		`{{template "head"}}` + body + `{{template "foot"}}`))
}

var homeTmpl = page("home", `<h1>Welcome to the demo shop</h1>
<p><a href="/login">Login</a></p>
`)

var loginTmpl = page("login", `<h1>Login</h1>
{{with .Error}}<p class="error">{{.}}</p>
{{end}}<form id="login" method="post" action="/login">
  <label for="hident2">Email</label>
  <input id="hident2" name="f2" type="email">
  <label for="hident3">Password</label>
  <input id="hident3" name="f3" type="password">
  <input type="hidden" name="_token" value="{{.Token}}">
  <button type="submit">Login</button>
</form>
`)

var itemsTmpl = page("items", `<h1>Hello {{.User}}</h1>
<ul id="items">
{{range .Items}}  <li class="item"><a href="/items/{{.ID}}">{{.Name}}</a></li>
{{end}}</ul>
<form id="logout" method="post" action="/logout">
  <input type="hidden" name="_token" value="{{.Token}}">
  <button type="submit">Logout</button>
</form>
`)

var itemTmpl = page("item", `<h1 class="item">{{.}}</h1>
`)

var uploadTmpl = page("upload", `<h1>Upload</h1>
<form id="upload" method="post" action="/upload" enctype="multipart/form-data">
  <label for="hident4">Title &amp; Subject</label>
  <input id="hident4" name="f4" type="text">
  <label for="hident5">Document</label>
  <input id="hident5" name="f5" type="file">
  <input type="hidden" name="_token" value="{{.Token}}">
  <button type="submit">Upload</button>
</form>
`)

var uploadedTmpl = page("uploaded", `<h1>Upload complete</h1>
<p id="result">Received {{.Filename}} ({{.Size}} bytes, {{.ContentType}}) titled {{.Title}}</p>
`)
