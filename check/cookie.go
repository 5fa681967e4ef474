// Copyright 2015 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cookie.go provides checks for cookies.

package check

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vdobler/formtest/errorlist"
	"github.com/vdobler/formtest/response"
)

// receivedCookies parses all Set-Cookie headers of resp. Malformed
// headers are dropped.
func receivedCookies(resp *response.Response) []*http.Cookie {
	hr := &http.Response{Header: http.Header{"Set-Cookie": resp.Header.Values("Set-Cookie")}}
	return hr.Cookies()
}

// ----------------------------------------------------------------------------
// SetCookie

// SetCookie checks that the last response sets cookie Name.
type SetCookie struct {
	Name string

	// Value is the wanted cookie value, the empty string accepts any.
	Value string

	// MinLifetime is the expected minimum lifetime of the cookie.
	// A positive value enforces a persistent cookie.
	MinLifetime time.Duration

	// Absent indicates that cookie Name must not be set.
	Absent bool

	// Type is a space separated list of the (case-insensitive) keywords
	//   - "session" or "persistent"
	//   - "secure" or "unsafe"
	//   - "httpOnly" or "exposed"
	Type string
}

var cookieTypes = map[string]bool{
	"session": true, "persistent": true,
	"secure": true, "unsafe": true,
	"httponly": true, "exposed": true,
}

// Execute implements Check's Execute method.
func (c SetCookie) Execute(h response.Holder) error {
	typ := strings.Fields(strings.ToLower(strings.Replace(c.Type, ",", " ", -1)))
	for _, t := range typ {
		if !cookieTypes[t] {
			return MalformedCheck{Err: fmt.Errorf("unknown cookie type %q", t)}
		}
	}
	if c.MinLifetime < 0 {
		return MalformedCheck{Err: fmt.Errorf("negative MinLifetime %s", c.MinLifetime)}
	}

	resp, err := h.LastResponse()
	if err != nil {
		return err
	}
	var cookie *http.Cookie
	for _, cp := range receivedCookies(resp) {
		if cp.Name == c.Name {
			cookie = cp
			break
		}
	}

	switch {
	case cookie == nil && c.Absent:
		return nil
	case cookie == nil:
		return fmt.Errorf("cookie %s not set", c.Name)
	case c.Absent:
		return fmt.Errorf("forbidden cookie %s set to %q", c.Name, cookie.Value)
	case c.Value != "" && cookie.Value != c.Value:
		return fmt.Errorf("cookie %s: got value %q, want %q", c.Name, cookie.Value, c.Value)
	}

	if c.MinLifetime > 0 {
		switch {
		case cookie.MaxAge > 0:
			if int(c.MinLifetime.Seconds()) > cookie.MaxAge {
				return fmt.Errorf("cookie %s: Max-Age %ds shorter than %s",
					c.Name, cookie.MaxAge, c.MinLifetime)
			}
		case !cookie.Expires.IsZero():
			min := time.Now().Add(c.MinLifetime)
			if cookie.Expires.Before(min) {
				return fmt.Errorf("cookie %s: expires %s, before %s", c.Name,
					cookie.Expires.Format(time.RFC1123), min.Format(time.RFC1123))
			}
		default:
			return fmt.Errorf("cookie %s is a session cookie", c.Name)
		}
	}

	return checkCookieType(cookie, typ)
}

func checkCookieType(cookie *http.Cookie, typ []string) error {
	persistent := cookie.MaxAge > 0 || !cookie.Expires.IsZero()
	for _, t := range typ {
		var bad bool
		switch t {
		case "session":
			bad = persistent
		case "persistent":
			bad = !persistent
		case "secure":
			bad = !cookie.Secure
		case "unsafe":
			bad = cookie.Secure
		case "httponly":
			bad = !cookie.HttpOnly
		case "exposed":
			bad = cookie.HttpOnly
		}
		if bad {
			return fmt.Errorf("cookie %s is not %s", cookie.Name, t)
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// DeleteCookie

// DeleteCookie checks that the last response deletes all cookies named
// Name. A non-empty Path restricts the check to cookies with that path.
type DeleteCookie struct {
	Name string
	Path string
}

// Execute implements Check's Execute method.
func (c DeleteCookie) Execute(h response.Holder) error {
	resp, err := h.LastResponse()
	if err != nil {
		return err
	}
	var el errorlist.List
	deleted := false
	for _, cookie := range receivedCookies(resp) {
		if cookie.Name != c.Name || (c.Path != "" && cookie.Path != c.Path) {
			continue
		}
		switch {
		case cookie.MaxAge < 0:
			deleted = true
		case cookie.MaxAge > 0:
			el = el.Append(fmt.Errorf("cookie %s (path %q) not deleted, Max-Age=%d",
				c.Name, cookie.Path, cookie.MaxAge))
		case cookie.Expires.IsZero():
			el = el.Append(fmt.Errorf("cookie %s (path %q) not deleted",
				c.Name, cookie.Path))
		case cookie.Expires.After(time.Now().Add(-90 * time.Second)):
			// Clocks vary, demand at least 90 seconds backdating.
			el = el.Append(fmt.Errorf("cookie %s (path %q) not deleted, Expires=%s",
				c.Name, cookie.Path, cookie.RawExpires))
		default:
			deleted = true
		}
	}
	if !deleted && len(el) == 0 {
		el = el.Append(fmt.Errorf("no cookie %s was deleted", c.Name))
	}
	return el.AsError()
}
