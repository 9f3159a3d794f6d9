package locale

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Language ranges are case-insensitive.
var lower = cases.Lower(language.Und)

const (
	CookieName = "NEXT_LOCALE"
	// CookieMaxAge is one year in seconds.
	CookieMaxAge = 365 * 24 * 60 * 60
)

// staticPrefixes never get a locale segment.
var staticPrefixes = []string{
	"/api",
	"/_next",
	"/_internal",
	"/static",
	"/assets",
	"/locales",
	"/health",
	"/healthz",
}

type Action int

const (
	Continue Action = iota
	Redirect
)

func (a Action) String() string {
	if a == Redirect {
		return "redirect"
	}
	return "continue"
}

// Decision is the outcome of resolving one request path. Locale is set on
// redirects and on already-prefixed page paths; Target only on redirects.
type Decision struct {
	Action Action
	Locale Code
	Target string
}

type Resolver struct {
	reg *Registry
}

func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg}
}

func (r *Resolver) Registry() *Registry {
	return r.reg
}

// Resolve decides whether path passes through or is redirected to its
// locale-prefixed equivalent. It never fails.
func (r *Resolver) Resolve(path string, query url.Values, cookie, acceptLanguage string) Decision {
	if path == "" {
		path = "/"
	}
	if IsStatic(path) {
		return Decision{Action: Continue}
	}
	if code, _, ok := r.reg.Split(path); ok {
		return Decision{Action: Continue, Locale: code}
	}

	loc := r.Preferred(cookie, acceptLanguage)
	return Decision{
		Action: Redirect,
		Locale: loc,
		Target: redirectTarget(loc, path, query),
	}
}

// Preferred picks the locale from a valid cookie value, then the first
// matching Accept-Language entry, then the default.
func (r *Resolver) Preferred(cookie, acceptLanguage string) Code {
	if code, ok := r.reg.Parse(cookie); ok {
		return code
	}
	if code, ok := r.fromAcceptLanguage(acceptLanguage); ok {
		return code
	}
	return r.reg.DefaultCode()
}

// fromAcceptLanguage walks the header in the order the client sent it
// and takes the first entry whose first two characters name a supported
// locale. Quality values are ignored; anything that does not match is
// skipped.
func (r *Resolver) fromAcceptLanguage(header string) (Code, bool) {
	for _, entry := range strings.Split(header, ",") {
		raw, _, _ := strings.Cut(entry, ";")
		raw = strings.TrimSpace(raw)
		if len(raw) < 2 {
			continue
		}
		if code, ok := r.reg.Parse(lower.String(raw[:2])); ok {
			return code, true
		}
	}
	return "", false
}

// IsStatic reports paths that are assets, API calls, framework internals or
// translation files: they are never locale-prefixed.
func IsStatic(path string) bool {
	for _, p := range staticPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	last := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		last = path[i+1:]
	}
	return strings.Contains(last, ".")
}

func redirectTarget(loc Code, path string, query url.Values) string {
	target := "/" + string(loc)
	if path != "/" {
		target += path
	}

	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if enc := q.Encode(); enc != "" {
		target += "?" + enc
	}
	return target
}
