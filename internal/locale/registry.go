// Package locale owns the supported language codes, the request-level
// locale resolution and the helpers that add or strip the locale segment
// of page paths.
package locale

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a supported locale such as "de" or "en".
type Code string

const (
	DE Code = "de"
	EN Code = "en"
)

var ErrInvalidLocale = errors.New("invalid locale")

// Registry is the immutable set of supported locales and the default one.
type Registry struct {
	codes []Code
	def   Code
}

// NewRegistry validates codes and def. def must be one of codes.
func NewRegistry(codes []string, def string) (*Registry, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no locales configured", ErrInvalidLocale)
	}
	r := &Registry{}
	seen := make(map[Code]bool, len(codes))
	for _, c := range codes {
		code := Code(strings.ToLower(strings.TrimSpace(c)))
		if code == "" || strings.ContainsAny(string(code), "/?#.") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocale, c)
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		r.codes = append(r.codes, code)
	}
	d := Code(strings.ToLower(strings.TrimSpace(def)))
	if !seen[d] {
		return nil, fmt.Errorf("%w: default %q is not supported", ErrInvalidLocale, def)
	}
	r.def = d
	return r, nil
}

// Default returns the registry with de and en, de being the default.
func Default() *Registry {
	return &Registry{codes: []Code{DE, EN}, def: DE}
}

// Codes returns a copy of the supported codes in configuration order.
func (r *Registry) Codes() []Code {
	out := make([]Code, len(r.codes))
	copy(out, r.codes)
	return out
}

func (r *Registry) DefaultCode() Code {
	return r.def
}

// IsValid is case sensitive: "DE" is not a valid code.
func (r *Registry) IsValid(s string) bool {
	_, ok := r.Parse(s)
	return ok
}

func (r *Registry) Parse(s string) (Code, bool) {
	for _, c := range r.codes {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Split reports the locale carried by the first path segment, if any, and
// the remainder of the path. "/en" yields (en, "/"); "/en/projects" yields
// (en, "/projects").
func (r *Registry) Split(path string) (Code, string, bool) {
	if !strings.HasPrefix(path, "/") {
		return "", path, false
	}
	seg := path[1:]
	rest := "/"
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		rest = seg[i:]
		seg = seg[:i]
	}
	code, ok := r.Parse(seg)
	if !ok {
		return "", path, false
	}
	return code, rest, true
}

// HasPrefix reports whether path starts with a supported locale segment.
func (r *Registry) HasPrefix(path string) bool {
	_, _, ok := r.Split(path)
	return ok
}
