package locale

import "strings"

// Localize rewrites a root-relative path to its locale-prefixed form.
// The root collapses to "/<loc>". External, relative and protocol-relative
// URLs are returned unchanged.
func Localize(path string, loc Code) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return path
	}
	p, suffix := splitSuffix(path)
	if p == "/" {
		return "/" + string(loc) + suffix
	}
	return "/" + string(loc) + p + suffix
}

// StripLocale removes a leading supported locale segment. The root case
// returns "/". Paths without a locale segment come back unchanged.
func (r *Registry) StripLocale(path string) string {
	p, suffix := splitSuffix(path)
	_, rest, ok := r.Split(p)
	if !ok {
		return path
	}
	return rest + suffix
}

// RedirectPath is the server-side redirect helper: prefix path with loc
// unless it already carries any supported locale. An empty loc means the
// default locale.
func (r *Registry) RedirectPath(path string, loc Code) string {
	if loc == "" {
		loc = r.def
	}
	if !strings.HasPrefix(path, "/") {
		return path
	}
	p, _ := splitSuffix(path)
	if r.HasPrefix(p) {
		return path
	}
	return Localize(path, loc)
}

// Navigator performs programmatic navigation for one active locale. It
// never double-prefixes a path that already carries that locale.
type Navigator struct {
	reg     *Registry
	locale  Code
	history []string
}

func NewNavigator(reg *Registry, loc Code) *Navigator {
	if _, ok := reg.Parse(string(loc)); !ok {
		loc = reg.def
	}
	return &Navigator{reg: reg, locale: loc}
}

func (n *Navigator) Locale() Code {
	return n.locale
}

// Push appends the localized target to the history and returns it.
func (n *Navigator) Push(path string) string {
	target := n.target(path)
	n.history = append(n.history, target)
	return target
}

// Replace swaps the current history entry for the localized target.
func (n *Navigator) Replace(path string) string {
	target := n.target(path)
	if len(n.history) == 0 {
		n.history = append(n.history, target)
	} else {
		n.history[len(n.history)-1] = target
	}
	return target
}

// History returns a copy of the visited targets, oldest first.
func (n *Navigator) History() []string {
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}

// Pathname is the locale-agnostic form of the current entry.
func (n *Navigator) Pathname() string {
	if len(n.history) == 0 {
		return "/"
	}
	return n.reg.StripLocale(n.history[len(n.history)-1])
}

func (n *Navigator) target(path string) string {
	p, _ := splitSuffix(path)
	if code, _, ok := n.reg.Split(p); ok && code == n.locale {
		return path
	}
	return Localize(path, n.locale)
}

func splitSuffix(path string) (string, string) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i], path[i:]
	}
	return path, ""
}
